package traits

import (
	"maps"
	"slices"
	"sync"
)

// Class is a named method table that traits are applied to. Methods defined
// on the class take precedence over trait methods.
type Class struct {
	name string

	mu      sync.RWMutex
	methods map[string]*MethodBody
	own     Owner
}

// NewClass returns a class with no methods.
func NewClass(name string) *Class {
	return &Class{
		name:    name,
		methods: make(map[string]*MethodBody),
		own:     NewOwner(),
	}
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Define sets a method on the class itself, replacing any method with the
// same name, including one installed by a trait.
func (c *Class) Define(name string, fn Func) error {
	if !IsSymbol(name) {
		return &InvalidArgumentError{Value: name}
	}
	if fn == nil {
		return ErrNilMethodBody
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.methods[name] = NewMethodBody(c.own, fn)
	return nil
}

// Uses applies t to the class and returns the class, so calls can be chained:
//
//	NewClass("Guerrero").Uses(atacante).Uses(defensor).New()
func (c *Class) Uses(t *Trait) *Class {
	t.EvalFor(c)
	return c
}

// RespondsTo reports whether instances of the class answer name.
func (c *Class) RespondsTo(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.methods[name]
	return ok
}

// Methods returns the names the class answers, sorted.
func (c *Class) Methods() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.methods))
}

// lookup returns the body bound to name.
func (c *Class) lookup(name string) (*MethodBody, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.methods[name]
	return m, ok
}

// New returns a fresh instance with empty state.
func (c *Class) New() *Instance {
	return &Instance{class: c, fields: make(map[string]any)}
}

// Instance is an object of a Class. Its fields are the receiver state that
// method bodies read and write through self.
type Instance struct {
	class  *Class
	fields map[string]any
}

// detachedInstance returns an instance that belongs to no class. Strategies
// use it to evaluate candidates at resolution time.
func detachedInstance() *Instance {
	return &Instance{class: NewClass(""), fields: make(map[string]any)}
}

// Class returns the instance's class.
func (i *Instance) Class() *Class {
	return i.class
}

// Get returns the value of a field, or nil when it was never set.
func (i *Instance) Get(field string) any {
	return i.fields[field]
}

// Lookup returns the value of a field and whether it was set.
func (i *Instance) Lookup(field string) (any, bool) {
	v, ok := i.fields[field]
	return v, ok
}

// Set stores a field value.
func (i *Instance) Set(field string, value any) {
	i.fields[field] = value
}

// Send invokes the named method with args and no block.
func (i *Instance) Send(name string, args ...any) (any, error) {
	return i.SendWithBlock(name, nil, args...)
}

// SendWithBlock invokes the named method with args and block. It returns a
// NoMethodError when the class does not answer name.
func (i *Instance) SendWithBlock(name string, block Block, args ...any) (any, error) {
	m, ok := i.class.lookup(name)
	if !ok {
		return nil, &NoMethodError{Class: i.class.name, Method: name}
	}
	return m.Call(i, args, block)
}
