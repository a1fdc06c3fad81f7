package traits

import (
	"maps"
	"slices"
	"strings"
)

// Trait is an immutable mapping from method name to MethodBody. The zero
// value is an empty, unnamed trait, and so is a nil *Trait.
type Trait struct {
	name    string
	methods map[string]*MethodBody
}

// New declares a trait outside any Registry. All bodies share one new Owner,
// so the declaration is a single provenance for collision detection.
// Returns ErrInvalidTrait if name is empty, an InvalidArgumentError if a
// method name is not a symbol, and ErrNilMethodBody if a function is nil.
func New(name string, methods map[string]Func) (*Trait, error) {
	if name == "" {
		return nil, ErrInvalidTrait
	}
	names := slices.Sorted(maps.Keys(methods))
	if err := checkSymbols(names); err != nil {
		return nil, err
	}

	owner := NewOwner()
	bodies := make(map[string]*MethodBody, len(methods))
	for _, n := range names {
		fn := methods[n]
		if fn == nil {
			return nil, ErrNilMethodBody
		}
		bodies[n] = NewMethodBody(owner, fn)
	}
	return &Trait{name: name, methods: bodies}, nil
}

// FromEntries builds a trait from already-owned bodies. Later entries with a
// repeated name replace earlier ones.
func FromEntries(name string, entries ...Entry) (*Trait, error) {
	methods := make(map[string]*MethodBody, len(entries))
	for _, e := range entries {
		if !IsSymbol(e.Name) {
			return nil, &InvalidArgumentError{Value: e.Name}
		}
		if e.Body == nil {
			return nil, ErrNilMethodBody
		}
		methods[e.Name] = e.Body
	}
	return &Trait{name: name, methods: methods}, nil
}

// Name returns the display name of the trait. Composed traits carry a name
// derived from their operands; the name plays no part in composition.
func (t *Trait) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// table returns the method map; nil for a nil trait.
func (t *Trait) table() map[string]*MethodBody {
	if t == nil {
		return nil
	}
	return t.methods
}

// Names returns the method names in sorted order.
func (t *Trait) Names() []string {
	return slices.Sorted(maps.Keys(t.table()))
}

// Len returns the number of methods.
func (t *Trait) Len() int {
	return len(t.table())
}

// Method returns the body bound to name.
func (t *Trait) Method(name string) (*MethodBody, bool) {
	m, ok := t.table()[name]
	return m, ok
}

// Entries returns the trait's methods as entries sorted by name.
func (t *Trait) Entries() []Entry {
	entries := make([]Entry, 0, len(t.table()))
	for _, name := range t.Names() {
		entries = append(entries, Entry{Name: name, Body: t.table()[name]})
	}
	return entries
}

// Exclude returns a trait without the given methods. Every name must be a
// symbol; otherwise an InvalidArgumentError is returned and nothing is
// excluded. Names the trait does not provide are ignored, so
// t.Exclude("a") followed by Exclude("b") equals t.Exclude("a", "b").
func (t *Trait) Exclude(names ...string) (*Trait, error) {
	if err := checkSymbols(names); err != nil {
		return nil, err
	}
	methods := maps.Clone(t.table())
	if methods == nil {
		methods = make(map[string]*MethodBody)
	}
	for _, n := range names {
		delete(methods, n)
	}
	return &Trait{
		name:    t.Name() + " - [" + strings.Join(names, ", ") + "]",
		methods: methods,
	}, nil
}

// Alias returns a trait that additionally answers each new name (map value)
// with the body of the old name (map key). Original names are kept. All pairs
// are checked, in sorted old-name order, before anything is copied: a new
// name that is not a symbol yields an InvalidArgumentError and an old name
// the trait does not provide yields an UnprovidedMethodError.
func (t *Trait) Alias(aliases map[string]string) (*Trait, error) {
	olds := slices.Sorted(maps.Keys(aliases))
	for _, old := range olds {
		if !IsSymbol(aliases[old]) {
			return nil, &InvalidArgumentError{Value: aliases[old]}
		}
		if _, ok := t.table()[old]; !ok {
			return nil, &UnprovidedMethodError{Name: old}
		}
	}

	methods := maps.Clone(t.table())
	pairs := make([]string, 0, len(olds))
	for _, old := range olds {
		methods[aliases[old]] = t.table()[old]
		pairs = append(pairs, old+": "+aliases[old])
	}
	return &Trait{
		name:    t.Name() + " << {" + strings.Join(pairs, ", ") + "}",
		methods: methods,
	}, nil
}

// EvalFor installs the trait's methods on c. A method c already answers,
// whether defined by the class itself or installed by an earlier trait, is
// left untouched. A nil trait installs nothing.
func (t *Trait) EvalFor(c *Class) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range t.Names() {
		if _, ok := c.methods[name]; ok {
			continue
		}
		c.methods[name] = t.table()[name]
	}
}

// String returns the trait name followed by its method names.
func (t *Trait) String() string {
	return t.Name() + "{" + strings.Join(t.Names(), ", ") + "}"
}
