package traits

import (
	"maps"
	"slices"
	"sync"
)

// Registry records declared traits by name. It replaces an implicit global
// namespace: the declared trait is returned to the caller, and the registry
// only answers lookups for names declared through it.
type Registry struct {
	mu     sync.RWMutex
	traits map[string]*Trait
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{traits: make(map[string]*Trait)}
}

// Declare creates a trait from methods and records it under name.
// Returns ErrTraitExists if name was already declared, plus any error New
// returns.
func (r *Registry) Declare(name string, methods map[string]Func) (*Trait, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.traits[name]; ok {
		return nil, ErrTraitExists
	}
	t, err := New(name, methods)
	if err != nil {
		return nil, err
	}
	r.traits[name] = t
	return t, nil
}

// Register records an existing trait, such as the result of a composition,
// under name.
func (r *Registry) Register(name string, t *Trait) error {
	if name == "" {
		return ErrInvalidTrait
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.traits[name]; ok {
		return ErrTraitExists
	}
	r.traits[name] = t
	return nil
}

// Lookup returns the trait declared under name.
// Returns ErrTraitNotFound if there is none.
func (r *Registry) Lookup(name string) (*Trait, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.traits[name]
	if !ok {
		return nil, ErrTraitNotFound
	}
	return t, nil
}

// Names returns the declared trait names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.traits))
}
