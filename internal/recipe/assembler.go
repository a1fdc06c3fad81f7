package recipe

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mesh-intelligence/traits/pkg/traits"
	"github.com/mesh-intelligence/traits/pkg/types"
)

// Assembler builds traits from records. Compiled traits and compositions are
// kept in a registry for the assembler's lifetime, so an operand named twice
// resolves to the same trait and its methods share owners.
type Assembler struct {
	source Source
	logger *slog.Logger

	mu       sync.Mutex
	compiled *traits.Registry
}

// NewAssembler returns an assembler that reads records from source. A nil
// logger uses slog.Default().
func NewAssembler(source Source, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		source:   source,
		logger:   logger,
		compiled: traits.NewRegistry(),
	}
}

// Trait returns the compiled trait record named name.
func (a *Assembler) Trait(name string) (*traits.Trait, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.trait(name)
}

// Composition returns the composition record named name, composed.
func (a *Assembler) Composition(name string) (*traits.Trait, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.composition(name, map[string]bool{})
}

// Resolve returns the trait or, failing that, the composition named name.
// Returns an error wrapping types.ErrUnknownOperand when neither exists.
func (a *Assembler) Resolve(name string) (*traits.Trait, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.operand(name, map[string]bool{})
}

// Compose applies each operand's aliases and then its exclusions, so an
// alias survives excluding the original name. The operands are then composed
// left to right with the record's strategies. The result is not cached; use
// Composition for stored compositions.
func (a *Assembler) Compose(rec *types.CompositionRecord) (*traits.Trait, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.compose(rec, map[string]bool{})
}

func (a *Assembler) trait(name string) (*traits.Trait, error) {
	key := "trait:" + name
	if t, err := a.compiled.Lookup(key); err == nil {
		return t, nil
	}
	rec, err := a.source.TraitRecord(name)
	if err != nil {
		return nil, err
	}
	t, err := CompileTrait(rec)
	if err != nil {
		return nil, err
	}
	if err := a.compiled.Register(key, t); err != nil {
		return nil, err
	}
	a.logger.Debug("compiled trait",
		slog.String("name", name),
		slog.Int("methods", t.Len()))
	return t, nil
}

func (a *Assembler) composition(name string, visiting map[string]bool) (*traits.Trait, error) {
	key := "composition:" + name
	if t, err := a.compiled.Lookup(key); err == nil {
		return t, nil
	}
	if visiting[name] {
		return nil, fmt.Errorf("%w: composition %s refers to itself", types.ErrInvalidRecipe, name)
	}
	rec, err := a.source.CompositionRecord(name)
	if err != nil {
		return nil, err
	}
	visiting[name] = true
	defer delete(visiting, name)

	t, err := a.compose(rec, visiting)
	if err != nil {
		return nil, err
	}
	if err := a.compiled.Register(key, t); err != nil {
		return nil, err
	}
	return t, nil
}

// operand resolves name as a trait first and a composition second.
func (a *Assembler) operand(name string, visiting map[string]bool) (*traits.Trait, error) {
	t, err := a.trait(name)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}
	t, err = a.composition(name, visiting)
	if err == nil {
		return t, nil
	}
	if errors.Is(err, types.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownOperand, name)
	}
	return nil, err
}

func (a *Assembler) compose(rec *types.CompositionRecord, visiting map[string]bool) (*traits.Trait, error) {
	if rec == nil {
		return nil, types.ErrInvalidData
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("composition %s: %w", rec.Name, err)
	}
	strategies, err := CompileStrategies(rec.Strategies)
	if err != nil {
		return nil, fmt.Errorf("composition %s: %w", rec.Name, err)
	}

	var result *traits.Trait
	for _, op := range rec.Operands {
		t, err := a.operand(op.Trait, visiting)
		if err != nil {
			return nil, fmt.Errorf("composition %s: %w", rec.Name, err)
		}
		if len(op.Alias) > 0 {
			if t, err = t.Alias(op.Alias); err != nil {
				return nil, fmt.Errorf("composition %s: %w", rec.Name, err)
			}
		}
		if len(op.Exclude) > 0 {
			if t, err = t.Exclude(op.Exclude...); err != nil {
				return nil, fmt.Errorf("composition %s: %w", rec.Name, err)
			}
		}
		if result == nil {
			result = t
			continue
		}
		if result, err = result.Compose(t, strategies); err != nil {
			return nil, fmt.Errorf("composition %s: %w", rec.Name, err)
		}
	}

	a.logger.Debug("composed",
		slog.String("name", rec.Name),
		slog.Int("operands", len(rec.Operands)),
		slog.Int("methods", result.Len()))
	return result, nil
}
