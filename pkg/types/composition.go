package types

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/mesh-intelligence/traits/pkg/traits"
)

// Strategy kinds accepted in a StrategySpec.
const (
	StrategyNone        = "none"
	StrategyArbitrary   = "arbitrary"
	StrategySequential  = "sequential"
	StrategyConditional = "conditional"
	StrategyInject      = "inject"
	StrategyFibonacci   = "fibonacci"
)

// validStrategies is the set of recognized strategy kinds.
var validStrategies = map[string]bool{
	StrategyNone:        true,
	StrategyArbitrary:   true,
	StrategySequential:  true,
	StrategyConditional: true,
	StrategyInject:      true,
	StrategyFibonacci:   true,
}

// Comparison operators for conditional strategies.
var validComparisons = map[string]bool{
	">": true, ">=": true, "<": true, "<=": true, "==": true, "!=": true,
}

// Combiners for inject strategies.
const (
	CombineAdd = "add"
	CombineMul = "mul"
	CombineMax = "max"
	CombineMin = "min"
)

var validCombiners = map[string]bool{
	CombineAdd: true,
	CombineMul: true,
	CombineMax: true,
	CombineMin: true,
}

// StrategySpec selects and parameterizes a conflict resolution strategy.
// Conditional strategies use Op and Value ("value > 5"); inject strategies
// use Combiner.
type StrategySpec struct {
	Kind     string `json:"kind" yaml:"kind"`
	Op       string `json:"op,omitempty" yaml:"op,omitempty"`
	Value    any    `json:"value,omitempty" yaml:"value,omitempty"`
	Combiner string `json:"combiner,omitempty" yaml:"combiner,omitempty"`
}

// Validate checks the kind and the parameters that kind needs.
func (s StrategySpec) Validate() error {
	if !validStrategies[s.Kind] {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidRecipe, s.Kind)
	}
	switch s.Kind {
	case StrategyConditional:
		if !validComparisons[s.Op] {
			return fmt.Errorf("%w: unknown comparison %q", ErrInvalidRecipe, s.Op)
		}
	case StrategyInject:
		if !validCombiners[s.Combiner] {
			return fmt.Errorf("%w: unknown combiner %q", ErrInvalidRecipe, s.Combiner)
		}
	}
	return nil
}

// OperandSpec is one trait in a composition, with the exclusions and aliases
// applied to it before it is composed.
type OperandSpec struct {
	Trait   string            `json:"trait" yaml:"trait"`
	Exclude []string          `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Alias   map[string]string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// CompositionRecord is a stored composition: operands composed left to right,
// with a strategy per conflicting method name.
type CompositionRecord struct {
	CompositionID string                  `json:"composition_id" yaml:"composition_id,omitempty"`
	Name          string                  `json:"name" yaml:"name"`
	Operands      []OperandSpec           `json:"operands" yaml:"operands"`
	Strategies    map[string]StrategySpec `json:"strategies,omitempty" yaml:"strategies,omitempty"`
	CreatedAt     time.Time               `json:"created_at" yaml:"-"`
	UpdatedAt     time.Time               `json:"updated_at" yaml:"-"`
}

// Validate checks the composition name, its operands and its strategies.
func (r *CompositionRecord) Validate() error {
	if r.Name == "" {
		return ErrInvalidName
	}
	if len(r.Operands) == 0 {
		return fmt.Errorf("%w: composition %s has no operands", ErrInvalidRecipe, r.Name)
	}
	for i, op := range r.Operands {
		if op.Trait == "" {
			return fmt.Errorf("%w: operand %d has no trait", ErrInvalidRecipe, i)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(r.Strategies)) {
		if !traits.IsSymbol(name) {
			return fmt.Errorf("%w: %s", ErrInvalidRecipe, traits.SymbolError(name))
		}
		if err := r.Strategies[name].Validate(); err != nil {
			return fmt.Errorf("strategy for %s: %w", name, err)
		}
	}
	return nil
}

// TraitNames returns the operand trait names in composition order.
func (r *CompositionRecord) TraitNames() []string {
	names := make([]string, len(r.Operands))
	for i, op := range r.Operands {
		names[i] = op.Trait
	}
	return names
}
