package types

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/mesh-intelligence/traits/pkg/traits"
)

// Method recipe operations. Each names a built-in body shape that
// internal/recipe knows how to compile.
const (
	OpConst = "const" // return Value
	OpMul   = "mul"   // return Value * arg0
	OpAdd   = "add"   // return Value + arg0
	OpSet   = "set"   // self.Field = arg0, return arg0
	OpIncr  = "incr"  // self.Field += arg0, return the new value
	OpGet   = "get"   // return self.Field
	OpEcho  = "echo"  // return arg0
	OpBlock = "block" // return block(args...)
)

// validOps is the set of recognized method recipe operations.
var validOps = map[string]bool{
	OpConst: true,
	OpMul:   true,
	OpAdd:   true,
	OpSet:   true,
	OpIncr:  true,
	OpGet:   true,
	OpEcho:  true,
	OpBlock: true,
}

// fieldOps are the operations that read or write instance state.
var fieldOps = map[string]bool{
	OpSet:  true,
	OpIncr: true,
	OpGet:  true,
}

// MethodSpec is a declarative method body.
type MethodSpec struct {
	Op      string `json:"op" yaml:"op"`
	Value   any    `json:"value,omitempty" yaml:"value,omitempty"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Default any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Validate checks the operation and, for state operations, the field.
func (m MethodSpec) Validate() error {
	if !validOps[m.Op] {
		return fmt.Errorf("%w: unknown op %q", ErrInvalidRecipe, m.Op)
	}
	if fieldOps[m.Op] && m.Field == "" {
		return fmt.Errorf("%w: op %q requires a field", ErrInvalidRecipe, m.Op)
	}
	return nil
}

// IsValidOp reports whether op is a recognized method recipe operation.
func IsValidOp(op string) bool {
	return validOps[op]
}

// TraitRecord is a stored trait declaration.
type TraitRecord struct {
	TraitID   string                `json:"trait_id" yaml:"trait_id,omitempty"`
	Name      string                `json:"name" yaml:"name"`
	Methods   map[string]MethodSpec `json:"methods" yaml:"methods"`
	CreatedAt time.Time             `json:"created_at" yaml:"-"`
	UpdatedAt time.Time             `json:"updated_at" yaml:"-"`
}

// Validate checks the trait name, every method name and every method spec.
// Returns ErrInvalidName for an empty trait name and ErrInvalidRecipe for a
// bad method.
func (r *TraitRecord) Validate() error {
	if r.Name == "" {
		return ErrInvalidName
	}
	for _, name := range r.MethodNames() {
		if !traits.IsSymbol(name) {
			return fmt.Errorf("%w: %s", ErrInvalidRecipe, traits.SymbolError(name))
		}
		if err := r.Methods[name].Validate(); err != nil {
			return fmt.Errorf("method %s: %w", name, err)
		}
	}
	return nil
}

// MethodNames returns the declared method names, sorted.
func (r *TraitRecord) MethodNames() []string {
	return slices.Sorted(maps.Keys(r.Methods))
}
