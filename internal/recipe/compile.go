package recipe

import (
	"fmt"
	"maps"
	"slices"

	"github.com/mesh-intelligence/traits/pkg/traits"
	"github.com/mesh-intelligence/traits/pkg/types"
)

// CompileMethod turns a method spec into a method body function.
// Returns types.ErrInvalidRecipe for an unknown op or a state op without a
// field.
func CompileMethod(spec types.MethodSpec) (traits.Func, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	value := normalize(spec.Value)
	def := normalize(spec.Default)
	field := spec.Field

	switch spec.Op {
	case types.OpConst:
		return traits.Const(value), nil

	case types.OpMul, types.OpAdd:
		op := spec.Op
		return func(_ *traits.Instance, args []any, _ traits.Block) (any, error) {
			x, err := argument(args, def)
			if err != nil {
				return nil, err
			}
			return arith(op, value, x)
		}, nil

	case types.OpEcho:
		return func(_ *traits.Instance, args []any, _ traits.Block) (any, error) {
			return argument(args, def)
		}, nil

	case types.OpSet:
		return func(self *traits.Instance, args []any, _ traits.Block) (any, error) {
			if self == nil {
				return nil, errNoReceiver
			}
			x, err := argument(args, def)
			if err != nil {
				return nil, err
			}
			self.Set(field, x)
			return x, nil
		}, nil

	case types.OpIncr:
		if def == nil {
			def = int64(1)
		}
		return func(self *traits.Instance, args []any, _ traits.Block) (any, error) {
			if self == nil {
				return nil, errNoReceiver
			}
			x, err := argument(args, def)
			if err != nil {
				return nil, err
			}
			cur, ok := self.Lookup(field)
			if !ok || cur == nil {
				cur = int64(0)
			}
			sum, err := arith("add", cur, x)
			if err != nil {
				return nil, err
			}
			self.Set(field, sum)
			return sum, nil
		}, nil

	case types.OpGet:
		return func(self *traits.Instance, _ []any, _ traits.Block) (any, error) {
			if self == nil {
				return nil, errNoReceiver
			}
			v, ok := self.Lookup(field)
			if !ok {
				return value, nil
			}
			return v, nil
		}, nil

	case types.OpBlock:
		return func(_ *traits.Instance, args []any, block traits.Block) (any, error) {
			if block == nil {
				return nil, fmt.Errorf("%w: no block given", traits.ErrInvalidArgument)
			}
			return block(args...)
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown op %q", types.ErrInvalidRecipe, spec.Op)
}

var errNoReceiver = fmt.Errorf("%w: method needs an instance", traits.ErrInvalidArgument)

// argument returns the first positional argument, or def when there is none.
func argument(args []any, def any) (any, error) {
	if len(args) > 0 {
		return normalize(args[0]), nil
	}
	if def != nil {
		return def, nil
	}
	return nil, fmt.Errorf("%w: missing argument", traits.ErrInvalidArgument)
}

// CompileTrait validates rec and declares a trait from its methods. All
// methods of the record share one owner.
func CompileTrait(rec *types.TraitRecord) (*traits.Trait, error) {
	if rec == nil {
		return nil, types.ErrInvalidData
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("trait %s: %w", rec.Name, err)
	}
	methods := make(map[string]traits.Func, len(rec.Methods))
	for _, name := range rec.MethodNames() {
		fn, err := CompileMethod(rec.Methods[name])
		if err != nil {
			return nil, fmt.Errorf("trait %s method %s: %w", rec.Name, name, err)
		}
		methods[name] = fn
	}
	return traits.New(rec.Name, methods)
}

// CompileStrategy returns the strategy a spec describes.
func CompileStrategy(spec types.StrategySpec) (traits.Strategy, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	switch spec.Kind {
	case types.StrategyNone:
		return traits.NoStrategy{}, nil
	case types.StrategyArbitrary:
		return traits.Arbitrary{}, nil
	case types.StrategySequential:
		return traits.Sequential{}, nil
	case types.StrategyConditional:
		op, want := spec.Op, normalize(spec.Value)
		return traits.NewConditional(func(v any) (bool, error) {
			return compare(op, v, want)
		}), nil
	case types.StrategyInject:
		combine, err := combiner(spec.Combiner)
		if err != nil {
			return nil, err
		}
		return traits.NewInject(combine), nil
	case types.StrategyFibonacci:
		return traits.NewFibonacci(), nil
	}
	return nil, fmt.Errorf("%w: unknown strategy %q", types.ErrInvalidRecipe, spec.Kind)
}

// CompileStrategies compiles a strategy spec per method name.
func CompileStrategies(specs map[string]types.StrategySpec) (traits.Strategies, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(traits.Strategies, len(specs))
	for _, name := range slices.Sorted(maps.Keys(specs)) {
		s, err := CompileStrategy(specs[name])
		if err != nil {
			return nil, fmt.Errorf("strategy for %s: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}

func combiner(name string) (traits.Combiner, error) {
	switch name {
	case types.CombineAdd, types.CombineMul:
		return func(a, b any) (any, error) { return arith(name, a, b) }, nil
	case types.CombineMax, types.CombineMin:
		return func(a, b any) (any, error) {
			c, err := order(a, b)
			if err != nil {
				return nil, err
			}
			if (name == types.CombineMax) == (c >= 0) {
				return normalize(a), nil
			}
			return normalize(b), nil
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown combiner %q", types.ErrInvalidRecipe, name)
}
