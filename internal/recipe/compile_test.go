package recipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/traits/pkg/traits"
	"github.com/mesh-intelligence/traits/pkg/types"
)

func TestCompileMethod(t *testing.T) {
	double := func(args ...any) (any, error) { return arith("mul", args[0], 2) }

	tests := []struct {
		name    string
		spec    types.MethodSpec
		args    []any
		block   traits.Block
		want    any
		wantErr error
	}{
		{name: "const int", spec: types.MethodSpec{Op: types.OpConst, Value: 10}, want: int64(10)},
		{name: "const string", spec: types.MethodSpec{Op: types.OpConst, Value: "volar"}, want: "volar"},
		{name: "const integral float from JSON", spec: types.MethodSpec{Op: types.OpConst, Value: 45.0}, want: int64(45)},
		{name: "mul", spec: types.MethodSpec{Op: types.OpMul, Value: 10}, args: []any{5}, want: int64(50)},
		{name: "mul float", spec: types.MethodSpec{Op: types.OpMul, Value: 1.5}, args: []any{2}, want: 3.0},
		{name: "add", spec: types.MethodSpec{Op: types.OpAdd, Value: 10}, args: []any{5}, want: int64(15)},
		{name: "mul default", spec: types.MethodSpec{Op: types.OpMul, Value: 5, Default: 1}, want: int64(5)},
		{name: "mul missing argument", spec: types.MethodSpec{Op: types.OpMul, Value: 5}, wantErr: traits.ErrInvalidArgument},
		{name: "mul non-number", spec: types.MethodSpec{Op: types.OpMul, Value: 5}, args: []any{"x"}, wantErr: traits.ErrInvalidArgument},
		{name: "echo", spec: types.MethodSpec{Op: types.OpEcho}, args: []any{"hola"}, want: "hola"},
		{name: "block", spec: types.MethodSpec{Op: types.OpBlock}, args: []any{21}, block: double, want: int64(42)},
		{name: "block missing", spec: types.MethodSpec{Op: types.OpBlock}, wantErr: traits.ErrInvalidArgument},
		{name: "unknown op", spec: types.MethodSpec{Op: "div"}, wantErr: types.ErrInvalidRecipe},
		{name: "get without field", spec: types.MethodSpec{Op: types.OpGet}, wantErr: types.ErrInvalidRecipe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := CompileMethod(tt.spec)
			if err == nil {
				var got any
				got, err = fn(traits.NewClass("C").New(), tt.args, tt.block)
				if tt.wantErr == nil {
					require.NoError(t, err)
					assert.Equal(t, tt.want, got)
					return
				}
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompileMethodState(t *testing.T) {
	set, err := CompileMethod(types.MethodSpec{Op: types.OpSet, Field: "energia"})
	require.NoError(t, err)
	get, err := CompileMethod(types.MethodSpec{Op: types.OpGet, Field: "energia", Value: 0})
	require.NoError(t, err)
	incr, err := CompileMethod(types.MethodSpec{Op: types.OpIncr, Field: "energia"})
	require.NoError(t, err)

	self := traits.NewClass("Golondrina").New()

	got, err := get(self, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got, "get returns Value before the field is set")

	_, err = set(self, []any{40}, nil)
	require.NoError(t, err)
	got, err = incr(self, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(41), got, "incr defaults to 1")
	got, err = incr(self, []any{4}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(45), got)

	got, err = get(self, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(45), got)

	_, err = get(nil, nil, nil)
	assert.ErrorIs(t, err, traits.ErrInvalidArgument)
}

func TestCompileTrait(t *testing.T) {
	tr, err := CompileTrait(&types.TraitRecord{
		Name: "Golondrina",
		Methods: map[string]types.MethodSpec{
			"especie": {Op: types.OpConst, Value: "golondrina"},
			"energia": {Op: types.OpConst, Value: 45},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Golondrina", tr.Name())
	assert.Equal(t, []string{"energia", "especie"}, tr.Names())

	a, _ := tr.Method("energia")
	b, _ := tr.Method("especie")
	assert.Equal(t, a.Owner(), b.Owner(), "one declaration, one owner")

	_, err = CompileTrait(&types.TraitRecord{Name: "Bad", Methods: map[string]types.MethodSpec{"x": {Op: "nope"}}})
	assert.ErrorIs(t, err, types.ErrInvalidRecipe)

	_, err = CompileTrait(nil)
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestCompileStrategy(t *testing.T) {
	five := entry("recuperarse", 5)
	seven := entry("recuperarse", 7)

	tests := []struct {
		name    string
		spec    types.StrategySpec
		want    any
		wantErr error
	}{
		{name: "none", spec: types.StrategySpec{Kind: types.StrategyNone}, wantErr: traits.ErrUnresolvedConflict},
		{name: "arbitrary", spec: types.StrategySpec{Kind: types.StrategyArbitrary}, want: int64(5)},
		{name: "sequential", spec: types.StrategySpec{Kind: types.StrategySequential}, want: int64(7)},
		{name: "conditional", spec: types.StrategySpec{Kind: types.StrategyConditional, Op: ">", Value: 5}, want: int64(7)},
		{name: "conditional first match", spec: types.StrategySpec{Kind: types.StrategyConditional, Op: "<=", Value: 7}, want: int64(5)},
		{name: "conditional unsatisfied", spec: types.StrategySpec{Kind: types.StrategyConditional, Op: ">", Value: 8}, wantErr: traits.ErrUnsatisfiedCondition},
		{name: "inject add", spec: types.StrategySpec{Kind: types.StrategyInject, Combiner: types.CombineAdd}, want: int64(12)},
		{name: "inject mul", spec: types.StrategySpec{Kind: types.StrategyInject, Combiner: types.CombineMul}, want: int64(35)},
		{name: "inject max", spec: types.StrategySpec{Kind: types.StrategyInject, Combiner: types.CombineMax}, want: int64(7)},
		{name: "inject min", spec: types.StrategySpec{Kind: types.StrategyInject, Combiner: types.CombineMin}, want: int64(5)},
		{name: "fibonacci", spec: types.StrategySpec{Kind: types.StrategyFibonacci}, want: int64(7)},
		{name: "unknown", spec: types.StrategySpec{Kind: "random"}, wantErr: types.ErrInvalidRecipe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := CompileStrategy(tt.spec)
			if err == nil {
				var resolved traits.Entry
				resolved, err = s.Resolve([]traits.Entry{five, seven})
				if err == nil {
					var got any
					got, err = resolved.Body.Call(traits.NewClass("C").New(), nil, nil)
					if tt.wantErr == nil {
						require.NoError(t, err)
						assert.Equal(t, tt.want, got)
						return
					}
				}
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestCompileStrategies(t *testing.T) {
	got, err := CompileStrategies(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = CompileStrategies(map[string]types.StrategySpec{
		"ataque":  {Kind: types.StrategyArbitrary},
		"defensa": {Kind: types.StrategySequential},
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = CompileStrategies(map[string]types.StrategySpec{"ataque": {Kind: types.StrategyInject}})
	assert.ErrorIs(t, err, types.ErrInvalidRecipe)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		op   string
		a, b any
		want bool
	}{
		{">", 7, 5, true},
		{">", 5.5, 5, true},
		{">=", int64(5), 5.0, true},
		{"<", "a", "b", true},
		{"<=", 8, 7, false},
		{"==", 5, 5.0, true},
		{"==", "golondrina", "golondrina", true},
		{"!=", true, false, true},
	}
	for _, tt := range tests {
		got, err := compare(tt.op, tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v %s %v", tt.a, tt.op, tt.b)
	}

	_, err := compare(">", "a", 1)
	assert.ErrorIs(t, err, traits.ErrInvalidArgument)
}

// entry declares a single constant method in its own trait.
func entry(name string, v any) traits.Entry {
	fn, err := CompileMethod(types.MethodSpec{Op: types.OpConst, Value: v})
	if err != nil {
		panic(err)
	}
	return traits.Entry{Name: name, Body: traits.NewMethodBody(traits.NewOwner(), fn)}
}
