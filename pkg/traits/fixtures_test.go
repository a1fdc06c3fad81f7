package traits

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixtures declares the traits shared by the tests in this package.
type fixtures struct {
	Atacante                        *Trait
	Defensor                        *Trait
	Recuperable                     *Trait
	AtacanteRecuperable             *Trait
	DefensorRecuperable             *Trait
	Golondrina                      *Trait
	AtacanteMultiplicado            *Trait
	AtacanteSumado                  *Trait
	AtacanteRecuperableMultiplicado *Trait
	AtacanteRecuperableSumado       *Trait
	T1                              *Trait
	T2                              *Trait
}

// intArg returns args[i] as an int, or def when the argument is missing.
func intArg(args []any, i, def int) int {
	if i < len(args) {
		return args[i].(int)
	}
	return def
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()
	reg := NewRegistry()

	declare := func(name string, methods map[string]Func) *Trait {
		tr, err := reg.Declare(name, methods)
		require.NoError(t, err)
		return tr
	}

	return &fixtures{
		Atacante:    declare("Atacante", map[string]Func{"ataque": Const(10)}),
		Defensor:    declare("Defensor", map[string]Func{"defensa": Const(50)}),
		Recuperable: declare("Recuperable", map[string]Func{"recuperarse": Const(5)}),
		AtacanteRecuperable: declare("AtacanteRecuperable", map[string]Func{
			"ataque":      Const(10),
			"recuperarse": Const(5),
		}),
		DefensorRecuperable: declare("DefensorRecuperable", map[string]Func{
			"defensa":     Const(50),
			"recuperarse": Const(7),
		}),
		Golondrina: declare("Golondrina", map[string]Func{
			"especie": Const("golondrina"),
			"energia": Const(45),
			"volar":   Const("volar"),
		}),
		AtacanteMultiplicado: declare("AtacanteMultiplicado", map[string]Func{
			"ataque": func(_ *Instance, args []any, _ Block) (any, error) {
				return 10 * intArg(args, 0, 0), nil
			},
		}),
		AtacanteSumado: declare("AtacanteSumado", map[string]Func{
			"ataque": func(_ *Instance, args []any, _ Block) (any, error) {
				return 10 + intArg(args, 0, 0), nil
			},
		}),
		AtacanteRecuperableMultiplicado: declare("AtacanteRecuperableMultiplicado", map[string]Func{
			"ataque": func(_ *Instance, args []any, _ Block) (any, error) {
				return 10 * intArg(args, 0, 0), nil
			},
			"recuperarse": func(_ *Instance, args []any, _ Block) (any, error) {
				return 5 * intArg(args, 0, 1), nil
			},
		}),
		AtacanteRecuperableSumado: declare("AtacanteRecuperableSumado", map[string]Func{
			"ataque": func(_ *Instance, args []any, _ Block) (any, error) {
				return 10 + intArg(args, 0, 0), nil
			},
			"recuperarse": func(_ *Instance, args []any, _ Block) (any, error) {
				return 5 + intArg(args, 0, 0), nil
			},
		}),
		T1: declare("T1", map[string]Func{
			"count!": func(self *Instance, args []any, _ Block) (any, error) {
				self.Set("count", args[0])
				return args[0], nil
			},
			"count": func(self *Instance, _ []any, _ Block) (any, error) {
				return self.Get("count"), nil
			},
		}),
		T2: declare("T2", map[string]Func{
			"count!": func(self *Instance, args []any, _ Block) (any, error) {
				n := self.Get("count").(int) + args[0].(int)
				self.Set("count", n)
				return n, nil
			},
		}),
	}
}

// instanceUses binds tr to a fresh class and returns an instance of it.
func instanceUses(tr *Trait) *Instance {
	return NewClass("Anon").Uses(tr).New()
}

// send calls name on obj and fails the test on error.
func send(t *testing.T, obj *Instance, name string, args ...any) any {
	t.Helper()
	v, err := obj.Send(name, args...)
	require.NoError(t, err)
	return v
}

// add is the combiner used by the inject scenarios.
func add(a, b any) (any, error) {
	return a.(int) + b.(int), nil
}

// greaterThan builds a predicate for integer results.
func greaterThan(n int) Predicate {
	return func(v any) (bool, error) {
		return v.(int) > n, nil
	}
}
