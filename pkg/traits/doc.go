// Package traits implements composable method bundles ("traits") and the
// engine that composes them.
//
// A Trait maps method names to MethodBody values. Traits are persistent
// values: Compose, Exclude and Alias each return a new Trait and never modify
// their receiver. When Compose finds the same name bound to bodies with
// different owners, it hands the colliding entries to the Strategy registered
// for that name; names without a registered strategy resolve with
// NoStrategy, which always fails.
//
// Traits are applied to a Class with Class.Uses. Methods the class already
// has are never replaced by trait methods.
//
// Example:
//
//	reg := traits.NewRegistry()
//	a, _ := reg.Declare("Atacante", map[string]traits.Func{
//	    "ataque": traits.Const(10),
//	})
//	b, _ := reg.Declare("Defensor", map[string]traits.Func{
//	    "defensa": traits.Const(50),
//	})
//	both, _ := a.Compose(b, nil)
//	guerrero := traits.NewClass("Guerrero").Uses(both).New()
//	v, _ := guerrero.Send("ataque") // 10
package traits
