// Package types defines the Catalog and Table interfaces, the trait and
// composition records they store, and the standard errors of the trait
// catalog.
//
// Records describe traits as data: a TraitRecord lists method recipes
// (MethodSpec) and a CompositionRecord lists operands and the strategy used
// for each conflicting method name. internal/recipe compiles records into
// pkg/traits values.
package types
