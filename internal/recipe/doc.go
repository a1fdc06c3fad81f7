// Package recipe compiles declarative trait and composition records into
// engine values.
//
// A TraitRecord names its methods with MethodSpecs ("const", "mul", "incr",
// and so on); CompileTrait turns the record into a *traits.Trait with one
// owner for the whole declaration. A CompositionRecord lists operands and a
// StrategySpec per conflicting method; the Assembler resolves operands
// against a Source (the catalog or a YAML manifest) and composes them left
// to right.
package recipe
