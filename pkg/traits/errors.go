package traits

import (
	"errors"
	"fmt"
)

// Composition errors. Every typed error below unwraps to one of these, so
// callers match with errors.Is.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnprovidedMethod     = errors.New("unprovided method")
	ErrUnresolvedConflict   = errors.New("unresolved method conflict")
	ErrUnsatisfiedCondition = errors.New(UnsatisfiedConditionMessage)
)

// Binding and registry errors.
var (
	ErrNoMethod      = errors.New("undefined method")
	ErrTraitExists   = errors.New("trait already declared")
	ErrTraitNotFound = errors.New("trait not found")
	ErrInvalidTrait  = errors.New("trait name must not be empty")
	ErrNilMethodBody = errors.New("method body must not be nil")
)

// UnsatisfiedConditionMessage is the message of ErrUnsatisfiedCondition.
// It is part of the public contract and must not be reworded.
const UnsatisfiedConditionMessage = "Ninguno cumple la condicion"

// InvalidArgumentError reports a value that should have been a method name.
type InvalidArgumentError struct {
	Value any
}

func (e *InvalidArgumentError) Error() string {
	return SymbolError(e.Value)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// UnprovidedMethodError reports an alias of a method the trait does not have.
type UnprovidedMethodError struct {
	Name string
}

func (e *UnprovidedMethodError) Error() string {
	return UnprovidedError(e.Name)
}

func (e *UnprovidedMethodError) Unwrap() error { return ErrUnprovidedMethod }

// UnresolvedConflictError is returned by NoStrategy for a real collision.
type UnresolvedConflictError struct {
	Name string
}

func (e *UnresolvedConflictError) Error() string {
	return "Unresolved method conflict: " + e.Name
}

func (e *UnresolvedConflictError) Unwrap() error { return ErrUnresolvedConflict }

// NoMethodError is returned when an instance is sent a message its class
// does not answer.
type NoMethodError struct {
	Class  string
	Method string
}

func (e *NoMethodError) Error() string {
	return fmt.Sprintf("undefined method '%s' for %s", e.Method, e.Class)
}

func (e *NoMethodError) Unwrap() error { return ErrNoMethod }

// SymbolError returns the message used when value is not a method name.
func SymbolError(value any) string {
	return fmt.Sprintf("Expected a symbol but got: %v", value)
}

// UnprovidedError returns the message used when an alias names a method the
// trait does not provide.
func UnprovidedError(name string) string {
	return "Unprovided method: " + name
}
