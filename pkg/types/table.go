package types

import "errors"

// Table provides uniform CRUD operations for a single record type.
// Get and Fetch return any; callers type-assert to *TraitRecord or
// *CompositionRecord.
type Table interface {
	// Get retrieves the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Get(id string) (any, error)

	// Set creates or updates a record. When id is empty a new UUID v7 is
	// generated. Returns the actual ID used (generated or provided).
	Set(id string, data any) (string, error)

	// Delete removes the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Delete(id string) error

	// Fetch returns all records matching the filter. An empty filter
	// returns every record in the table. The only supported key is "name".
	Fetch(filter map[string]any) ([]any, error)
}

// Table operation errors.
var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidID      = errors.New("invalid record ID")
	ErrInvalidData    = errors.New("invalid record data")
	ErrInvalidName    = errors.New("invalid name")
	ErrDuplicateName  = errors.New("name already in use")
	ErrInvalidFilter  = errors.New("invalid filter")
	ErrInvalidRecipe  = errors.New("invalid recipe")
	ErrUnknownOperand = errors.New("unknown operand")
)
