package types

// Standard table names for Catalog.GetTable.
const (
	TraitsTable       = "traits"
	CompositionsTable = "compositions"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	TraitsTable,
	CompositionsTable,
}

// IsStandardTable reports whether name is one of StandardTableNames.
func IsStandardTable(name string) bool {
	for _, n := range StandardTableNames {
		if n == name {
			return true
		}
	}
	return false
}
