package traits

import "regexp"

// symbolPattern matches a method name: an identifier with an optional
// trailing '!', '?' or '='.
var symbolPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*[!?=]?$`)

// IsSymbol reports whether name is a valid method name.
func IsSymbol(name string) bool {
	return symbolPattern.MatchString(name)
}

// checkSymbols returns an InvalidArgumentError for the first name that is not
// a symbol.
func checkSymbols(names []string) error {
	for _, name := range names {
		if !IsSymbol(name) {
			return &InvalidArgumentError{Value: name}
		}
	}
	return nil
}
