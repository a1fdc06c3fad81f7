package traits

// Strategy turns the entries colliding on one name into a single entry.
// Compose always passes the left operand's entry first; implementations may
// accept any number of entries.
type Strategy interface {
	Resolve(entries []Entry) (Entry, error)
}

// StrategyFunc adapts an ordinary function to the Strategy interface.
type StrategyFunc func(entries []Entry) (Entry, error)

// Resolve calls f(entries).
func (f StrategyFunc) Resolve(entries []Entry) (Entry, error) {
	return f(entries)
}

// NoStrategy is the default strategy. It fails on every real collision so
// that each conflicting name must be resolved explicitly.
type NoStrategy struct{}

// Resolve returns an UnresolvedConflictError unless entries is empty.
func (NoStrategy) Resolve(entries []Entry) (Entry, error) {
	if len(entries) == 0 {
		return Entry{}, nil
	}
	return Entry{}, &UnresolvedConflictError{Name: entries[0].Name}
}

// Arbitrary keeps the first entry. It is deterministic, not random.
type Arbitrary struct{}

// Resolve returns entries[0] unchanged, owner included.
func (Arbitrary) Resolve(entries []Entry) (Entry, error) {
	if len(entries) == 0 {
		return Entry{}, &InvalidArgumentError{Value: "no entries to resolve"}
	}
	return entries[0], nil
}

// synthesize wraps fn in a body with a fresh owner, so the resolution is a
// new provenance for later compositions.
func synthesize(name string, fn Func) Entry {
	return Entry{Name: name, Body: NewMethodBody(NewOwner(), fn)}
}

// bodies extracts the bodies of entries after checking there is at least one.
func bodies(entries []Entry) ([]*MethodBody, error) {
	if len(entries) == 0 {
		return nil, &InvalidArgumentError{Value: "no entries to resolve"}
	}
	out := make([]*MethodBody, len(entries))
	for i, e := range entries {
		if e.Body == nil {
			return nil, ErrNilMethodBody
		}
		out[i] = e.Body
	}
	return out, nil
}
