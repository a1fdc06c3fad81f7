package traits

// Predicate decides whether a candidate's result is acceptable.
type Predicate func(value any) (bool, error)

// Conditional resolves a collision with a body that answers the first
// candidate result satisfying a predicate.
type Conditional struct {
	pred Predicate
}

// NewConditional returns a Conditional strategy gated by pred.
func NewConditional(pred Predicate) *Conditional {
	return &Conditional{pred: pred}
}

// Resolve returns an entry whose body invokes the candidates lazily in order
// and returns the first result for which the predicate holds. Candidates after
// the first match are not invoked. If none match, ErrUnsatisfiedCondition is
// returned. Candidate and predicate errors are returned unchanged.
func (c *Conditional) Resolve(entries []Entry) (Entry, error) {
	candidates, err := bodies(entries)
	if err != nil {
		return Entry{}, err
	}
	if c.pred == nil {
		return Entry{}, &InvalidArgumentError{Value: "nil predicate"}
	}
	pred := c.pred
	return synthesize(entries[0].Name, func(self *Instance, args []any, block Block) (any, error) {
		for _, body := range candidates {
			v, err := body.Call(self, args, block)
			if err != nil {
				return nil, err
			}
			ok, err := pred(v)
			if err != nil {
				return nil, err
			}
			if ok {
				return v, nil
			}
		}
		return nil, ErrUnsatisfiedCondition
	}), nil
}
