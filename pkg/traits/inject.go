package traits

// Combiner merges two candidate results into one.
type Combiner func(a, b any) (any, error)

// Inject resolves a collision with a body that runs every candidate and
// combines their results.
type Inject struct {
	combine Combiner
}

// NewInject returns an Inject strategy that merges results with combine.
func NewInject(combine Combiner) *Inject {
	return &Inject{combine: combine}
}

// Resolve returns an entry whose body calls all candidates with the same
// arguments, then folds their results left to right: for two candidates the
// answer is combine(a, b). Every candidate runs before combining.
func (s *Inject) Resolve(entries []Entry) (Entry, error) {
	candidates, err := bodies(entries)
	if err != nil {
		return Entry{}, err
	}
	if s.combine == nil {
		return Entry{}, &InvalidArgumentError{Value: "nil combiner"}
	}
	combine := s.combine
	return synthesize(entries[0].Name, func(self *Instance, args []any, block Block) (any, error) {
		results := make([]any, len(candidates))
		for i, body := range candidates {
			v, err := body.Call(self, args, block)
			if err != nil {
				return nil, err
			}
			results[i] = v
		}
		acc := results[0]
		for _, v := range results[1:] {
			next, err := combine(acc, v)
			if err != nil {
				return nil, err
			}
			acc = next
		}
		return acc, nil
	}), nil
}
