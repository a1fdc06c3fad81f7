package traits

// Sequential resolves a collision with a body that runs every candidate in
// order on the same instance and answers the last candidate's result.
type Sequential struct{}

// Resolve returns an entry whose body calls each candidate, left to right,
// with the same self, args and block. An error stops the chain.
func (Sequential) Resolve(entries []Entry) (Entry, error) {
	chain, err := bodies(entries)
	if err != nil {
		return Entry{}, err
	}
	return synthesize(entries[0].Name, func(self *Instance, args []any, block Block) (any, error) {
		var result any
		for _, body := range chain {
			v, err := body.Call(self, args, block)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil
	}), nil
}
