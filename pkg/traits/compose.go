package traits

// Strategies maps a method name to the strategy that resolves collisions on
// that name. A nil map is valid; unlisted names use NoStrategy.
type Strategies map[string]Strategy

// lookup returns the strategy for name, defaulting to NoStrategy.
func (s Strategies) lookup(name string) Strategy {
	if st, ok := s[name]; ok && st != nil {
		return st
	}
	return NoStrategy{}
}

// Collision is a name bound to differently-owned bodies on each side of a
// composition.
type Collision struct {
	Name  string
	Left  Entry
	Right Entry
}

// Collisions returns the names t and other bind to bodies with different
// owners, sorted by name. Bodies with the same owner do not collide.
func (t *Trait) Collisions(other *Trait) []Collision {
	var out []Collision
	for _, name := range t.Names() {
		right, ok := other.table()[name]
		if !ok {
			continue
		}
		left := t.table()[name]
		if left.owner == right.owner {
			continue
		}
		out = append(out, Collision{
			Name:  name,
			Left:  Entry{Name: name, Body: left},
			Right: Entry{Name: name, Body: right},
		})
	}
	return out
}

// Compose returns the union of t and other. Each collision is resolved by
// strategies[name] (NoStrategy when absent), called with the left entry first.
// The first strategy error aborts the composition and is returned unchanged;
// no partially composed trait is returned. A nil trait on either side is
// empty.
func (t *Trait) Compose(other *Trait, strategies Strategies) (*Trait, error) {
	collisions := t.Collisions(other)

	resolved := make(map[string]*MethodBody, len(collisions))
	for _, c := range collisions {
		entry, err := strategies.lookup(c.Name).Resolve([]Entry{c.Left, c.Right})
		if err != nil {
			return nil, err
		}
		if entry.Body == nil {
			return nil, &InvalidArgumentError{Value: "nil resolution for " + c.Name}
		}
		// The resolved entry always lands under the colliding name.
		resolved[c.Name] = entry.Body
	}

	methods := make(map[string]*MethodBody, len(t.table())+len(other.table()))
	for name, body := range t.table() {
		methods[name] = body
	}
	for name, body := range other.table() {
		if _, ok := methods[name]; !ok {
			methods[name] = body
		}
	}
	for name, body := range resolved {
		methods[name] = body
	}

	return &Trait{name: composedName(t.Name(), other.Name()), methods: methods}, nil
}

// composedName joins two operand names for display.
func composedName(left, right string) string {
	switch {
	case left == "":
		return right
	case right == "":
		return left
	default:
		return "(" + left + " + " + right + ")"
	}
}
