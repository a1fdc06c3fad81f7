package traits

import (
	"math"
	"math/big"
	"math/bits"
)

// MaxFibonacciInput bounds the results NewFibonacci scores. fib of the bound
// has roughly 11.6 million bits.
const MaxFibonacciInput = 1 << 24

// ScoreFunc rates a candidate's zero-argument result. Higher is better.
type ScoreFunc func(value any) (float64, error)

// rankFunc rates a candidate with an arbitrary-precision score.
type rankFunc func(value any) (*big.Float, error)

// Scored resolves a collision by picking the candidate whose result scores
// highest. It shows that a strategy may inspect any number of candidates and
// run arbitrary computation while resolving.
type Scored struct {
	rank rankFunc
}

// NewScored returns a Scored strategy rating candidates with score. A NaN
// score is an InvalidArgumentError.
func NewScored(score ScoreFunc) *Scored {
	if score == nil {
		return &Scored{}
	}
	return &Scored{rank: func(value any) (*big.Float, error) {
		f, err := score(value)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) {
			return nil, &InvalidArgumentError{Value: value}
		}
		return new(big.Float).SetFloat64(f), nil
	}}
}

// NewFibonacci returns the example Scored strategy: each candidate is rated
// by the Fibonacci number of its integer result, computed exactly. Results
// above MaxFibonacciInput are an InvalidArgumentError.
func NewFibonacci() *Scored {
	return &Scored{rank: func(value any) (*big.Float, error) {
		n, ok := toInt64(value)
		if !ok || n > MaxFibonacciInput {
			return nil, &InvalidArgumentError{Value: value}
		}
		return new(big.Float).SetInt(fibonacci(n)), nil
	}}
}

// Resolve invokes every candidate once, with no arguments on a detached
// instance, and returns the entry with the maximum score. Ties go to the
// earliest entry. The chosen entry keeps its owner.
func (s *Scored) Resolve(entries []Entry) (Entry, error) {
	candidates, err := bodies(entries)
	if err != nil {
		return Entry{}, err
	}
	if s.rank == nil {
		return Entry{}, &InvalidArgumentError{Value: "nil score function"}
	}

	scratch := detachedInstance()
	best := -1
	var bestScore *big.Float
	for i, body := range candidates {
		v, err := body.Call(scratch, nil, nil)
		if err != nil {
			return Entry{}, err
		}
		score, err := s.rank(v)
		if err != nil {
			return Entry{}, err
		}
		if best < 0 || score.Cmp(bestScore) > 0 {
			best, bestScore = i, score
		}
	}
	return entries[best], nil
}

// fibonacci returns fib(n), where fib(n) = n for n < 2, by fast doubling:
// fib(2k) = fib(k)(2fib(k+1) - fib(k)) and fib(2k+1) = fib(k)^2 + fib(k+1)^2.
func fibonacci(n int64) *big.Int {
	if n < 2 {
		return big.NewInt(n)
	}
	a, b := big.NewInt(0), big.NewInt(1)
	t := new(big.Int)
	for i := bits.Len64(uint64(n)) - 1; i >= 0; i-- {
		c := new(big.Int).Mul(a, t.Sub(t.Lsh(b, 1), a))
		d := new(big.Int).Mul(a, a)
		d.Add(d, t.Mul(b, b))
		if (n>>uint(i))&1 == 0 {
			a, b = c, d
		} else {
			a, b = d, c.Add(c, d)
		}
	}
	return a
}

// toInt64 converts integer values, and floats without a fractional part.
func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > 1<<62 {
		return 0, false
	}
	return int64(f), true
}
