package recipe

import (
	"cmp"
	"fmt"
	"math"
	"reflect"

	"github.com/mesh-intelligence/traits/pkg/traits"
)

// normalize converts numeric values to int64 or float64. Floats with no
// fractional part become int64, so a value read back from JSON behaves like
// the integer it was written as. Non-numeric values are returned unchanged.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n)
		}
		return float64(n)
	case float32:
		return normalize(float64(n))
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int64(n)
		}
		return n
	default:
		return v
	}
}

// numbers normalizes a and b and reports whether both are numeric. When
// either is a float both are returned as float64.
func numbers(a, b any) (x, y any, ok bool) {
	x, y = normalize(a), normalize(b)
	xi, xInt := x.(int64)
	yi, yInt := y.(int64)
	if xInt && yInt {
		return xi, yi, true
	}
	xf, xOK := asFloat(x)
	yf, yOK := asFloat(y)
	if !xOK || !yOK {
		return nil, nil, false
	}
	return xf, yf, true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// arith applies "add" or "mul" to two numbers.
func arith(op string, a, b any) (any, error) {
	x, y, ok := numbers(a, b)
	if !ok {
		return nil, fmt.Errorf("%w: cannot %s %v and %v", traits.ErrInvalidArgument, op, a, b)
	}
	switch xv := x.(type) {
	case int64:
		yv := y.(int64)
		if op == "mul" {
			return xv * yv, nil
		}
		return xv + yv, nil
	default:
		xf, yf := x.(float64), y.(float64)
		if op == "mul" {
			return xf * yf, nil
		}
		return xf + yf, nil
	}
}

// order compares a and b. Numbers compare by value and strings
// lexicographically; other pairs are not ordered.
func order(a, b any) (int, error) {
	if x, y, ok := numbers(a, b); ok {
		if xi, isInt := x.(int64); isInt {
			return cmp.Compare(xi, y.(int64)), nil
		}
		return cmp.Compare(x.(float64), y.(float64)), nil
	}
	xs, xOK := a.(string)
	ys, yOK := b.(string)
	if xOK && yOK {
		return cmp.Compare(xs, ys), nil
	}
	return 0, fmt.Errorf("%w: cannot compare %v and %v", traits.ErrInvalidArgument, a, b)
}

// compare evaluates "a op b" for one of the comparison operators.
func compare(op string, a, b any) (bool, error) {
	switch op {
	case "==", "!=":
		eq := equal(a, b)
		if op == "!=" {
			return !eq, nil
		}
		return eq, nil
	}
	c, err := order(a, b)
	if err != nil {
		return false, err
	}
	switch op {
	case ">":
		return c > 0, nil
	case ">=":
		return c >= 0, nil
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	}
	return false, fmt.Errorf("%w: unknown comparison %q", traits.ErrInvalidArgument, op)
}

func equal(a, b any) bool {
	if x, y, ok := numbers(a, b); ok {
		return x == y
	}
	return reflect.DeepEqual(a, b)
}
