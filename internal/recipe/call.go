package recipe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/traits/pkg/traits"
)

// Call is a parsed message send such as "ataque(5)".
type Call struct {
	Method string
	Args   []any
}

// String formats the call back into its source form.
func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		if s, ok := a.(string); ok {
			parts[i] = strconv.Quote(s)
			continue
		}
		parts[i] = fmt.Sprint(a)
	}
	return c.Method + "(" + strings.Join(parts, ", ") + ")"
}

// ParseCall parses "name", "name()" or "name(arg, ...)". Arguments are
// integers, floats, true/false, nil or double-quoted strings.
func ParseCall(expr string) (Call, error) {
	expr = strings.TrimSpace(expr)
	name, rest, hasArgs := strings.Cut(expr, "(")
	name = strings.TrimSpace(name)
	if !traits.IsSymbol(name) {
		return Call{}, &traits.InvalidArgumentError{Value: name}
	}
	if !hasArgs {
		return Call{Method: name}, nil
	}
	body, ok := strings.CutSuffix(strings.TrimSpace(rest), ")")
	if !ok {
		return Call{}, fmt.Errorf("%w: missing ')' in %q", traits.ErrInvalidArgument, expr)
	}
	args, err := splitArgs(body)
	if err != nil {
		return Call{}, fmt.Errorf("%w: %q: %v", traits.ErrInvalidArgument, expr, err)
	}
	call := Call{Method: name}
	for _, raw := range args {
		v, err := ParseValue(raw)
		if err != nil {
			return Call{}, fmt.Errorf("%w: %q: %v", traits.ErrInvalidArgument, expr, err)
		}
		call.Args = append(call.Args, v)
	}
	return call, nil
}

// splitArgs splits on commas outside double-quoted strings.
func splitArgs(body string) ([]string, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	var (
		args    []string
		start   int
		quoted  bool
		escaped bool
	)
	for i, r := range body {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && quoted:
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			args = append(args, body[start:i])
			start = i + 1
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated string")
	}
	return append(args, body[start:]), nil
}

// ParseValue parses one literal: an integer, a float, true, false, nil or a
// double-quoted string.
func ParseValue(raw string) (any, error) {
	s := strings.TrimSpace(raw)
	switch s {
	case "":
		return nil, fmt.Errorf("empty argument")
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "nil":
		return nil, nil
	}
	if strings.HasPrefix(s, `"`) {
		return strconv.Unquote(s)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot parse argument %q", s)
}
