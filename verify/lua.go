// Package verify cross-checks pipeline results against an independent
// arithmetic evaluator backed by a Lua state.
package verify

import (
	"math"
	"strconv"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/pkg/errors"

	"calc/expression"
)

// Tolerance is the relative difference accepted by Check.
const Tolerance = 1e-9

// MaxDepth is the deepest parenthesis nesting handed to Lua. Its parser
// gives up at 200 nested levels.
const MaxDepth = 100

// ErrUnavailable means Lua could not produce a reference value, so no
// verdict about the result is possible.
var ErrUnavailable = errors.New("reference unavailable")

// Reference evaluates an infix token list with Lua. The expression handed to
// Lua is rebuilt from tokens, so nothing from the raw input reaches the
// interpreter. Failures wrap ErrUnavailable.
func Reference(tokens expression.TokenList) (float64, error) {
	if depth := nesting(tokens); depth > MaxDepth {
		return 0, errors.Wrapf(ErrUnavailable, "nesting depth %d exceeds %d", depth, MaxDepth)
	}
	source, err := render(tokens)
	if err != nil {
		return 0, err
	}

	state := lua.NewState()
	if err := lua.DoString(state, "return "+source); err != nil {
		return 0, errors.Wrapf(ErrUnavailable, "lua could not evaluate %q: %v", source, err)
	}
	value, ok := state.ToNumber(state.Top())
	if !ok {
		return 0, errors.Wrapf(ErrUnavailable, "lua returned a non-number for %q", source)
	}
	// empty stack
	state.Pop(state.Top())
	return value, nil
}

// Check compares result with the reference value of tokens. When Lua cannot
// evaluate tokens the returned error wraps ErrUnavailable; any other error is
// a mismatch.
func Check(tokens expression.TokenList, result float64) error {
	reference, err := Reference(tokens)
	if err != nil {
		return err
	}
	if !Close(reference, result) {
		return errors.Errorf("result %v differs from reference %v", result, reference)
	}
	return nil
}

// Close reports whether a and b are equal within Tolerance. NaN is close to
// NaN and infinities only to themselves.
func Close(a, b float64) bool {
	if a == b || (math.IsNaN(a) && math.IsNaN(b)) {
		return true
	}
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= Tolerance*math.Max(scale, 1)
}

func nesting(tokens expression.TokenList) int {
	depth, deepest := 0, 0
	for _, token := range tokens {
		if p, ok := token.(expression.Parenthesis); ok {
			if p.Symbol == expression.OpenParen {
				depth++
			} else {
				depth--
			}
			if depth > deepest {
				deepest = depth
			}
		}
	}
	return deepest
}

func render(tokens expression.TokenList) (string, error) {
	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		switch t := token.(type) {
		case expression.Number:
			parts = append(parts, strconv.FormatFloat(t.Value, 'g', -1, 64))
		case expression.Operator:
			parts = append(parts, string(t.Symbol))
		case expression.Parenthesis:
			parts = append(parts, string(t.Symbol))
		default:
			return "", errors.Errorf("unknown token %T", token)
		}
	}
	return strings.Join(parts, " "), nil
}
