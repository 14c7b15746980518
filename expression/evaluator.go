package expression

import (
	"github.com/pkg/errors"
)

// Evaluate computes the value of a postfix token list.
func Evaluate(postfix Postfix) (float64, error) {
	values := make([]float64, 0, len(postfix))

	for _, token := range postfix {
		switch t := token.(type) {
		case Number:
			values = append(values, t.Value)
		case Operator:
			if len(values) < 2 {
				return 0, kindErrorf(MalformedExpression, "operator %q at offset %d is missing an operand", t.Symbol, t.Offset)
			}
			rhs := values[len(values)-1]
			lhs := values[len(values)-2]
			values = values[:len(values)-2]

			result, err := apply(t, lhs, rhs)
			if err != nil {
				return 0, err
			}
			values = append(values, result)
		default:
			return 0, errors.Errorf("unknown postfix token %T", token)
		}
	}

	if len(values) != 1 {
		return 0, kindErrorf(MalformedExpression, "%d values left after evaluation", len(values))
	}
	return values[0], nil
}

func apply(op Operator, lhs, rhs float64) (float64, error) {
	switch op.Symbol {
	case '+':
		return lhs + rhs, nil
	case '-':
		return lhs - rhs, nil
	case '*':
		return lhs * rhs, nil
	case '/':
		if rhs == 0 {
			return 0, kindErrorf(DivisionByZero, "at offset %d", op.Offset)
		}
		return lhs / rhs, nil
	}
	return 0, errors.Errorf("unsupported operator %q", op.Symbol)
}
