package expression

import (
	"github.com/pkg/errors"
)

// stackEntry is either an operator or an open parenthesis marker.
type stackEntry struct {
	op     Operator
	paren  bool
	offset int
}

type operatorStack []stackEntry

func (s *operatorStack) push(e stackEntry) {
	*s = append(*s, e)
}

func (s *operatorStack) pop() stackEntry {
	old := *s
	top := old[len(old)-1]
	*s = old[:len(old)-1]
	return top
}

func (s operatorStack) peek() (stackEntry, bool) {
	if len(s) == 0 {
		return stackEntry{}, false
	}
	return s[len(s)-1], true
}

// ToPostfix reorders an infix token list into reverse polish notation
// using the shunting-yard algorithm. Operators of equal priority are left
// associative.
func ToPostfix(tokens TokenList) (Postfix, error) {
	postfix := make(Postfix, 0, len(tokens))
	var stack operatorStack

	for _, token := range tokens {
		switch t := token.(type) {
		case Number:
			postfix = append(postfix, t)
		case Operator:
			for {
				top, ok := stack.peek()
				if !ok || top.paren || top.op.Priority() < t.Priority() {
					break
				}
				postfix = append(postfix, stack.pop().op)
			}
			stack.push(stackEntry{op: t, offset: t.Offset})
		case Parenthesis:
			if t.Symbol == OpenParen {
				stack.push(stackEntry{paren: true, offset: t.Offset})
				continue
			}
			closed := false
			for len(stack) > 0 {
				top := stack.pop()
				if top.paren {
					closed = true
					break
				}
				postfix = append(postfix, top.op)
			}
			if !closed {
				return nil, kindErrorf(MismatchedParenthesis, "unopened ')' at offset %d", t.Offset)
			}
		default:
			return nil, errors.Errorf("unknown token %T", token)
		}
	}

	for len(stack) > 0 {
		top := stack.pop()
		if top.paren {
			return nil, kindErrorf(MismatchedParenthesis, "unclosed '(' at offset %d", top.offset)
		}
		postfix = append(postfix, top.op)
	}

	return postfix, nil
}
