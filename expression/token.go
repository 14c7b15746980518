package expression

import (
	"strconv"
	"strings"
)

const (
	OpenParen  = '('
	CloseParen = ')'
)

// Token is one of Number, Operator or Parenthesis.
type Token interface {
	isToken()
	String() string
}

// PostfixToken is the subset of tokens that may appear in postfix output.
type PostfixToken interface {
	Token
	isPostfix()
}

type Number struct {
	Value  float64
	Offset int
}

type Operator struct {
	Symbol rune
	Offset int
}

type Parenthesis struct {
	Symbol rune
	Offset int
}

func (Number) isToken()      {}
func (Operator) isToken()    {}
func (Parenthesis) isToken() {}

func (Number) isPostfix()   {}
func (Operator) isPostfix() {}

func (n Number) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func (o Operator) String() string {
	return string(o.Symbol)
}

func (p Parenthesis) String() string {
	return string(p.Symbol)
}

// Priority is 2 for '*' and '/', 1 for '+' and '-'.
func (o Operator) Priority() int {
	switch o.Symbol {
	case '*', '/':
		return 2
	case '+', '-':
		return 1
	}
	return 0
}

func isOperator(r rune) bool {
	return r == '+' || r == '-' || r == '*' || r == '/'
}

type TokenList []Token

func (in TokenList) String() string {
	return join(len(in), func(i int) Token { return in[i] })
}

// Postfix is a token list in reverse polish order.
type Postfix []PostfixToken

func (in Postfix) String() string {
	return join(len(in), func(i int) Token { return in[i] })
}

func join(n int, at func(int) Token) string {
	sb := strings.Builder{}
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(at(i).String())
	}
	return sb.String()
}
