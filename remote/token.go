package remote

import "fmt"

type TokenType int

const (
	TokenTypeLBrace TokenType = iota
	TokenTypeRBrace
	TokenTypeString
	TokenTypeName
	TokenTypeEquals
	TokenTypeComma
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeLBrace:
		return "{"
	case TokenTypeRBrace:
		return "}"
	case TokenTypeString:
		return "<string>"
	case TokenTypeName:
		return "<name>"
	case TokenTypeEquals:
		return "="
	case TokenTypeComma:
		return ","
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one lexeme of a series selector. StringVal holds the text of
// names and the unescaped contents of strings.
type Token struct {
	TokenType TokenType
	StringVal string
	Offset    int
}

func (t Token) String() string {
	switch t.TokenType {
	case TokenTypeName:
		return fmt.Sprintf("name %s at offset %d", t.StringVal, t.Offset)
	case TokenTypeString:
		return fmt.Sprintf("string %q at offset %d", t.StringVal, t.Offset)
	}
	return fmt.Sprintf("%q at offset %d", t.TokenType.String(), t.Offset)
}

type TokenList []Token
