package remote

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Scanner tokenizes series selectors such as calc_result{job="demo"}.
type Scanner struct {
}

func NewSelectorScanner() *Scanner {
	return &Scanner{}
}

func (*Scanner) Scan(data string) (TokenList, error) {
	var tokens TokenList
	runes := []rune(data)
	index := 0

	next := func() rune {
		current := runes[index]
		index = index + 1
		return current
	}

	peek := func() rune {
		return runes[index]
	}

	name := func(first rune, offset int) Token {
		sb := strings.Builder{}
		sb.WriteRune(first)
		for index < len(runes) && isNameRune(peek(), false) {
			sb.WriteRune(next())
		}
		return Token{
			TokenType: TokenTypeName,
			StringVal: sb.String(),
			Offset:    offset,
		}
	}

	quoted := func(offset int) (Token, error) {
		sb := strings.Builder{}
		for index < len(runes) {
			r := next()
			if r == '"' {
				return Token{
					TokenType: TokenTypeString,
					StringVal: sb.String(),
					Offset:    offset,
				}, nil
			}
			if r == '\\' && index < len(runes) {
				r = next()
			}
			sb.WriteRune(r)
		}
		return Token{}, errors.Errorf("unterminated string starting at offset %d", offset)
	}

	for index < len(runes) {
		offset := index
		r := next()

		// ignore whitespace
		if unicode.IsSpace(r) {
			continue
		}

		switch r {
		case '{':
			tokens = append(tokens, Token{TokenType: TokenTypeLBrace, Offset: offset})
		case '}':
			tokens = append(tokens, Token{TokenType: TokenTypeRBrace, Offset: offset})
		case '=':
			tokens = append(tokens, Token{TokenType: TokenTypeEquals, Offset: offset})
		case ',':
			tokens = append(tokens, Token{TokenType: TokenTypeComma, Offset: offset})
		case '"':
			token, err := quoted(offset)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
		default:
			if !isNameRune(r, true) {
				return nil, errors.Errorf("invalid character %q at offset %d", r, offset)
			}
			tokens = append(tokens, name(r, offset))
		}
	}

	return tokens, nil
}

func isNameRune(r rune, first bool) bool {
	if r == '_' || r == ':' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return true
	}
	return !first && r >= '0' && r <= '9'
}
