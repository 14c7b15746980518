package expression

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Scanner turns an infix expression into tokens. Unknown characters are
// rejected unless Permissive is set, in which case they are skipped.
type Scanner struct {
	Permissive bool
}

func NewScanner() *Scanner {
	return &Scanner{}
}

func (s *Scanner) Scan(data string) (TokenList, error) {
	var tokens TokenList
	runes := []rune(data)
	index := 0

	next := func() rune {
		current := runes[index]
		index = index + 1
		return current
	}

	currentNumber := strings.Builder{}
	numberStart := 0

	consumeNumber := func() error {
		if currentNumber.Len() == 0 {
			return nil
		}
		literal := currentNumber.String()
		currentNumber.Reset()
		value, ok := parseNumber(literal)
		if !ok {
			return kindErrorf(InvalidNumber, "%q at offset %d", literal, numberStart)
		}
		tokens = append(tokens, Number{
			Value:  value,
			Offset: numberStart,
		})
		return nil
	}

	for index < len(runes) {
		offset := index
		r := next()

		if isDigit(r) || r == '.' {
			if currentNumber.Len() == 0 {
				numberStart = offset
			}
			currentNumber.WriteRune(r)
			continue
		}

		err := consumeNumber()
		if err != nil {
			return nil, err
		}

		switch {
		case isOperator(r):
			tokens = append(tokens, Operator{
				Symbol: r,
				Offset: offset,
			})
		case r == OpenParen || r == CloseParen:
			tokens = append(tokens, Parenthesis{
				Symbol: r,
				Offset: offset,
			})
		case unicode.IsSpace(r):
			// ignore whitespace
		case s.Permissive:
			// drop anything we do not understand
		default:
			return nil, kindErrorf(UnexpectedCharacter, "%q at offset %d", r, offset)
		}
	}

	err := consumeNumber()
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// parseNumber accepts digits with at most one decimal point. Signs and
// exponents are not part of the literal grammar.
func parseNumber(literal string) (float64, bool) {
	if strings.Count(literal, ".") > 1 || strings.Trim(literal, ".") == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
