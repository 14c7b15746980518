package remote

import (
	"sort"

	"github.com/pkg/errors"
	"go.buf.build/protocolbuffers/go/prometheus/prometheus"
)

const MetricNameLabel = "__name__"

// Parser turns selector tokens into a time series without samples.
//
//	selector = name [ "{" [ label { "," label } [ "," ] ] "}" ]
//	label    = name "=" string
type Parser struct {
	index  int
	tokens TokenList
}

func NewSelectorParser(tokens TokenList) *Parser {
	return &Parser{
		index:  0,
		tokens: tokens,
	}
}

// peek returns the current token, or nil at the end of the selector.
func (p *Parser) peek() *Token {
	if p.index < len(p.tokens) {
		return &p.tokens[p.index]
	}
	return nil
}

// accept consumes the current token if it has type t.
func (p *Parser) accept(t TokenType) bool {
	if token := p.peek(); token != nil && token.TokenType == t {
		p.index++
		return true
	}
	return false
}

func (p *Parser) expect(t TokenType) (*Token, error) {
	token := p.peek()
	if token == nil {
		return nil, errors.Errorf("expected %v but the selector ended", t)
	}
	if token.TokenType != t {
		return nil, errors.Errorf("expected %v but got %v", t, token)
	}
	p.index++
	return token, nil
}

func (p *Parser) label() (*prometheus.Label, error) {
	name, err := p.expect(TokenTypeName)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenTypeEquals); err != nil {
		return nil, err
	}
	value, err := p.expect(TokenTypeString)
	if err != nil {
		return nil, err
	}
	return &prometheus.Label{
		Name:  name.StringVal,
		Value: value.StringVal,
	}, nil
}

// labels parses the body of a brace block up to and including "}".
func (p *Parser) labels() ([]*prometheus.Label, error) {
	var labels []*prometheus.Label
	for !p.accept(TokenTypeRBrace) {
		label, err := p.label()
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)

		if p.accept(TokenTypeComma) {
			continue
		}
		if _, err := p.expect(TokenTypeRBrace); err != nil {
			return nil, err
		}
		break
	}
	return labels, nil
}

func (p *Parser) Parse() (*prometheus.TimeSeries, error) {
	name, err := p.expect(TokenTypeName)
	if err != nil {
		return nil, err
	}

	labels := []*prometheus.Label{{
		Name:  MetricNameLabel,
		Value: name.StringVal,
	}}

	if p.peek() != nil {
		if _, err := p.expect(TokenTypeLBrace); err != nil {
			return nil, err
		}
		parsedLabels, err := p.labels()
		if err != nil {
			return nil, err
		}
		labels = append(labels, parsedLabels...)
	}

	if extra := p.peek(); extra != nil {
		return nil, errors.Errorf("unexpected trailing %v", extra)
	}

	// remote write expects labels sorted by name
	sort.Slice(labels, func(i, j int) bool {
		return labels[i].Name < labels[j].Name
	})
	for i := 1; i < len(labels); i++ {
		if labels[i].Name == labels[i-1].Name {
			return nil, errors.Errorf("duplicate label %q", labels[i].Name)
		}
	}

	return &prometheus.TimeSeries{
		Labels: labels,
	}, nil
}

// ParseSelector scans and parses a series selector in one step.
func ParseSelector(selector string) (*prometheus.TimeSeries, error) {
	tokens, err := NewSelectorScanner().Scan(selector)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid selector %q", selector)
	}
	series, err := NewSelectorParser(tokens).Parse()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid selector %q", selector)
	}
	return series, nil
}
