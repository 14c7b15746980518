package remote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func labelMap(t *testing.T, selector string) map[string]string {
	series, err := ParseSelector(selector)
	require.NoError(t, err)
	labels := map[string]string{}
	for _, l := range series.Labels {
		labels[l.Name] = l.Value
	}
	return labels
}

func TestScanSelector(t *testing.T) {
	tokens, err := NewSelectorScanner().Scan(`calc{job="a b"}`)
	require.NoError(t, err)
	require.Len(t, tokens, 6)
	require.Equal(t, Token{TokenType: TokenTypeName, StringVal: "calc", Offset: 0}, tokens[0])
	require.Equal(t, Token{TokenType: TokenTypeString, StringVal: "a b", Offset: 9}, tokens[4])
}

func TestParseBareName(t *testing.T) {
	require.Equal(t, map[string]string{"__name__": "calc_result"}, labelMap(t, "calc_result"))
}

func TestParseLabels(t *testing.T) {
	labels := labelMap(t, `calc_result{job="demo", case="2+3*4",}`)
	require.Equal(t, map[string]string{
		"__name__": "calc_result",
		"job":      "demo",
		"case":     "2+3*4",
	}, labels)
}

func TestParseEmptyBracesAndValues(t *testing.T) {
	require.Len(t, labelMap(t, "calc{}"), 1)
	require.Equal(t, "", labelMap(t, `calc{empty=""}`)["empty"])
}

func TestParseEscapedQuote(t *testing.T) {
	require.Equal(t, `say "hi"`, labelMap(t, `calc{msg="say \"hi\""}`)["msg"])
}

func TestParseSortsLabels(t *testing.T) {
	series, err := ParseSelector(`calc{zone="z",app="a"}`)
	require.NoError(t, err)
	require.Equal(t, "__name__", series.Labels[0].Name)
	require.Equal(t, "app", series.Labels[1].Name)
	require.Equal(t, "zone", series.Labels[2].Name)
}

func TestParseSelectorErrors(t *testing.T) {
	for _, selector := range []string{
		"",
		"{job=\"x\"}",
		"calc{job=x}",
		"calc{job=\"x\"",
		"calc{job=\"x",
		"calc{job=\"x\"}}",
		"calc{a=\"1\",a=\"2\"}",
		"calc job",
		"9calc",
		"calc{job=\"x\" env=\"y\"}",
	} {
		_, err := ParseSelector(selector)
		require.Error(t, err, selector)
	}
}

func TestTokenStrings(t *testing.T) {
	require.Equal(t, "}", TokenTypeRBrace.String())
	require.Equal(t, "TokenType(42)", TokenType(42).String())
	require.Equal(t, "name calc at offset 0", Token{TokenType: TokenTypeName, StringVal: "calc"}.String())
	require.Equal(t, `string "a b" at offset 9`, Token{TokenType: TokenTypeString, StringVal: "a b", Offset: 9}.String())
	require.Equal(t, `"," at offset 3`, Token{TokenType: TokenTypeComma, Offset: 3}.String())
}

func TestParseSelectorErrorMessages(t *testing.T) {
	_, err := ParseSelector(`calc{job=x}`)
	require.EqualError(t, err, `invalid selector "calc{job=x}": expected <string> but got name x at offset 9`)

	_, err = ParseSelector(`calc{job="x"`)
	require.EqualError(t, err, `invalid selector "calc{job=\"x\"": expected } but the selector ended`)

	_, err = ParseSelector(`calc{} {`)
	require.EqualError(t, err, `invalid selector "calc{} {": unexpected trailing "{" at offset 7`)

	_, err = ParseSelector(`calc{,}`)
	require.Error(t, err)
}
