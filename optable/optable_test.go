package optable_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/formula"
	"github.com/zephyrtronium/formula/optable"
)

const logic = `
operators:
  "||": {arity: 2, prec: 1}
  "&&": {arity: 2, prec: 2}
  "!": {arity: 1, prec: 3}
  "?": {arity: 3, prec: 0}
  "true": {arity: 0, prec: 4}
open: ["(", "["]
close: [")", "]"]
`

func TestLoad(t *testing.T) {
	tab, err := optable.Load(strings.NewReader(logic))
	require.NoError(t, err)
	assert.Equal(t, formula.Op(2, 1), tab.Classify("||"))
	assert.Equal(t, formula.Op(1, 3), tab.Classify("!"))
	assert.Equal(t, formula.Op(3, 0), tab.Classify("?"))
	assert.Equal(t, formula.Op(0, 4), tab.Classify("true"))
	assert.Equal(t, formula.OpenParen(), tab.Classify("["))
	assert.Equal(t, formula.CloseParen(), tab.Classify(")"))
	assert.Equal(t, formula.Atom(), tab.Classify("x"))
	assert.Equal(t, formula.Atom(), tab.Classify("+"))
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		msg  string
	}{
		{"empty", "", "empty operator table"},
		{"unknown", "operators: {}\nunary: [\"-\"]\n", "decoding operator table"},
		{"syntax", "operators: [", "decoding operator table"},
		{"arity", "operators:\n  \"-\": {arity: -1, prec: 1}\n", "negative arity"},
		{"blank", "open: [\"\"]\n", "empty open word"},
		{"conflict", "operators:\n  \"(\": {arity: 1, prec: 1}\nopen: [\"(\"]\n", `"(" is both operator and open`},
		{"openclose", "open: [\"|\"]\nclose: [\"|\"]\n", `"|" is both open and close`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tab, err := optable.Load(strings.NewReader(c.src))
			assert.Nil(t, tab)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestConflictError(t *testing.T) {
	_, err := optable.Load(strings.NewReader("open: [\"|\"]\nclose: [\"|\"]\n"))
	var ce *optable.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "|", ce.Word)
	assert.Equal(t, [2]string{"open", "close"}, ce.Roles)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "logic.yaml")
	require.NoError(t, os.WriteFile(name, []byte(logic), 0o644))
	tab, err := optable.LoadFile(name)
	require.NoError(t, err)
	assert.Len(t, tab.Operators, 5)

	_, err = optable.LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse(t *testing.T) {
	tab, err := optable.Load(strings.NewReader(logic))
	require.NoError(t, err)
	cases := []struct {
		src  string
		want string
	}{
		{"a || b && ! c", "(a || [b && !(c)])"},
		{"[ a || b ] && c", "([a || b] && c)"},
		{"a ? b c", "?(a, b, c)"},
		{"true && x", "(true && x)"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			n, err := formula.Parse[*formula.Node](strings.Fields(c.src), tab, formula.Nodes{})
			require.NoError(t, err)
			assert.Equal(t, c.want, n.String())
		})
	}
}

func TestDefault(t *testing.T) {
	tab := optable.Default()
	require.NoError(t, tab.Validate())
	n, err := formula.Parse[*formula.Node](strings.Fields("9 - 4 - 2"), tab, formula.Nodes{})
	require.NoError(t, err)
	assert.Equal(t, "([9 - 4] - 2)", n.String())
}
