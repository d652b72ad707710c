package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp(strings.NewReader(stdin), &out)
	require.NoError(t, app.Run(append([]string{"formula"}, args...)))
	return out.String()
}

func TestRunArgs(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"eval", []string{"3 * 7 + (6 - 4)"}, "23\n"},
		{"several", []string{"1 + 1", "2 ^ 3 ^ 2"}, "2\n64\n"},
		{"echo", []string{"--echo", "3 * 7 + (6 - 4)"}, "([3 * 7] + [6 - 4]) : 23\n"},
		{"rpn", []string{"--rpn", "3 * 7 + (6 - 4)"}, "3 7 * 6 4 - + : 23\n"},
		{"echorpn", []string{"--echo", "--rpn", "9 - 4 - 2"}, "([9 - 4] - 2) : 9 4 - 2 - : 3\n"},
		{"given", []string{"--given", "x=2", "--given", "y = x * 3", "x ^ y"}, "64\n"},
		{"fmt", []string{"--fmt", "%.3f", "pi"}, "3.142\n"},
		{"error", []string{"(1 + 2", "1 + 2"}, "1: open paren \"(\" with no close paren\n3\n"},
		{"undefined", []string{"x"}, "undefined variable: \"x\"\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, runApp(t, "", c.args...))
		})
	}
}

func TestRunInput(t *testing.T) {
	got := runApp(t, "1 + 2\n\n9 - 4 - 2\n")
	assert.Equal(t, "3\n3\n", got)

	name := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(name, []byte("max 1 2\nsqrt 16\n"), 0o644))
	got = runApp(t, "", "--in", name)
	assert.Equal(t, "2\n4\n", got)

	// Arguments follow the input file.
	got = runApp(t, "", "--in", name, "1 + 1")
	assert.Equal(t, "2\n4\n2\n", got)
	got = runApp(t, "7\n", "--in", "-", "1 + 1")
	assert.Equal(t, "7\n2\n", got)
	// Stdin is only read without arguments.
	got = runApp(t, "7\n", "1 + 1")
	assert.Equal(t, "2\n", got)
}

func TestRunOps(t *testing.T) {
	name := filepath.Join(t.TempDir(), "ops.yaml")
	tab := "operators:\n  \"+\": {arity: 2, prec: 1}\n  \"*\": {arity: 2, prec: 2}\n  \"?\": {arity: 3, prec: 0}\nopen: [\"(\"]\nclose: [\")\"]\n"
	require.NoError(t, os.WriteFile(name, []byte(tab), 0o644))
	assert.Equal(t, "?(a, b, [c + (d * e)])\n", runApp(t, "", "--ops", name, "a ? b (c + d * e)"))
	assert.Equal(t, "a b c d e * + ?\n", runApp(t, "", "--ops", name, "--rpn", "a ? b (c + d * e)"))
	assert.Equal(t, "?(a, b, [c + (d * e)])\n", runApp(t, "", "--ops", name, "--echo", "a ? b (c + d * e)"))
	assert.Equal(t, "?(a, b, [c + (d * e)]) : a b c d e * + ?\n", runApp(t, "", "--ops", name, "--rpn", "--echo", "a ? b (c + d * e)"))
}

func TestRunBadFlags(t *testing.T) {
	cases := [][]string{
		{"--given", "x", "1"},
		{"--given", "x=(", "1"},
		{"--prec", "0", "1"},
		{"--ops", filepath.Join(t.TempDir(), "none.yaml"), "1"},
		{"--in", filepath.Join(t.TempDir(), "none.txt")},
	}
	for _, args := range cases {
		var out bytes.Buffer
		app := newApp(strings.NewReader(""), &out)
		assert.Error(t, app.Run(append([]string{"formula"}, args...)), "%q", args)
	}
}
