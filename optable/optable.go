// Package optable reads operator tables from YAML documents and uses them to
// classify words for package formula.
//
// A table looks like this:
//
//	operators:
//	  "+": {arity: 2, prec: 1}
//	  "*": {arity: 2, prec: 2}
//	  "?": {arity: 3, prec: 0}
//	open: ["("]
//	close: [")"]
//
// Words which are not operators or brackets are operands.
package optable

import (
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/formula"
)

// Spec is the arity and precedence of an operator.
type Spec struct {
	Arity int `yaml:"arity"`
	Prec  int `yaml:"prec"`
}

// Table is an operator table. A Table is safe for concurrent use once it is
// no longer modified.
type Table struct {
	Operators map[string]Spec `yaml:"operators"`
	Open      []string        `yaml:"open"`
	Close     []string        `yaml:"close"`
}

// Default returns the table for + and - at precedence 1 and * and / at
// precedence 2, grouped by round parentheses.
func Default() *Table {
	return &Table{
		Operators: map[string]Spec{
			"+": {Arity: 2, Prec: 1},
			"-": {Arity: 2, Prec: 1},
			"*": {Arity: 2, Prec: 2},
			"/": {Arity: 2, Prec: 2},
		},
		Open:  []string{"("},
		Close: []string{")"},
	}
}

// Load decodes and validates a table. Unknown fields are errors.
func Load(r io.Reader) (*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var t Table
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty operator table")
		}
		return nil, errors.Wrap(err, "decoding operator table")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadFile loads a table from the named file.
func LoadFile(name string) (*Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "opening operator table")
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", name)
	}
	return t, nil
}

// Validate checks that every word is non-empty and has only one role and that
// no operator has negative arity.
func (t *Table) Validate() error {
	seen := make(map[string]string, len(t.Operators)+len(t.Open)+len(t.Close))
	use := func(word, role string) error {
		if word == "" {
			return errors.Errorf("empty %s word", role)
		}
		if r, ok := seen[word]; ok {
			return &ConflictError{Word: word, Roles: [2]string{r, role}}
		}
		seen[word] = role
		return nil
	}
	// Sort operators so that the error for a bad table is always the same.
	ops := make([]string, 0, len(t.Operators))
	for w := range t.Operators {
		ops = append(ops, w)
	}
	sort.Strings(ops)
	for _, w := range ops {
		if err := use(w, "operator"); err != nil {
			return err
		}
		if a := t.Operators[w].Arity; a < 0 {
			return errors.Errorf("operator %q has negative arity %d", w, a)
		}
	}
	for _, w := range t.Open {
		if err := use(w, "open"); err != nil {
			return err
		}
	}
	for _, w := range t.Close {
		if err := use(w, "close"); err != nil {
			return err
		}
	}
	return nil
}

// Classify classifies a word using the table.
func (t *Table) Classify(word string) formula.Symbol {
	if s, ok := t.Operators[word]; ok {
		return formula.Op(s.Arity, s.Prec)
	}
	for _, w := range t.Open {
		if w == word {
			return formula.OpenParen()
		}
	}
	for _, w := range t.Close {
		if w == word {
			return formula.CloseParen()
		}
	}
	return formula.Atom()
}

// ConflictError is an error for a word given more than one role in a table.
type ConflictError struct {
	Word  string
	Roles [2]string
}

func (err *ConflictError) Error() string {
	return "word " + strconv.Quote(err.Word) + " is both " + err.Roles[0] + " and " + err.Roles[1]
}

var _ formula.Classifier = (*Table)(nil)
