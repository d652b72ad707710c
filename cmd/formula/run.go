package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jcgregorio/logger"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/zephyrtronium/formula"
	"github.com/zephyrtronium/formula/calc"
	"github.com/zephyrtronium/formula/internal/words"
	"github.com/zephyrtronium/formula/optable"
)

const historyFile = ".formula_history"

// session handles expressions one at a time.
type session struct {
	out  io.Writer
	log  *logger.Logger
	ctx  *calc.Context
	tab  *optable.Table
	verb string
	echo bool
	rpn  bool
}

func run(c *cli.Context) error {
	if c.Uint("prec") == 0 {
		return errors.New("precision must be positive")
	}
	s := &session{
		out: c.App.Writer,
		log: logger.NewFromOptions(&logger.Options{
			SyncWriter:   os.Stderr,
			IncludeDebug: c.Bool("verbose"),
		}),
		ctx:  calc.NewContext(calc.Prec(c.Uint("prec"))),
		verb: c.String("fmt") + "\n",
		echo: c.Bool("echo"),
		rpn:  c.Bool("rpn"),
	}
	for _, d := range c.StringSlice("given") {
		if err := s.given(d); err != nil {
			return err
		}
	}
	if name := c.String("ops"); name != "" {
		tab, err := optable.LoadFile(name)
		if err != nil {
			return err
		}
		s.log.Debugf("loaded %d operators from %s", len(tab.Operators), name)
		s.tab = tab
	}

	// Expressions from the input come before those in the arguments.
	if name := c.String("in"); name != "" || c.NArg() == 0 {
		if err := s.input(c.App.Reader, name); err != nil {
			return err
		}
	}
	for _, arg := range c.Args().Slice() {
		s.line(arg)
	}
	return nil
}

// input handles each line of the named file, or of stdin if the name is
// empty or -.
func (s *session) input(stdin io.Reader, name string) error {
	in := stdin
	switch name {
	case "", "-":
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return s.prompt()
		}
	default:
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrap(err, "opening input")
		}
		defer f.Close()
		in = f
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		s.line(sc.Text())
	}
	return errors.Wrap(sc.Err(), "reading input")
}

// given sets a variable from a name=value definition. The value may use
// variables defined before it.
func (s *session) given(d string) error {
	nm, vl, ok := strings.Cut(d, "=")
	if !ok {
		return errors.Errorf(`variable definitions must be "name=value", not %q`, d)
	}
	nm = strings.TrimSpace(nm)
	w, err := words.SplitString(vl)
	if err != nil {
		return errors.Wrapf(err, "setting %s", nm)
	}
	r, err := s.ctx.Eval(w)
	if err != nil {
		return errors.Wrapf(err, "setting %s", nm)
	}
	s.log.Debugf("%s = %v", nm, r)
	s.ctx.Set(nm, r)
	return nil
}

// line handles one expression. Errors in the expression are printed in place
// of its result.
func (s *session) line(src string) {
	if err := s.expr(src); err != nil {
		s.log.Debugf("%q: %v", src, err)
		fmt.Fprintln(s.out, err)
	}
}

func (s *session) expr(src string) error {
	w, err := words.SplitString(src)
	if err != nil {
		return err
	}
	var cl formula.Classifier = s.ctx
	if s.tab != nil {
		cl = s.tab
	}
	b := formula.New[*formula.Node](cl, formula.Nodes{})
	// The tree and the postfix are printed ahead of the value when asked for,
	// separated by " : ". With an operator table there is no value, and the
	// tree is printed unless only the postfix is asked for.
	var parts []string
	if s.echo || s.tab != nil && !s.rpn {
		n, err := b.Parse(w)
		if err != nil {
			return err
		}
		parts = append(parts, n.String())
	}
	if s.rpn {
		p, err := b.Postfix(w)
		if err != nil {
			return err
		}
		parts = append(parts, strings.Join(p, " "))
	}
	if s.tab != nil {
		fmt.Fprintln(s.out, strings.Join(parts, " : "))
		return nil
	}
	r, err := s.ctx.Eval(w)
	if err != nil {
		return err
	}
	for _, p := range parts {
		fmt.Fprint(s.out, p, " : ")
	}
	fmt.Fprintf(s.out, s.verb, r)
	return nil
}

// prompt reads expressions interactively until EOF.
func (s *session) prompt() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var hist string
	if home, err := os.UserHomeDir(); err == nil {
		hist = filepath.Join(home, historyFile)
		if f, err := os.Open(hist); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}

	for {
		src, err := ln.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			break
		}
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		s.line(src)
		ln.AppendHistory(src)
	}

	if hist != "" {
		f, err := os.Create(hist)
		if err != nil {
			s.log.Warningf("saving history: %v", err)
			return nil
		}
		defer f.Close()
		if _, err := ln.WriteHistory(f); err != nil {
			s.log.Warningf("saving history: %v", err)
		}
	}
	return nil
}
