// Package calc evaluates arithmetic expressions to arbitrary precision.
//
// A Context is both the formula.Classifier and the formula.Factory for its
// expressions, so the "tree" it builds is just the value of the expression.
// The operators are + and - at the lowest precedence, then *, /, × and ÷,
// then ^, all binary and all grouping to the left, so "2 ^ 3 ^ 2" is 64.
// Function names bind tighter than any operator and take a fixed number of
// operands that follow them: "sqrt 4 * 2" is 4 and "max 1 2" is 2. Any of
// (), [] and {} group, and every kind closes every other.
package calc

import (
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zephyrtronium/bigfloat"
	"github.com/zephyrtronium/formula"
	"github.com/zephyrtronium/formula/internal/words"
)

// Precedences of calc's operators.
const (
	SumPrec  = 1
	ProdPrec = 2
	PowPrec  = 3
	FuncPrec = 4
)

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	nums  map[string]*big.Float
	names map[string]*big.Float
	funcs map[string]Func
	prec  uint
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  *big.Float
	}
	varsopt map[string]*big.Float
	precopt uint
	funcopt struct {
		name string
		fn   Func
	}
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (precopt) ctxOption() {}
func (funcopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val *big.Float) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]*big.Float) ContextOption {
	return varsopt(vars)
}

// Prec sets the precision of calculations.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// WithFunc sets a function in the context. To remove a function, including
// a default one, pass nil for fn; its name is then a variable.
func WithFunc(name string, fn Func) ContextOption {
	return funcopt{name, fn}
}

// NewContext creates a new evaluation context with the default functions. If
// no precision is given, the default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), funcs: globalfuncs, prec: 64}
	return ctx.Clone(opts...)
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value *big.Float) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]*big.Float)
	}
	ctx.names[name] = new(big.Float).SetPrec(ctx.prec).Set(value)
	return ctx
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable in the context, then the result is nil.
func (ctx *Context) Lookup(name string) *big.Float {
	v := ctx.names[name]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Func returns the function with the given name, or nil if there is none.
func (ctx *Context) Func(name string) Func {
	return ctx.funcs[name]
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		nums:  make(map[string]*big.Float, len(ctx.nums)),
		names: make(map[string]*big.Float, len(ctx.names)),
		funcs: ctx.funcs,
		prec:  ctx.prec,
	}
	// First, check for a precision setting. Loop backward so we apply the last
	// precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// Copy numbers only if the new precision is no higher than the old, so
	// that we always use the precision we need.
	if n.prec <= ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = new(big.Float).SetPrec(n.prec).Set(v)
		}
	}
	// Copy variables. (We always need a copy in case of Set.) If we have the
	// same precision, we can just copy pointers.
	if n.prec == ctx.prec {
		for name, val := range ctx.names {
			n.names[name] = val
		}
	} else {
		for name, val := range ctx.names {
			n.names[name] = new(big.Float).SetPrec(n.prec).Set(val)
		}
	}
	copied := false
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = new(big.Float).SetPrec(n.prec).Set(opt.val)
		case varsopt:
			for k, v := range opt {
				n.names[k] = new(big.Float).SetPrec(n.prec).Set(v)
			}
		case precopt:
			// Already done. Do nothing.
		case funcopt:
			// Function maps are shared between clones until one changes.
			if !copied {
				m := make(map[string]Func, len(n.funcs)+1)
				for k, v := range n.funcs {
					m[k] = v
				}
				n.funcs = m
				copied = true
			}
			if opt.fn == nil {
				delete(n.funcs, opt.name)
			} else {
				n.funcs[opt.name] = opt.fn
			}
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// Classify classifies a word for parsing with the context.
func (ctx *Context) Classify(word string) formula.Symbol {
	switch word {
	case "+", "-":
		return formula.Op(2, SumPrec)
	case "*", "/", "×", "÷":
		return formula.Op(2, ProdPrec)
	case "^":
		return formula.Op(2, PowPrec)
	case "(", "[", "{":
		return formula.OpenParen()
	case ")", "]", "}":
		return formula.CloseParen()
	}
	if fn := ctx.funcs[word]; fn != nil {
		return formula.Op(fn.Arity(), FuncPrec)
	}
	return formula.Atom()
}

// Operand evaluates a numeric literal or variable.
func (ctx *Context) Operand(word string) (*big.Float, error) {
	if isnum(word) {
		r, err := ctx.num(word)
		if err != nil {
			return nil, err
		}
		return new(big.Float).SetPrec(ctx.prec).Set(r), nil
	}
	v := ctx.names[word]
	if v == nil {
		return nil, &NameError{Name: word}
	}
	return new(big.Float).SetPrec(ctx.prec).Set(v), nil
}

// Operator applies an operator or function to evaluated operands. The result
// may reuse the memory of args[0].
func (ctx *Context) Operator(word string, args []*big.Float) (*big.Float, error) {
	switch word {
	case "+", "-", "*", "/", "×", "÷", "^":
		if len(args) != 2 {
			return nil, &ArityError{Operator: word, Want: 2, Have: len(args)}
		}
		return ctx.binop(word, args[0], args[1])
	}
	fn := ctx.funcs[word]
	if fn == nil {
		return nil, &OperatorError{Operator: word}
	}
	if a := fn.Arity(); len(args) != a {
		return nil, &ArityError{Operator: word, Want: a, Have: len(args)}
	}
	r := new(big.Float).SetPrec(ctx.prec)
	if err := fn.Call(ctx, args, r); err != nil {
		if de, ok := err.(*DomainError); ok && de.Func == "" {
			de.Func = word
		}
		return nil, err
	}
	return r, nil
}

func (ctx *Context) binop(op string, l, r *big.Float) (_ *big.Float, err error) {
	// Arithmetic on infinities panics where the result would be NaN.
	defer func() {
		if p := recover(); p != nil {
			if _, ok := p.(big.ErrNaN); !ok {
				panic(p)
			}
			err = &DomainError{X: r, Arg: 2, Func: op}
		}
	}()
	switch op {
	case "+":
		l.Add(l, r)
	case "-":
		l.Sub(l, r)
	case "*", "×":
		l.Mul(l, r)
	case "/", "÷":
		// Guard against invalid divisions, 0/0 or inf/inf.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return nil, &DomainError{X: r, Arg: 2, Func: op}
		}
		l.Quo(l, r)
	case "^":
		// Guard against invalid exponentiations, i.e. negative base.
		// TODO: allow negative base with integer exponent
		if l.Signbit() {
			return nil, &DomainError{X: l, Arg: 1, Func: op}
		}
		bigfloat.Pow(l, l, r)
	default:
		panic("calc: invalid binary operator " + strconv.Quote(op))
	}
	return l, nil
}

// isnum returns whether a word is a numeric literal rather than a name.
func isnum(word string) bool {
	switch word {
	case "inf", "Inf", "∞":
		return true
	}
	r, _ := utf8.DecodeRuneInString(word)
	return r == '.' || unicode.IsDigit(r)
}

// num gets a possibly cached number from its text.
func (ctx *Context) num(s string) (*big.Float, error) {
	if r := ctx.nums[s]; r != nil {
		return r, nil
	}
	t := s
	if t == "∞" {
		t = "inf"
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(t, 10)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		r = new(big.Float).SetPrec(ctx.prec).SetInf(false)
	default:
		return nil, &NumberError{Text: s}
	}
	ctx.nums[s] = r
	return r, nil
}

// Eval parses and evaluates an expression.
func (ctx *Context) Eval(words []string) (*big.Float, error) {
	return formula.Parse[*big.Float](words, ctx, ctx)
}

// Eval is a shortcut to evaluate an expression using the default functions.
func Eval(words []string, opts ...ContextOption) (*big.Float, error) {
	return NewContext(opts...).Eval(words)
}

// EvalReader is a shortcut to split and evaluate an expression read from src.
func EvalReader(src io.Reader, opts ...ContextOption) (*big.Float, error) {
	w, err := words.Split(src)
	if err != nil {
		return nil, err
	}
	return Eval(w, opts...)
}

// EvalString is a shortcut to split and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	return EvalReader(strings.NewReader(src), opts...)
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// NumberError is an error for an operand that looks like a number but isn't.
type NumberError struct {
	// Text is the operand.
	Text string
}

func (err *NumberError) Error() string {
	return "invalid number: " + strconv.Quote(err.Text)
}

// OperatorError is an error for an operator that the context cannot apply,
// which happens when the context is used as a factory with another
// classifier.
type OperatorError struct {
	// Operator is the operator word.
	Operator string
}

func (err *OperatorError) Error() string {
	return "unknown operator " + strconv.Quote(err.Operator)
}

// ArityError is an error for an operator applied to a different number of
// operands than it takes, which happens when the context is used as a factory
// with another classifier.
type ArityError struct {
	// Operator is the operator word.
	Operator string
	// Want is the number of operands the operator takes.
	Want int
	// Have is the number of operands it was given.
	Have int
}

func (err *ArityError) Error() string {
	return "operator " + strconv.Quote(err.Operator) + " takes " + strconv.Itoa(err.Want) + " operands, not " + strconv.Itoa(err.Have)
}

var (
	_ formula.Classifier         = (*Context)(nil)
	_ formula.Factory[*big.Float] = (*Context)(nil)
)
