package calc

import (
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals.
type Func interface {
	// Arity returns the number of arguments the function takes. It must
	// always return the same value.
	Arity() int

	// Call evaluates the function. args has exactly Arity elements, in the
	// order they were written. The function may but generally should not
	// look up variables. The function must set r to its result and should
	// not use the value of r otherwise. Call may modify the elements of
	// args.
	Call(ctx *Context, args []*big.Float, r *big.Float) error
}

var globalfuncs = map[string]Func{
	"exp": Monadic(bigfloat.Exp),
	"ln":  nonneg{monadic{bigfloat.Log}},
	"log": nonneg{monadic{func(out, in *big.Float) *big.Float {
		bigfloat.Log(out, in)
		in.SetFloat64(10).SetPrec(out.Prec())
		bigfloat.Log(in, in)
		return out.Quo(out, in)
	}}},
	"sqrt": nonneg{monadic{(*big.Float).Sqrt}},

	"min": Dyadic(func(out, x, y *big.Float) *big.Float {
		if y.Cmp(x) < 0 {
			return out.Set(y)
		}
		return out.Set(x)
	}),
	"max": Dyadic(func(out, x, y *big.Float) *big.Float {
		if y.Cmp(x) > 0 {
			return out.Set(y)
		}
		return out.Set(x)
	}),

	"if": ifelse{},

	// constants
	"pi": Niladic(bigfloat.Pi),
	"e": Niladic(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}),
}

// DefaultFuncs returns the names of the functions that new contexts have.
func DefaultFuncs() []string {
	r := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// nan converts a panic with big.ErrNaN into a DomainError for an argument.
func nan(err *error, x *big.Float, arg int) {
	r := recover()
	if r == nil {
		return
	}
	if _, ok := r.(big.ErrNaN); !ok {
		panic(r)
	}
	*err = &DomainError{X: x, Arg: arg}
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, args []*big.Float, r *big.Float) (err error) {
	in := args[0]
	// Copy before the call, since log reuses in.
	defer nan(&err, new(big.Float).Copy(in), 1)
	r.SetPrec(ctx.Prec())
	m.f(r, in)
	return nil
}

func (monadic) Arity() int {
	return 1
}

// Monadic wraps a function of one variable into a Func. f must set out to its
// result, to the precision of out; its return value is always ignored. If f
// is called on an argument outside f's domain, it should panic with an error
// of type big.ErrNaN.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

// nonneg is a monadic function of nonnegative reals.
type nonneg struct {
	monadic
}

func (m nonneg) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	if args[0].Sign() < 0 {
		return &DomainError{X: new(big.Float).Copy(args[0]), Arg: 1}
	}
	return m.monadic.Call(ctx, args, r)
}

type dyadic struct {
	f func(out, x, y *big.Float) *big.Float
}

func (d dyadic) Call(ctx *Context, args []*big.Float, r *big.Float) (err error) {
	defer nan(&err, args[0], 1)
	r.SetPrec(ctx.Prec())
	d.f(r, args[0], args[1])
	return nil
}

func (dyadic) Arity() int {
	return 2
}

// Dyadic wraps a function of two variables into a Func, in the same manner as
// Monadic.
func Dyadic(f func(out, x, y *big.Float) *big.Float) Func {
	return dyadic{f}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	r.SetPrec(ctx.Prec())
	n.f(r)
	return nil
}

func (niladic) Arity() int {
	return 0
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. f must set out to its result; its return
// value is always ignored. Unlike Monadic, the wrapped function is expected
// never to panic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

// ifelse selects its second argument if its first is nonzero and its third
// otherwise.
type ifelse struct{}

func (ifelse) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	r.SetPrec(ctx.Prec())
	if args[0].Sign() != 0 {
		r.Set(args[1])
	} else {
		r.Set(args[2])
	}
	return nil
}

func (ifelse) Arity() int {
	return 3
}

// DomainError is an error returned when a function is called on arguments
// outside its domain. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + strconv.Quote(err.Func)
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return big.ErrNaN{}
}
