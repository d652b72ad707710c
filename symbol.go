package formula

import "strconv"

// Role is the part a word plays in an expression.
type Role int8

const (
	// RoleOperand is a word that stands for a value on its own.
	RoleOperand Role = iota
	// RoleOperator is a word that combines the values of Arity operands.
	RoleOperator
	// RoleOpen is an opening parenthesis.
	RoleOpen
	// RoleClose is a closing parenthesis.
	RoleClose
)

func (r Role) String() string {
	switch r {
	case RoleOperand:
		return "operand"
	case RoleOperator:
		return "operator"
	case RoleOpen:
		return "open"
	case RoleClose:
		return "close"
	default:
		return "Role(" + strconv.Itoa(int(r)) + ")"
	}
}

// Symbol is the classification of a single word.
type Symbol struct {
	// Role is the part the word plays.
	Role Role
	// Arity is the number of operands an operator consumes. It is only
	// used when Role is RoleOperator.
	Arity int
	// Prec is the precedence of an operator. Higher binds tighter. It is
	// only used when Role is RoleOperator.
	Prec int
}

// Atom returns the Symbol for an operand.
func Atom() Symbol {
	return Symbol{Role: RoleOperand}
}

// OpenParen returns the Symbol for a word that opens a group.
func OpenParen() Symbol {
	return Symbol{Role: RoleOpen}
}

// CloseParen returns the Symbol for a word that closes a group.
func CloseParen() Symbol {
	return Symbol{Role: RoleClose}
}

// Op returns the Symbol for an operator.
func Op(arity, prec int) Symbol {
	return Symbol{Role: RoleOperator, Arity: arity, Prec: prec}
}

func (s Symbol) String() string {
	if s.Role != RoleOperator {
		return s.Role.String()
	}
	return "operator/" + strconv.Itoa(s.Arity) + "@" + strconv.Itoa(s.Prec)
}

// Classifier assigns symbols to words. Classify must be deterministic: the
// parser classifies the same word several times and relies on getting the
// same answer each time. Words a classifier doesn't recognize are
// conventionally operands.
type Classifier interface {
	Classify(word string) Symbol
}

// ClassifierFunc adapts a function to a Classifier.
type ClassifierFunc func(word string) Symbol

// Classify calls f(word).
func (f ClassifierFunc) Classify(word string) Symbol {
	return f(word)
}

// Factory creates tree nodes. Errors returned by a Factory are returned by
// the parser unchanged.
type Factory[T any] interface {
	// Operand creates a leaf node from an operand word.
	Operand(word string) (T, error)
	// Operator creates a node applying an operator word to its operands.
	// args holds exactly as many nodes as the operator's arity, in the
	// order they were written. Operator may retain args.
	Operator(word string, args []T) (T, error)
}

// FactoryFuncs adapts a pair of functions to a Factory.
type FactoryFuncs[T any] struct {
	OperandFunc  func(word string) (T, error)
	OperatorFunc func(word string, args []T) (T, error)
}

// Operand calls f.OperandFunc.
func (f FactoryFuncs[T]) Operand(word string) (T, error) {
	return f.OperandFunc(word)
}

// Operator calls f.OperatorFunc.
func (f FactoryFuncs[T]) Operator(word string, args []T) (T, error) {
	return f.OperatorFunc(word, args)
}
