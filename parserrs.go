package formula

import "strconv"

// ParenError is an error indicating unbalanced parentheses in the input. It
// implements InputError.
type ParenError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Word is the unmatched parenthesis.
	Word string
	// Open is whether the unmatched parenthesis is an opening one, i.e.
	// the input ended before it was closed.
	Open bool
}

func (err *ParenError) Error() string {
	if err.Open {
		return errpos(err.Col, "open paren "+strconv.Quote(err.Word)+" with no close paren")
	}
	return errpos(err.Col, "close paren "+strconv.Quote(err.Word)+" with no open paren")
}

func (err *ParenError) Pos() int {
	return err.Col
}

// OperandError is an error indicating an operator with fewer operands than
// its arity. It implements InputError.
type OperandError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator word.
	Operator string
	// Arity is the number of operands the operator needs.
	Arity int
	// Have is the number of operands that were available.
	Have int
}

func (err *OperandError) Error() string {
	return errpos(err.Col, "missing operand for operator "+strconv.Quote(err.Operator)+
		" (need "+strconv.Itoa(err.Arity)+", have "+strconv.Itoa(err.Have)+")")
}

func (err *OperandError) Pos() int {
	return err.Col
}

// GroupingError is an error indicating a parenthesis in a postfix sequence.
// Parse only returns it when the classifier gives different answers for the
// same word. It implements InputError.
type GroupingError struct {
	// Col is the position of the parenthesis.
	Col int
	// Word is the parenthesis.
	Word string
}

func (err *GroupingError) Error() string {
	return errpos(err.Col, "unexpected grouping token "+strconv.Quote(err.Word)+" in postfix sequence")
}

func (err *GroupingError) Pos() int {
	return err.Col
}

// ResidueError is an error indicating that an expression reduced to some
// number of values other than one, either because it was empty or because it
// contains terms that no operator connects. It implements InputError.
type ResidueError struct {
	// Col is the position of the first word of the second value, or the
	// end of the input if there were no values.
	Col int
	// Len is the number of values that remained.
	Len int
}

func (err *ResidueError) Error() string {
	if err.Len == 0 {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, strconv.Itoa(err.Len)+" terms with no operator between them")
}

func (err *ResidueError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based index of the word that caused the error.
	Pos() int
}

var (
	_ InputError = (*ParenError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*GroupingError)(nil)
	_ InputError = (*ResidueError)(nil)
)
