// Package formula builds trees from infix expressions that have already been
// split into words.
//
// The caller decides what the words mean. A Classifier says whether each word
// is an operand, an operator (with an arity and a precedence), or an opening
// or closing parenthesis, and a Factory turns operands and operator
// applications into values of whatever tree type the caller wants. "3 * 7 +
// ( 6 - 4 )" with the usual arithmetic precedences builds the tree for
// "(3*7) + (6-4)".
//
// Parsing happens in two passes. Postfix reorders the words into postfix
// (reverse Polish) order, resolving precedence and parentheses, and Reduce
// folds a postfix sequence into a single tree. Operators of equal precedence
// group to the left; there is no way to declare an operator right-associative,
// and a word always has the same arity wherever it appears.
//
// Nothing in the package holds state between calls, so parsing is safe to do
// concurrently as long as the Classifier and Factory are.
package formula
