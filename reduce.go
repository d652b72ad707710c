package formula

import "strconv"

// Reduce builds a tree from words in postfix order, such as the result of
// Postfix. Each operand becomes a node from f.Operand, and each operator
// becomes a node from f.Operator with as many of the preceding nodes as its
// arity.
//
// Reduce fails with an *OperandError if an operator has too few operands, a
// *GroupingError if the sequence contains a parenthesis, or a *ResidueError
// unless the words reduce to exactly one node. Errors from f are returned as
// they are.
func Reduce[T any](postfix []string, cl Classifier, f Factory[T]) (T, error) {
	order := make([]int, len(postfix))
	for i := range order {
		order[i] = i
	}
	return reduce(postfix, order, cl, f)
}

// reduce reduces the words of src at the indices in order.
func reduce[T any](src []string, order []int, cl Classifier, f Factory[T]) (T, error) {
	var zero T
	// vals is the operand stack. starts holds the index of the leftmost word
	// that each value was built from, for reporting disconnected terms.
	vals := make([]T, 0, len(order))
	starts := make([]int, 0, len(order))
	for _, k := range order {
		w := src[k]
		sym := cl.Classify(w)
		switch sym.Role {
		case RoleOperand:
			v, err := f.Operand(w)
			if err != nil {
				return zero, err
			}
			vals = append(vals, v)
			starts = append(starts, k)
		case RoleOperator:
			if sym.Arity < 0 {
				panic("formula: negative arity " + strconv.Itoa(sym.Arity) + " for operator " + strconv.Quote(w))
			}
			if len(vals) < sym.Arity {
				return zero, &OperandError{Col: k + 1, Operator: w, Arity: sym.Arity, Have: len(vals)}
			}
			// The top Arity values are already in source order, which is the
			// reverse of the order in which they would be popped.
			n := len(vals) - sym.Arity
			args := make([]T, sym.Arity)
			copy(args, vals[n:])
			v, err := f.Operator(w, args)
			if err != nil {
				return zero, err
			}
			start := k
			if sym.Arity > 0 && starts[n] < start {
				start = starts[n]
			}
			vals = append(vals[:n], v)
			starts = append(starts[:n], start)
		case RoleOpen, RoleClose:
			return zero, &GroupingError{Col: k + 1, Word: w}
		default:
			panic("formula: invalid role " + sym.Role.String() + " for word " + strconv.Quote(w))
		}
	}
	switch len(vals) {
	case 0:
		return zero, &ResidueError{Col: len(src) + 1, Len: 0}
	case 1:
		return vals[0], nil
	default:
		return zero, &ResidueError{Col: starts[1] + 1, Len: len(vals)}
	}
}
