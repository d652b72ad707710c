package formula

import "strconv"

// Postfix reorders infix words into postfix order, so that every operator
// follows all of its operands. Parentheses are consumed and never appear in
// the result.
//
// An operator moves every operator ahead of it that binds at least as
// tightly to the output before it is stacked, so equal precedences group to
// the left: "9 - 4 - 2" becomes "9 4 - 2 -". The error is a *ParenError if
// the parentheses are unbalanced.
func Postfix(words []string, cl Classifier) ([]string, error) {
	order, err := postfix(words, cl)
	if err != nil {
		return nil, err
	}
	r := make([]string, len(order))
	for i, k := range order {
		r[i] = words[k]
	}
	return r, nil
}

// postfix is Postfix on word indices so that errors in later passes can
// refer to positions in the original input.
func postfix(words []string, cl Classifier) ([]int, error) {
	out := make([]int, 0, len(words))
	var ops []int
	for i, w := range words {
		sym := cl.Classify(w)
		switch sym.Role {
		case RoleOperand:
			out = append(out, i)
		case RoleOperator:
			for len(ops) > 0 {
				k := ops[len(ops)-1]
				top := cl.Classify(words[k])
				// Opening parens are operators of no precedence.
				if top.Role != RoleOperator || top.Prec < sym.Prec {
					break
				}
				out = append(out, k)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, i)
		case RoleOpen:
			ops = append(ops, i)
		case RoleClose:
			for {
				if len(ops) == 0 {
					return nil, &ParenError{Col: i + 1, Word: w}
				}
				k := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if cl.Classify(words[k]).Role == RoleOpen {
					break
				}
				out = append(out, k)
			}
		default:
			panic("formula: invalid role " + sym.Role.String() + " for word " + strconv.Quote(w))
		}
	}
	for len(ops) > 0 {
		k := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if cl.Classify(words[k]).Role == RoleOpen {
			return nil, &ParenError{Col: k + 1, Word: words[k], Open: true}
		}
		out = append(out, k)
	}
	return out, nil
}
