package formula

import "strings"

// Node is a generic expression tree node. Operand nodes have no Args.
type Node struct {
	// Word is the operand or operator word.
	Word string
	// Args is the operands of an operator, in source order.
	Args []*Node
}

// Leaf returns whether n has no operands. Operators of arity zero are
// leaves, too.
func (n *Node) Leaf() bool {
	return len(n.Args) == 0
}

// Len returns the number of nodes in the tree rooted at n.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	k := 1
	for _, a := range n.Args {
		k += a.Len()
	}
	return k
}

// String formats the tree with every application grouped, alternating round
// and square brackets by depth. Binary operators print infix and others print
// like calls, except that operators with no operands print as bare words. So
// "3 * 7 + ( 6 - 4 )" formats as "([3 * 7] + [6 - 4])" and a ternary "if" as
// "if(a, b, c)".
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder, square bool) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	switch len(n.Args) {
	case 0:
		b.WriteString(n.Word)
	case 2:
		b.WriteByte(l)
		n.Args[0].fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(n.Word)
		b.WriteByte(' ')
		n.Args[1].fmt(b, !square)
		b.WriteByte(r)
	default:
		b.WriteString(n.Word)
		b.WriteByte(l)
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b, !square)
		}
		b.WriteByte(r)
	}
}

// Nodes is a Factory that builds *Node trees.
type Nodes struct{}

// Operand creates a leaf node.
func (Nodes) Operand(word string) (*Node, error) {
	return &Node{Word: word}, nil
}

// Operator creates an operator node.
func (Nodes) Operator(word string, args []*Node) (*Node, error) {
	return &Node{Word: word, Args: args}, nil
}

var _ Factory[*Node] = Nodes{}
