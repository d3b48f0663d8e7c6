package expression

import (
	"strconv"
	"strings"
)

// Node is an AST node
type Node interface {
	Pos() int
	String() string
}

// NumberNode is a numeric literal
type NumberNode struct {
	At    int
	Value float64
	Text  string
}

// ConstantNode is a named constant such as pi
type ConstantNode struct {
	At    int
	Name  string
	Value float64
}

// VariableNode references a domain variable (x or y)
type VariableNode struct {
	At   int
	Name string
}

// UnaryNode is a prefix + or -
type UnaryNode struct {
	At      int
	Op      string
	Operand Node
}

// BinaryNode is an infix operation
type BinaryNode struct {
	At    int
	Op    string
	Left  Node
	Right Node
}

// CallNode is a builtin function call
type CallNode struct {
	At   int
	Name string
	Args []Node
	fn   *function
}

// TupleNode is a parenthesised comma list used where a single operand is
// expected
type TupleNode struct {
	At    int
	Items []Node
}

func (n *NumberNode) Pos() int   { return n.At }
func (n *ConstantNode) Pos() int { return n.At }
func (n *VariableNode) Pos() int { return n.At }
func (n *UnaryNode) Pos() int    { return n.At }
func (n *BinaryNode) Pos() int   { return n.At }
func (n *CallNode) Pos() int     { return n.At }
func (n *TupleNode) Pos() int    { return n.At }

func (n *NumberNode) String() string {
	if n.Text != "" {
		return n.Text
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *ConstantNode) String() string { return n.Name }
func (n *VariableNode) String() string { return n.Name }

func (n *UnaryNode) String() string {
	return "(" + n.Op + n.Operand.String() + ")"
}

func (n *BinaryNode) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}

func (n *CallNode) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

func (n *TupleNode) String() string {
	items := make([]string, len(n.Items))
	for i, it := range n.Items {
		items[i] = it.String()
	}
	return "(" + strings.Join(items, ", ") + ")"
}

// walk visits n and its descendants depth first
func walk(n Node, visit func(Node)) {
	visit(n)
	switch node := n.(type) {
	case *UnaryNode:
		walk(node.Operand, visit)
	case *BinaryNode:
		walk(node.Left, visit)
		walk(node.Right, visit)
	case *CallNode:
		for _, a := range node.Args {
			walk(a, visit)
		}
	case *TupleNode:
		for _, it := range node.Items {
			walk(it, visit)
		}
	}
}
