package expression

import (
	"fmt"
	gomath "math"
	"sort"
)

// Env binds the domain variables for one evaluation
type Env struct {
	x, y       Value
	hasX, hasY bool
}

// EmptyEnv binds nothing; only constant expressions evaluate
func EmptyEnv() Env { return Env{} }

// XEnv binds x
func XEnv(x Value) Env { return Env{x: x, hasX: true} }

// XYEnv binds x and y
func XYEnv(x, y Value) Env { return Env{x: x, y: y, hasX: true, hasY: true} }

func (e Env) lookup(name string) (Value, bool) {
	switch name {
	case "x":
		return e.x, e.hasX
	case "y":
		return e.y, e.hasY
	}
	return Value{}, false
}

// Program is a compiled expression. It is immutable and safe to evaluate
// repeatedly; evaluation holds no state between calls.
type Program struct {
	source   string
	channels []channel
	vars     []string
}

// Compile parses source into a Program
func Compile(source string) (*Program, error) {
	channels, err := parse(source)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for _, ch := range channels {
		walk(ch.node, func(n Node) {
			if v, ok := n.(*VariableNode); ok {
				seen[v.Name] = true
			}
		})
	}
	vars := make([]string, 0, len(seen))
	for name := range seen {
		vars = append(vars, name)
	}
	sort.Strings(vars)

	return &Program{source: source, channels: channels, vars: vars}, nil
}

// MustCompile is Compile that panics on error, for fixed expressions
func MustCompile(source string) *Program {
	p, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the text the program was compiled from
func (p *Program) Source() string { return p.source }

// Channels returns the number of top-level comma separated outputs
func (p *Program) Channels() int { return len(p.channels) }

// ChannelText returns the source text of channel i
func (p *Program) ChannelText(i int) string { return p.channels[i].text }

// FreeVariables returns the referenced domain variables, sorted
func (p *Program) FreeVariables() []string {
	out := make([]string, len(p.vars))
	copy(out, p.vars)
	return out
}

// Uses reports whether the program references variable name
func (p *Program) Uses(name string) bool {
	for _, v := range p.vars {
		if v == name {
			return true
		}
	}
	return false
}

// Tree renders the fully parenthesised AST, one channel per element
func (p *Program) Tree() []string {
	out := make([]string, len(p.channels))
	for i, ch := range p.channels {
		out[i] = ch.node.String()
	}
	return out
}

// Eval evaluates every channel against env, left to right
func (p *Program) Eval(env Env) ([]Value, error) {
	out := make([]Value, len(p.channels))
	for i, ch := range p.channels {
		v, err := eval(ch.node, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Scalar evaluates a single channel program at a scalar x
func (p *Program) Scalar(x float64) (float64, error) {
	if len(p.channels) != 1 {
		return gomath.NaN(), typeErrorf(-1, "expected a single expression, got a tuple of %d", len(p.channels))
	}
	v, err := eval(p.channels[0].node, XEnv(Scalar(x)))
	if err != nil {
		return gomath.NaN(), err
	}
	if !v.IsScalar() {
		return gomath.NaN(), typeErrorf(-1, "expected a scalar result, got shape %s", v.Shape())
	}
	return v.Float(), nil
}

// EvalConstant evaluates variable free text such as an interval bound
// ("-pi*20") or a tolerance ("1E-13")
func EvalConstant(source string) (float64, error) {
	p, err := Compile(source)
	if err != nil {
		return 0, err
	}
	if len(p.channels) != 1 {
		return 0, typeErrorf(-1, "expected a single number, got a tuple of %d", len(p.channels))
	}
	v, err := eval(p.channels[0].node, EmptyEnv())
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}

func eval(n Node, env Env) (Value, error) {
	switch node := n.(type) {
	case *NumberNode:
		return Scalar(node.Value), nil

	case *ConstantNode:
		return Scalar(node.Value), nil

	case *VariableNode:
		v, ok := env.lookup(node.Name)
		if !ok {
			return Value{}, nameErrorf(node.At, "name '%s' is not defined", node.Name)
		}
		return v, nil

	case *UnaryNode:
		operand, err := eval(node.Operand, env)
		if err != nil {
			return Value{}, err
		}
		if node.Op == "-" {
			return apply1(operand, func(x float64) float64 { return -x }), nil
		}
		return operand, nil

	case *BinaryNode:
		return evalBinary(node, env)

	case *CallNode:
		return evalCall(node, env)

	case *TupleNode:
		return Value{}, typeErrorf(node.At, "a tuple of %d values cannot be used as a number", len(node.Items))

	default:
		return Value{}, typeErrorf(n.Pos(), "unsupported node %T", n)
	}
}

func evalBinary(node *BinaryNode, env Env) (Value, error) {
	left, err := eval(node.Left, env)
	if err != nil {
		return Value{}, err
	}
	right, err := eval(node.Right, env)
	if err != nil {
		return Value{}, err
	}

	fn := binaryOp(node.Op)
	if fn == nil {
		return Value{}, syntaxErrorf(node.At, "unknown operator %q", node.Op)
	}
	out, err := apply2(left, right, fn)
	if err != nil {
		return Value{}, typeErrorf(node.At, "%v", err)
	}
	return out, nil
}

func binaryOp(op string) func(float64, float64) float64 {
	switch op {
	case "+":
		return func(a, b float64) float64 { return a + b }
	case "-":
		return func(a, b float64) float64 { return a - b }
	case "*":
		return func(a, b float64) float64 { return a * b }
	case "/":
		return func(a, b float64) float64 { return a / b }
	case "//":
		return floorDiv
	case "%":
		return mod
	case "**":
		return gomath.Pow
	case "<":
		return func(a, b float64) float64 { return boolFloat(a < b) }
	case "<=":
		return func(a, b float64) float64 { return boolFloat(a <= b) }
	case ">":
		return func(a, b float64) float64 { return boolFloat(a > b) }
	case ">=":
		return func(a, b float64) float64 { return boolFloat(a >= b) }
	case "==":
		return func(a, b float64) float64 { return boolFloat(a == b) }
	case "!=":
		return func(a, b float64) float64 { return boolFloat(a != b) }
	}
	return nil
}

func evalCall(node *CallNode, env Env) (Value, error) {
	args := make([]Value, len(node.Args))
	for i, a := range node.Args {
		v, err := eval(a, env)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	switch node.fn.arity {
	case 1:
		return apply1(args[0], node.fn.fn1), nil
	case 2:
		out, err := apply2(args[0], args[1], node.fn.fn2)
		if err != nil {
			return Value{}, typeErrorf(node.At, "%s(): %v", node.fn.name, err)
		}
		return out, nil
	default:
		return Value{}, typeErrorf(node.At, "%s() has unsupported arity %d", node.fn.name, node.fn.arity)
	}
}

// String describes the program for logs
func (p *Program) String() string {
	return fmt.Sprintf("Program(%q, channels=%d, vars=%v)", p.source, len(p.channels), p.vars)
}
