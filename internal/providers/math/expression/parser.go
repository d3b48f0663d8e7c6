package expression

import "strings"

// maxDepth bounds recursive descent so hostile input cannot exhaust the stack
const maxDepth = 200

var comparisonOps = map[string]bool{
	"<": true, "<=": true, ">": true, ">=": true, "==": true, "!=": true,
}

type parser struct {
	src     string
	tokens  []Token
	current int
	depth   int
}

// channel is one top-level comma separated formula
type channel struct {
	node Node
	text string
}

// parse turns source text into its top-level channel list
func parse(src string) ([]channel, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 1 {
		return nil, syntaxErrorf(0, "empty expression")
	}

	p := &parser{src: src, tokens: tokens}

	var channels []channel
	for {
		start := p.peek().Pos
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		end := p.peek().Pos
		channels = append(channels, channel{node: node, text: strings.TrimSpace(src[start:end])})

		tok := p.peek()
		if tok.Type == TokenEOF {
			break
		}
		if tok.Type != TokenComma {
			return nil, p.unexpected(tok)
		}
		p.advance()
		if p.peek().Type == TokenEOF {
			return nil, syntaxErrorf(p.peek().Pos, "trailing ',' without an expression")
		}
	}

	// "(f(x), g(x))" is the same tuple as "f(x), g(x)"
	if len(channels) == 1 {
		if tuple, ok := channels[0].node.(*TupleNode); ok {
			return p.splitTuple(tuple), nil
		}
	}
	return channels, nil
}

func (p *parser) splitTuple(tuple *TupleNode) []channel {
	out := make([]channel, len(tuple.Items))
	for i, item := range tuple.Items {
		out[i] = channel{node: item, text: item.String()}
	}
	return out
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.current]
	if tok.Type != TokenEOF {
		p.current++
	}
	return tok
}

func (p *parser) isOperator(ops ...string) bool {
	tok := p.peek()
	if tok.Type != TokenOperator {
		return false
	}
	for _, op := range ops {
		if tok.Value == op {
			return true
		}
	}
	return false
}

func (p *parser) unexpected(tok Token) error {
	if tok.Type == TokenEOF {
		return syntaxErrorf(tok.Pos, "unexpected end of expression")
	}
	return syntaxErrorf(tok.Pos, "unexpected %q", tok.Value)
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return syntaxErrorf(p.peek().Pos, "expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// parseExpression parses a comparison, the lowest precedence level
func (p *parser) parseExpression() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	if tok.Type != TokenOperator || !comparisonOps[tok.Value] {
		return left, nil
	}
	p.advance()

	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	next := p.peek()
	if next.Type == TokenOperator && comparisonOps[next.Value] {
		return nil, syntaxErrorf(next.Pos, "chained comparisons are not supported")
	}
	return &BinaryNode{At: tok.Pos, Op: tok.Value, Left: left, Right: right}, nil
}

func (p *parser) parseAdditive() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.isOperator("+", "-") {
		tok := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{At: tok.Pos, Op: tok.Value, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isOperator("*", "/", "//", "%") {
		tok := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{At: tok.Pos, Op: tok.Value, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.isOperator("+", "-") {
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{At: tok.Pos, Op: tok.Value, Operand: operand}, nil
	}
	return p.parsePower()
}

// parsePower binds tighter than a unary minus on its left, so -x**2 is
// -(x**2), while the exponent may itself carry a sign: x**-2
func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !p.isOperator("**") {
		return base, nil
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.advance()
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &BinaryNode{At: tok.Pos, Op: "**", Left: base, Right: exponent}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.advance()

	switch tok.Type {
	case TokenNumber:
		return &NumberNode{At: tok.Pos, Value: tok.Num, Text: tok.Value}, nil

	case TokenIdentifier:
		if p.peek().Type == TokenLParen {
			return p.parseCall(tok)
		}
		return p.resolveName(tok)

	case TokenLParen:
		return p.parseParenthesised(tok)

	default:
		return nil, p.unexpected(tok)
	}
}

func (p *parser) resolveName(tok Token) (Node, error) {
	name := tok.Value
	if isVariable(name) {
		return &VariableNode{At: tok.Pos, Name: name}, nil
	}
	if v, ok := constants[name]; ok {
		return &ConstantNode{At: tok.Pos, Name: name, Value: v}, nil
	}
	if _, ok := functions[name]; ok {
		return nil, typeErrorf(tok.Pos, "function '%s' used as a value (missing call parentheses?)", name)
	}
	return nil, nameErrorf(tok.Pos, "name '%s' is not defined", name)
}

func (p *parser) parseParenthesised(open Token) (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	var items []Node
	for {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		tok := p.advance()
		if tok.Type == TokenRParen {
			break
		}
		if tok.Type != TokenComma {
			if tok.Type == TokenEOF {
				return nil, syntaxErrorf(open.Pos, "unbalanced '('")
			}
			return nil, p.unexpected(tok)
		}
	}

	if len(items) == 1 {
		return items[0], nil
	}
	return &TupleNode{At: open.Pos, Items: items}, nil
}

func (p *parser) parseCall(name Token) (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	open := p.advance() // (
	var args []Node

	if p.peek().Type == TokenRParen {
		p.advance()
	} else {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			tok := p.advance()
			if tok.Type == TokenRParen {
				break
			}
			if tok.Type != TokenComma {
				if tok.Type == TokenEOF {
					return nil, syntaxErrorf(open.Pos, "unbalanced '('")
				}
				return nil, p.unexpected(tok)
			}
		}
	}

	fn, ok := functions[name.Value]
	if !ok {
		if isVariable(name.Value) {
			return nil, typeErrorf(name.Pos, "'%s' is not callable", name.Value)
		}
		if _, isConst := constants[name.Value]; isConst {
			return nil, typeErrorf(name.Pos, "'%s' is not callable", name.Value)
		}
		return nil, nameErrorf(name.Pos, "name '%s' is not defined", name.Value)
	}
	if len(args) != fn.arity {
		return nil, typeErrorf(name.Pos, "%s() takes exactly %d argument%s (%d given)",
			fn.name, fn.arity, plural(fn.arity), len(args))
	}
	return &CallNode{At: name.Pos, Name: fn.name, Args: args, fn: fn}, nil
}

func isVariable(name string) bool {
	return name == "x" || name == "y"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
