package expression

import (
	"strconv"
	"strings"
)

// TokenType classifies lexical tokens
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenIdentifier
	TokenOperator
	TokenLParen
	TokenRParen
	TokenComma
)

// Token is a lexical token with its byte offset in the source
type Token struct {
	Type  TokenType
	Value string
	Num   float64
	Pos   int
}

// two-character operators are matched before single characters
var operators2 = []string{"**", "//", "<=", ">=", "==", "!="}

const operators1 = "+-*/%<>"

// tokenize splits the source into tokens terminated by TokenEOF
func tokenize(src string) ([]Token, error) {
	var tokens []Token
	pos := 0

	for pos < len(src) {
		c := src[pos]

		switch {
		case isSpace(c):
			pos++

		case isDigit(c) || (c == '.' && pos+1 < len(src) && isDigit(src[pos+1])):
			tok, next, err := readNumber(src, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			pos = next

		case isLetter(c):
			start := pos
			for pos < len(src) && (isLetter(src[pos]) || isDigit(src[pos])) {
				pos++
			}
			tokens = append(tokens, Token{Type: TokenIdentifier, Value: src[start:pos], Pos: start})

		case c == '(':
			tokens = append(tokens, Token{Type: TokenLParen, Value: "(", Pos: pos})
			pos++

		case c == ')':
			tokens = append(tokens, Token{Type: TokenRParen, Value: ")", Pos: pos})
			pos++

		case c == ',':
			tokens = append(tokens, Token{Type: TokenComma, Value: ",", Pos: pos})
			pos++

		default:
			op := readOperator(src, pos)
			if op == "" {
				return nil, invalidCharacter(src, pos)
			}
			tokens = append(tokens, Token{Type: TokenOperator, Value: op, Pos: pos})
			pos += len(op)
		}
	}

	tokens = append(tokens, Token{Type: TokenEOF, Pos: len(src)})
	return tokens, nil
}

func readNumber(src string, start int) (Token, int, error) {
	pos := start
	for pos < len(src) && isDigit(src[pos]) {
		pos++
	}
	if pos < len(src) && src[pos] == '.' {
		pos++
		for pos < len(src) && isDigit(src[pos]) {
			pos++
		}
	}
	if pos < len(src) && (src[pos] == 'e' || src[pos] == 'E') {
		exp := pos + 1
		if exp < len(src) && (src[exp] == '+' || src[exp] == '-') {
			exp++
		}
		if exp < len(src) && isDigit(src[exp]) {
			pos = exp
			for pos < len(src) && isDigit(src[pos]) {
				pos++
			}
		}
	}

	text := src[start:pos]
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, pos, syntaxErrorf(start, "invalid number literal %q", text)
	}
	if pos < len(src) && (isLetter(src[pos]) || src[pos] == '.') {
		return Token{}, pos, syntaxErrorf(start, "invalid number literal %q", src[start:pos+1])
	}
	return Token{Type: TokenNumber, Value: text, Num: num, Pos: start}, pos, nil
}

func readOperator(src string, pos int) string {
	for _, op := range operators2 {
		if strings.HasPrefix(src[pos:], op) {
			return op
		}
	}
	if strings.IndexByte(operators1, src[pos]) >= 0 {
		return src[pos : pos+1]
	}
	return ""
}

func invalidCharacter(src string, pos int) error {
	switch src[pos] {
	case '^':
		return syntaxErrorf(pos, "unsupported operator '^' (use '**' for powers)")
	case '=':
		return syntaxErrorf(pos, "unexpected '=' (use '==' to compare)")
	default:
		return syntaxErrorf(pos, "invalid character %q", src[pos])
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
