package parser

import (
	"fmt"
	"strconv"
	"unicode"
)

type TokenType int

const (
	TokenLParen TokenType = iota
	TokenRParen
	TokenNumber
	TokenOperator
)

type Token struct {
	Typ    TokenType
	Number int
	Op     rune
}

func lparen() Token {
	return Token{
		Typ: TokenLParen,
		Op:  '(',
	}
}

func rparen() Token {
	return Token{
		Typ: TokenRParen,
		Op:  ')',
	}
}

func number(n int) Token {
	return Token{
		Typ:    TokenNumber,
		Number: n,
	}
}

func operator(op rune) Token {
	return Token{
		Typ: TokenOperator,
		Op:  op,
	}
}

func (t Token) String() string {
	switch t.Typ {
	case TokenNumber:
		return strconv.Itoa(t.Number)
	case TokenLParen, TokenRParen, TokenOperator:
		return string(t.Op)
	default:
		return "unknown_token"
	}
}

func IsOperator(r rune) bool {
	switch r {
	case '+', '-', '*', '/':
		return true
	}
	return false
}

type Tokens struct {
	tokens []Token
}

func (t *Tokens) pop() Token {
	if len(t.tokens) == 0 {
		panic("cannot pop off empty list")
	}
	token := t.tokens[0]
	t.tokens = t.tokens[1:]

	return token
}

func (t *Tokens) append(tok Token) {
	t.tokens = append(t.tokens, tok)
}

func (t *Tokens) Len() int {
	return len(t.tokens)
}

// Slice returns the remaining tokens without consuming them.
func (t *Tokens) Slice() []Token {
	return t.tokens
}

// Tokenize splits an infix line into numbers, operators and parentheses.
// Whitespace and any other unrecognized character are dropped.
func Tokenize(code string) (*Tokens, error) {
	runes := []rune(code)

	tokens := Tokens{
		tokens: make([]Token, 0),
	}

	i := 0

	for i < len(runes) {
		r := runes[i]

		switch {
		case r == '(':
			tokens.append(lparen())
			i++
			continue
		case r == ')':
			tokens.append(rparen())
			i++
			continue
		case IsOperator(r):
			tokens.append(operator(r))
			i++
			continue
		}

		var start int

		for start = i; i < len(runes) && isDigit(runes[i]); i++ {
		}

		if start != i {
			n, err := strconv.Atoi(string(runes[start:i]))
			if err != nil {
				return nil, fmt.Errorf(
					"error tokenizing number at column %d: %w",
					start,
					err,
				)
			}

			tokens.append(number(n))
			continue
		}

		// whitespace and stray characters
		i++
	}

	return &tokens, nil
}

// unicode.IsDigit accepts non-ASCII digits that strconv cannot parse.
func isDigit(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsDigit(r)
}
