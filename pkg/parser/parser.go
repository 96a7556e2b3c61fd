package parser

import (
	"fmt"
	"strings"

	"github.com/brenoafb/calculator/pkg/stack"
)

// Postfix is an expression in reverse Polish order.
type Postfix []Token

func (p Postfix) String() string {
	parts := make([]string, len(p))
	for i, tok := range p {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}

func Precedence(op rune) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	default:
		return 0
	}
}

// Converter turns infix token sequences into postfix using an operator
// stack it owns. A Converter must not be shared between goroutines.
type Converter struct {
	ops *stack.Stack[Token]
}

func NewConverter() *Converter {
	return &Converter{ops: stack.New[Token]()}
}

// Convert tokenizes line and converts it to postfix.
func (c *Converter) Convert(line string) (Postfix, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, fmt.Errorf("error converting expression: %w", err)
	}

	return c.ToPostfix(tokens), nil
}

// ToPostfix runs the shunting-yard algorithm over tokens, consuming them.
//
// A ')' with no matching '(' drains the operator stack and is otherwise
// ignored. Unmatched '(' tokens are emitted at the end of the output and
// left for the evaluator to reject.
func (c *Converter) ToPostfix(tokens *Tokens) Postfix {
	c.ops.Clear()
	out := make(Postfix, 0, tokens.Len())

	for tokens.Len() > 0 {
		tok := tokens.pop()

		switch tok.Typ {
		case TokenNumber:
			out = append(out, tok)
		case TokenLParen:
			c.ops.Push(tok)
		case TokenRParen:
			for {
				top, ok := c.ops.Pop()
				if !ok || top.Typ == TokenLParen {
					break
				}
				out = append(out, top)
			}
		case TokenOperator:
			for {
				top, ok := c.ops.Peek()
				// equal precedence pops first: left associative
				if !ok || top.Typ == TokenLParen || Precedence(top.Op) < Precedence(tok.Op) {
					break
				}
				c.ops.Pop()
				out = append(out, top)
			}
			c.ops.Push(tok)
		}
	}

	for {
		top, ok := c.ops.Pop()
		if !ok {
			break
		}
		out = append(out, top)
	}

	return out
}

// Convert converts a single infix line with a fresh operator stack.
func Convert(line string) (Postfix, error) {
	return NewConverter().Convert(line)
}

// ToPostfix converts tokens with a fresh operator stack.
func ToPostfix(tokens *Tokens) Postfix {
	return NewConverter().ToPostfix(tokens)
}
