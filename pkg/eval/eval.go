package eval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/brenoafb/calculator/pkg/parser"
	"github.com/brenoafb/calculator/pkg/stack"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrMalformed      = errors.New("malformed expression")
)

// Evaluator computes postfix expressions on a value stack it owns.
// An Evaluator must not be shared between goroutines.
type Evaluator struct {
	values *stack.Stack[int]
}

func NewEvaluator() *Evaluator {
	return &Evaluator{values: stack.New[int]()}
}

// Evaluate computes p. The value stack is cleared first, so a previous
// failed evaluation never leaks into this one.
func (e *Evaluator) Evaluate(p parser.Postfix) (int, error) {
	e.values.Clear()

	for i, tok := range p {
		switch tok.Typ {
		case parser.TokenNumber:
			e.values.Push(tok.Number)
		case parser.TokenOperator:
			if err := e.apply(tok.Op); err != nil {
				return 0, fmt.Errorf("error evaluating token %d (%s): %w", i, tok, err)
			}
		default:
			return 0, fmt.Errorf("unexpected token %d (%s): %w", i, tok, ErrMalformed)
		}
	}

	return e.result()
}

// EvaluateString computes a space separated postfix expression. Unlike
// the converter output it may carry negative literals such as "-3".
func (e *Evaluator) EvaluateString(s string) (int, error) {
	e.values.Clear()

	for i, field := range strings.Fields(s) {
		switch {
		case isNumber(field):
			n, err := strconv.Atoi(field)
			if err != nil {
				return 0, fmt.Errorf("bad number %q: %w", field, errors.Join(ErrMalformed, err))
			}
			e.values.Push(n)
		case len(field) == 1 && parser.IsOperator(rune(field[0])):
			if err := e.apply(rune(field[0])); err != nil {
				return 0, fmt.Errorf("error evaluating token %d (%s): %w", i, field, err)
			}
		default:
			return 0, fmt.Errorf("unexpected token %q: %w", field, ErrMalformed)
		}
	}

	return e.result()
}

func (e *Evaluator) apply(op rune) error {
	fn, ok := operators[op]
	if !ok {
		return fmt.Errorf("unknown operator '%c': %w", op, ErrMalformed)
	}

	b, ok := e.values.Pop()
	if !ok {
		return fmt.Errorf("missing right operand: %w", ErrMalformed)
	}
	a, ok := e.values.Pop()
	if !ok {
		return fmt.Errorf("missing left operand: %w", ErrMalformed)
	}

	x, err := fn(a, b)
	if err != nil {
		return err
	}
	e.values.Push(x)

	return nil
}

func (e *Evaluator) result() (int, error) {
	if n := e.values.Len(); n != 1 {
		return 0, fmt.Errorf("%d values left on stack, expected 1: %w", n, ErrMalformed)
	}
	x, _ := e.values.Pop()
	return x, nil
}

// isNumber reports whether s starts with a digit, or with '-' followed by a digit.
func isNumber(s string) bool {
	if len(s) > 0 && isDigit(s[0]) {
		return true
	}
	return len(s) > 1 && s[0] == '-' && isDigit(s[1])
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// Evaluate computes p with a fresh value stack.
func Evaluate(p parser.Postfix) (int, error) {
	return NewEvaluator().Evaluate(p)
}

// EvaluateString computes postfix text with a fresh value stack.
func EvaluateString(s string) (int, error) {
	return NewEvaluator().EvaluateString(s)
}
