package eval

type operator func(a, b int) (int, error)

var operators map[rune]operator

func init() {
	operators = map[rune]operator{
		'+': func(a, b int) (int, error) {
			return a + b, nil
		},
		'-': func(a, b int) (int, error) {
			return a - b, nil
		},
		'*': func(a, b int) (int, error) {
			return a * b, nil
		},
		// Go integer division truncates toward zero
		'/': func(a, b int) (int, error) {
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			return a / b, nil
		},
	}
}
