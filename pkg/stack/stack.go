package stack

// Stack is a slice-backed LIFO. The zero value is an empty stack ready to use.
type Stack[T any] struct {
	elems []T
}

func New[T any]() *Stack[T] {
	return &Stack[T]{
		elems: make([]T, 0),
	}
}

func (s *Stack[T]) Push(x T) {
	s.elems = append(s.elems, x)
}

// Pop removes the top element. On an empty stack it returns the zero value
// and false.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.elems) == 0 {
		return zero, false
	}
	top := s.elems[len(s.elems)-1]
	s.elems[len(s.elems)-1] = zero
	s.elems = s.elems[:len(s.elems)-1]

	return top, true
}

func (s *Stack[T]) Peek() (T, bool) {
	if len(s.elems) == 0 {
		var zero T
		return zero, false
	}
	return s.elems[len(s.elems)-1], true
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.elems) == 0
}

func (s *Stack[T]) Len() int {
	return len(s.elems)
}

// Clear drops every element but keeps the backing array for reuse.
func (s *Stack[T]) Clear() {
	var zero T
	for i := range s.elems {
		s.elems[i] = zero
	}
	s.elems = s.elems[:0]
}
