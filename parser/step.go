package parser

import "github.com/dhamidi/formula/lexer"

// Step is a single parsing step. On failure the returned value is the zero
// value and the state is the one at the time of failure.
type Step[T any] func(State) (T, State, error)

func Pure[T any](v T) Step[T] {
	return func(s State) (T, State, error) {
		return v, s, nil
	}
}

func Fail[T any](err error) Step[T] {
	return func(s State) (T, State, error) {
		var zero T
		return zero, s, err
	}
}

// Bind runs m and feeds its value to k. The first error stops the chain and
// is returned unchanged.
func Bind[A, B any](m Step[A], k func(A) Step[B]) Step[B] {
	return func(s State) (B, State, error) {
		a, s, err := m(s)
		if err != nil {
			var zero B
			return zero, s, err
		}
		return k(a)(s)
	}
}

// Then runs m and then n, keeping the value of n.
func Then[A, B any](m Step[A], n Step[B]) Step[B] {
	return Bind(m, func(A) Step[B] { return n })
}

// Skip runs m and then n, keeping the value of m.
func Skip[A, B any](m Step[A], n Step[B]) Step[A] {
	return Bind(m, func(a A) Step[A] {
		return Map(n, func(B) A { return a })
	})
}

func Map[A, B any](m Step[A], f func(A) B) Step[B] {
	return func(s State) (B, State, error) {
		a, s, err := m(s)
		if err != nil {
			var zero B
			return zero, s, err
		}
		return f(a), s, nil
	}
}

// Sequence runs steps in order and collects their values.
func Sequence[T any](steps ...Step[T]) Step[[]T] {
	return func(s State) ([]T, State, error) {
		values := make([]T, 0, len(steps))
		for _, step := range steps {
			v, next, err := step(s)
			if err != nil {
				return nil, next, err
			}
			values = append(values, v)
			s = next
		}
		return values, s, nil
	}
}

// Expect consumes a token of the given kind.
func Expect(kind lexer.TokenKind) Step[lexer.Token] {
	return func(s State) (lexer.Token, State, error) {
		tok := s.current()
		if tok.Kind != kind {
			return lexer.Token{}, s, &Error{
				Message:  "missing " + describeKind(kind),
				Position: tok.Span.Start,
				Expected: describeKind(kind),
				Found:    tok.Describe(),
			}
		}
		return Advance(s)
	}
}

// Optional consumes a token of the given kind if it is present.
func Optional(kind lexer.TokenKind) Step[bool] {
	return func(s State) (bool, State, error) {
		if s.current().Kind != kind {
			return false, s, nil
		}
		_, s, _ = Advance(s)
		return true, s, nil
	}
}

// SeparatedBy parses one or more items separated by sep.
func SeparatedBy[T any](item Step[T], sep lexer.TokenKind) Step[[]T] {
	return func(s State) ([]T, State, error) {
		var items []T
		for {
			v, next, err := item(s)
			if err != nil {
				return nil, next, err
			}
			items = append(items, v)
			more, next, _ := Optional(sep)(next)
			s = next
			if !more {
				return items, s, nil
			}
		}
	}
}

func describeKind(kind lexer.TokenKind) string {
	switch kind {
	case lexer.TokenEOF:
		return "end of input"
	case lexer.TokenIdent:
		return "identifier"
	case lexer.TokenNumber:
		return "number"
	case lexer.TokenString:
		return "string"
	}
	return "'" + kind.String() + "'"
}
