package dotparser

import "fmt"

// ParseError is the base error type for all dotparser errors.
type ParseError struct {
	Message string
	Pos     Position
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Position returns where the error occurred.
func (e *ParseError) Position() Position { return e.Pos }

// LexError represents a lexer-level error (unterminated string, invalid character).
type LexError struct{ ParseError }

// SyntaxError is returned when the next token does not match what the
// builder for Construct requires.
type SyntaxError struct {
	ParseError
	Expected  string
	Construct string
	Got       Token
}

func (e *SyntaxError) Error() string {
	msg := "expected " + e.Expected
	if e.Construct != "" {
		msg += " in " + e.Construct
	}
	msg += ", got " + e.Got.describe()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, msg)
	}
	return msg
}

// PrematureEndError is a SyntaxError whose offending token is EOF: the input
// stopped in the middle of a construct.
type PrematureEndError struct{ SyntaxError }

func (e *PrematureEndError) Error() string { return e.SyntaxError.Error() }

// As lets errors.As match a *PrematureEndError as a *SyntaxError.
func (e *PrematureEndError) As(target any) bool {
	if se, ok := target.(**SyntaxError); ok {
		*se = &e.SyntaxError
		return true
	}
	return false
}

// unexpected builds the error for tok appearing where expected was required.
func unexpected(tok Token, expected, construct string) error {
	se := SyntaxError{
		ParseError: ParseError{Pos: tok.Pos},
		Expected:   expected,
		Construct:  construct,
		Got:        tok,
	}
	if tok.Kind == TokenEOF {
		return &PrematureEndError{se}
	}
	return &se
}
