package dotparser

import "go.uber.org/zap"

// stream is the immutable token sequence shared by every Cursor of one parse.
type stream struct {
	tokens []Token
	log    *zap.Logger
}

// Cursor is a position in a token sequence. It is a small value: copying a
// Cursor clones it, and advancing returns a new Cursor without touching the
// original, so a failed attempt never leaves partial side effects.
type Cursor struct {
	s *stream
	i int
}

// NewCursor returns a Cursor at the start of tokens. tokens must end with a
// TokenEOF token, as produced by Tokenize.
func NewCursor(tokens []Token, opts ...Option) Cursor {
	o := newOptions(opts)
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		var eof Token
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			eof.Pos = Position{Line: last.Pos.Line, Column: last.Pos.Column + len(last.Raw), Offset: last.End()}
		}
		eof.Kind = TokenEOF
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}
	return Cursor{s: &stream{tokens: tokens, log: o.logger}}
}

// Peek returns the current token without consuming it. At the end of input
// it keeps returning the EOF token.
func (c Cursor) Peek() Token {
	return c.s.tokens[c.i]
}

// PeekAt returns the token n positions ahead of the current one.
func (c Cursor) PeekAt(n int) Token {
	if c.i+n >= len(c.s.tokens) {
		return c.s.tokens[len(c.s.tokens)-1]
	}
	return c.s.tokens[c.i+n]
}

// Next returns the current token and a cursor advanced past it.
func (c Cursor) Next() (Token, Cursor) {
	tok := c.s.tokens[c.i]
	if tok.Kind != TokenEOF {
		c.i++
	}
	return tok, c
}

// Is reports whether the current token has the given kind.
func (c Cursor) Is(kind TokenKind) bool {
	return c.Peek().Kind == kind
}

// Expect consumes a token of the given kind. construct names what is being
// parsed, for the error message.
func (c Cursor) Expect(kind TokenKind, construct string) (Token, Cursor, error) {
	tok := c.Peek()
	if tok.Kind != kind {
		return Token{}, c, unexpected(tok, kind.String(), construct)
	}
	_, next := c.Next()
	return tok, next, nil
}

// Skip consumes the current token if it has the given kind.
func (c Cursor) Skip(kind TokenKind) Cursor {
	if c.Is(kind) {
		_, c = c.Next()
	}
	return c
}

// Pos returns the position of the current token.
func (c Cursor) Pos() Position { return c.Peek().Pos }

// Index returns how many tokens have been consumed.
func (c Cursor) Index() int { return c.i }

// AtEnd reports whether only EOF remains.
func (c Cursor) AtEnd() bool { return c.Is(TokenEOF) }

func (c Cursor) logger() *zap.Logger { return c.s.log }

// ParseFunc is the protocol implemented by every builder: consume a prefix of
// the token sequence starting at the cursor and return the value with the
// advanced cursor, or fail.
type ParseFunc[T any] func(Cursor) (T, Cursor, error)

// Attempt runs fn speculatively. On failure the original cursor is returned
// along with the error.
func Attempt[T any](fn ParseFunc[T], c Cursor, construct string) (T, Cursor, error) {
	v, next, err := fn(c)
	if err != nil {
		c.logger().Debug("speculative parse rolled back",
			zap.String("construct", construct),
			zap.Int("token", c.i),
			zap.Int("line", c.Pos().Line),
			zap.Error(err))
		var zero T
		return zero, c, err
	}
	return v, next, nil
}

// Optional runs fn speculatively and reports whether it succeeded. When it
// did not, the returned cursor is exactly c.
func Optional[T any](fn ParseFunc[T], c Cursor, construct string) (T, bool, Cursor) {
	v, next, err := Attempt(fn, c, construct)
	return v, err == nil, next
}
