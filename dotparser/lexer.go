package dotparser

import (
	"fmt"
	"strings"
)

// Lexer splits DOT source into tokens. Whitespace, comments and
// preprocessor lines are dropped.
type Lexer struct {
	src    []byte
	at     Position // position of the next unread byte
	peeked *Token
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, at: Position{Line: 1, Column: 1}}
}

// Tokenize drains a Lexer over src. The returned slice always ends with a
// TokenEOF token unless an error is returned.
func Tokenize(src []byte) ([]Token, error) {
	lex := NewLexer(src)
	tokens := make([]Token, 0, len(src)/4+1)
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked == nil {
		tok, err := l.scan()
		if err != nil {
			return Token{}, err
		}
		l.peeked = &tok
	}
	return *l.peeked, nil
}

// Next consumes and returns the next token.
func (l *Lexer) Next() (Token, error) {
	if tok := l.peeked; tok != nil {
		l.peeked = nil
		return *tok, nil
	}
	return l.scan()
}

var punctuation = map[byte]TokenKind{
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
	'=': TokenEquals,
	',': TokenComma,
	';': TokenSemicolon,
}

func (l *Lexer) scan() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}
	start := l.at
	if l.done() {
		return Token{Kind: TokenEOF, Pos: start}, nil
	}

	ch := l.byteAt(0)
	if kind, ok := punctuation[ch]; ok {
		l.skip(1)
		return l.emit(kind, start), nil
	}

	switch {
	case ch == '"':
		return l.quoted(start)
	case ch == '<':
		return l.html(start)
	case ch == '-' && l.byteAt(1) == '>':
		l.skip(2)
		return l.emit(TokenArrow, start), nil
	case ch == '-' && l.byteAt(1) == '-':
		l.skip(2)
		return l.emit(TokenDash, start), nil
	case startsNumeral(ch, l.byteAt(1), l.byteAt(2)):
		return l.numeral(start), nil
	case isIdentStart(ch):
		l.takeWhile(isIdentPart)
		tok := l.emit(TokenIdentifier, start)
		if kind, ok := lookupKeyword(tok.Literal); ok {
			tok.Kind = kind
		}
		return tok, nil
	}

	l.skip(1)
	return Token{}, lexError(start, "unexpected character %q", ch)
}

// emit builds a token whose text is everything consumed since start.
func (l *Lexer) emit(kind TokenKind, start Position) Token {
	raw := string(l.src[start.Offset:l.at.Offset])
	return Token{Kind: kind, Literal: raw, Raw: raw, Pos: start}
}

func lexError(pos Position, format string, args ...any) error {
	return &LexError{ParseError{Message: fmt.Sprintf(format, args...), Pos: pos}}
}

func (l *Lexer) done() bool { return l.at.Offset >= len(l.src) }

// byteAt returns the byte n positions past the cursor, or 0 past the end.
func (l *Lexer) byteAt(n int) byte {
	if i := l.at.Offset + n; i < len(l.src) {
		return l.src[i]
	}
	return 0
}

func (l *Lexer) skip(n int) {
	for ; n > 0 && !l.done(); n-- {
		if l.src[l.at.Offset] == '\n' {
			l.at.Line++
			l.at.Column = 1
		} else {
			l.at.Column++
		}
		l.at.Offset++
	}
}

func (l *Lexer) takeWhile(pred func(byte) bool) {
	for !l.done() && pred(l.byteAt(0)) {
		l.skip(1)
	}
}

func (l *Lexer) skipTrivia() error {
	for !l.done() {
		ch := l.byteAt(0)
		switch {
		case isSpace(ch):
			l.skip(1)
		case ch == '/' && l.byteAt(1) == '/',
			ch == '#' && l.onlyBlanksBefore():
			l.takeWhile(func(b byte) bool { return b != '\n' })
		case ch == '/' && l.byteAt(1) == '*':
			start := l.at
			end := strings.Index(string(l.src[start.Offset+2:]), "*/")
			if end < 0 {
				return lexError(start, "unterminated block comment")
			}
			l.skip(end + 4)
		default:
			return nil
		}
	}
	return nil
}

// onlyBlanksBefore reports whether the cursor is the first non-blank byte of
// its line. A '#' there starts a preprocessor line.
func (l *Lexer) onlyBlanksBefore() bool {
	for i := l.at.Offset - 1; i >= 0; i-- {
		switch l.src[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
		default:
			return false
		}
	}
	return true
}

// quoted scans a double-quoted string. Only \" and backslash-newline are
// decoded; every other escape is kept for the renderer.
func (l *Lexer) quoted(start Position) (Token, error) {
	l.skip(1)
	var text strings.Builder
	for {
		if l.done() {
			return Token{}, lexError(start, "unterminated string")
		}
		ch := l.byteAt(0)
		l.skip(1)
		switch ch {
		case '"':
			tok := l.emit(TokenIdentifier, start)
			tok.Literal = text.String()
			tok.Quote = QuoteDouble
			return tok, nil
		case '\\':
			if l.done() {
				return Token{}, lexError(start, "unterminated string escape")
			}
			esc := l.byteAt(0)
			l.skip(1)
			switch esc {
			case '"':
				text.WriteByte('"')
			case '\n':
			case '\r':
				if l.byteAt(0) == '\n' {
					l.skip(1)
				}
			default:
				text.WriteByte('\\')
				text.WriteByte(esc)
			}
		default:
			text.WriteByte(ch)
		}
	}
}

// html scans a <...> string, which may nest angle brackets.
func (l *Lexer) html(start Position) (Token, error) {
	for depth := 0; ; {
		if l.done() {
			return Token{}, lexError(start, "unterminated HTML string")
		}
		switch l.byteAt(0) {
		case '<':
			depth++
		case '>':
			depth--
		}
		l.skip(1)
		if depth == 0 {
			tok := l.emit(TokenIdentifier, start)
			tok.Literal = tok.Raw[1 : len(tok.Raw)-1]
			tok.Quote = QuoteHTML
			return tok, nil
		}
	}
}

// startsNumeral reports whether a numeral begins at ch: [-](digits | .digit).
func startsNumeral(ch, next, after byte) bool {
	if ch == '-' {
		ch, next = next, after
	}
	return isDigit(ch) || (ch == '.' && isDigit(next))
}

// numeral scans [-]digits[.digits]. Letters running straight on (10px) stay
// part of the same ID.
func (l *Lexer) numeral(start Position) Token {
	if l.byteAt(0) == '-' {
		l.skip(1)
	}
	l.takeWhile(isDigit)
	if l.byteAt(0) == '.' {
		l.skip(1)
		l.takeWhile(isDigit)
	}
	l.takeWhile(isIdentPart)
	return l.emit(TokenIdentifier, start)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
