package dotparser

import "strings"

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIllegal
	TokenIdentifier // bare ID, numeral, "quoted" or <html>
	TokenLBrace     // {
	TokenRBrace     // }
	TokenLBracket   // [
	TokenRBracket   // ]
	TokenEquals     // =
	TokenComma      // ,
	TokenSemicolon  // ;
	TokenArrow      // ->
	TokenDash       // --

	// Keywords (matched case-insensitively)
	TokenStrict   // strict
	TokenGraph    // graph
	TokenDigraph  // digraph
	TokenSubgraph // subgraph
	TokenNode     // node
	TokenEdge     // edge
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenIllegal:    "illegal",
	TokenIdentifier: "identifier",
	TokenLBrace:     "'{'",
	TokenRBrace:     "'}'",
	TokenLBracket:   "'['",
	TokenRBracket:   "']'",
	TokenEquals:     "'='",
	TokenComma:      "','",
	TokenSemicolon:  "';'",
	TokenArrow:      "'->'",
	TokenDash:       "'--'",
	TokenStrict:     "'strict'",
	TokenGraph:      "'graph'",
	TokenDigraph:    "'digraph'",
	TokenSubgraph:   "'subgraph'",
	TokenNode:       "'node'",
	TokenEdge:       "'edge'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsKeyword reports whether k is one of the reserved DOT keywords.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenStrict && k <= TokenEdge
}

// QuoteStyle records how an identifier was written in the source.
type QuoteStyle int

const (
	QuoteNone   QuoteStyle = iota // bare ID or numeral
	QuoteDouble                   // "..."
	QuoteHTML                     // <...>
)

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Literal string // decoded text (quotes and escapes removed for strings)
	Raw     string // exact source slice the token was matched from
	Quote   QuoteStyle
	Pos     Position
}

// End returns the byte offset just past the token in the source.
func (t Token) End() int {
	return t.Pos.Offset + len(t.Raw)
}

// describe renders a token for error messages.
func (t Token) describe() string {
	switch t.Kind {
	case TokenEOF:
		return "EOF"
	case TokenIdentifier:
		return "identifier " + quoteForMessage(t.Raw)
	default:
		return t.Kind.String()
	}
}

func quoteForMessage(s string) string {
	if len(s) > 32 {
		s = s[:29] + "..."
	}
	if strings.HasPrefix(s, `"`) {
		return s
	}
	return `"` + s + `"`
}

// keywords maps lowercased keyword strings to their token kinds.
var keywords = map[string]TokenKind{
	"strict":   TokenStrict,
	"graph":    TokenGraph,
	"digraph":  TokenDigraph,
	"subgraph": TokenSubgraph,
	"node":     TokenNode,
	"edge":     TokenEdge,
}

func lookupKeyword(ident string) (TokenKind, bool) {
	kind, ok := keywords[strings.ToLower(ident)]
	return kind, ok
}
