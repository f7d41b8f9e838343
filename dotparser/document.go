package dotparser

import "go.uber.org/zap"

// Document is a parsed DOT document. Exactly one of Directed and Undirected
// is non-nil.
type Document struct {
	Directed   *Graph[Directed]   `json:",omitempty" yaml:",omitempty"`
	Undirected *Graph[Undirected] `json:",omitempty" yaml:",omitempty"`
}

// Kind reports which grammar the document was parsed with.
func (d *Document) Kind() GraphKind {
	if d.Directed != nil {
		return KindDirected
	}
	return KindUndirected
}

// ID returns the graph name.
func (d *Document) ID() ID {
	if d.Directed != nil {
		return d.Directed.ID
	}
	return d.Undirected.ID
}

// Strict reports whether the graph was declared strict.
func (d *Document) Strict() bool {
	if d.Directed != nil {
		return d.Directed.Strict
	}
	return d.Undirected.Strict
}

// DetectKind looks at the leading `[strict] graph|digraph` keywords to decide
// which grammar a token sequence must be parsed with.
func DetectKind(tokens []Token) (GraphKind, error) {
	c := NewCursor(tokens)
	c = c.Skip(TokenStrict)
	switch tok := c.Peek(); tok.Kind {
	case TokenDigraph:
		return KindDirected, nil
	case TokenGraph:
		return KindUndirected, nil
	default:
		return 0, unexpected(tok, "'graph' or 'digraph'", "graph")
	}
}

// ParseAs parses src as a graph of kind K. The whole input must be a single
// graph: trailing tokens after the closing brace are an error.
func ParseAs[K Kind](src []byte, opts ...Option) (*Graph[K], error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return parseTokens[K](tokens, opts)
}

func parseTokens[K Kind](tokens []Token, opts []Option) (*Graph[K], error) {
	c := NewCursor(tokens, opts...)
	g, c, err := ParseGraph[K](c)
	if err != nil {
		return nil, err
	}
	if tok := c.Peek(); tok.Kind != TokenEOF {
		err := unexpected(tok, "EOF", "document")
		if se, ok := err.(*SyntaxError); ok {
			se.Message = "only one graph per document is allowed"
		}
		return nil, err
	}
	c.logger().Debug("parsed graph",
		zap.String("id", g.ID.Text),
		zap.Stringer("kind", g.Kind()),
		zap.Bool("strict", g.Strict),
		zap.Int("statements", len(g.Statements)),
		zap.Int("tokens", len(tokens)))
	return g, nil
}

// Parse detects the graph kind of src and parses it with the matching grammar.
// Returns a *SyntaxError, *PrematureEndError or *LexError on failure.
func Parse(src []byte, opts ...Option) (*Document, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	kind, err := DetectKind(tokens)
	if err != nil {
		return nil, err
	}
	newOptions(opts).logger.Debug("detected graph kind", zap.Stringer("kind", kind))

	if kind == KindDirected {
		g, err := parseTokens[Directed](tokens, opts)
		if err != nil {
			return nil, err
		}
		return &Document{Directed: g}, nil
	}
	g, err := parseTokens[Undirected](tokens, opts)
	if err != nil {
		return nil, err
	}
	return &Document{Undirected: g}, nil
}
