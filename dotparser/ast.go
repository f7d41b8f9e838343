package dotparser

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// ID is an identifier used for graph, subgraph and node names and for
// attribute keys and values. Text is the decoded value; Quote records the
// source form so the formatter can reproduce it.
type ID struct {
	Text  string
	Quote QuoteStyle
	Pos   Position
}

// NewID returns an unpositioned ID whose quoting is chosen by the formatter.
func NewID(text string) ID { return ID{Text: text} }

func (id ID) String() string { return id.Text }

// MarshalText encodes an ID as its decoded text.
func (id ID) MarshalText() ([]byte, error) { return []byte(id.Text), nil }

// Assignment is one key=value attribute binding.
type Assignment struct {
	Key   ID
	Value ID
	Pos   Position `json:"-" yaml:"-"`
}

// NewAssignment builds an Assignment from plain strings.
func NewAssignment(key, value string) Assignment {
	return Assignment{Key: NewID(key), Value: NewID(value)}
}

// AttributeGroup is the content of one bracketed [...] block.
type AttributeGroup []Assignment

// AttributeList holds the bracket groups attached to one statement, in source
// order. A nil AttributeList means no brackets were present; an empty "[]"
// is a list with one empty group.
type AttributeList []AttributeGroup

// Assignments returns every assignment of every group in source order.
func (l AttributeList) Assignments() []Assignment {
	var out []Assignment
	for _, g := range l {
		out = append(out, g...)
	}
	return out
}

// Lookup returns the last value bound to key across all groups.
func (l AttributeList) Lookup(key string) (ID, bool) {
	for i := len(l) - 1; i >= 0; i-- {
		for j := len(l[i]) - 1; j >= 0; j-- {
			if l[i][j].Key.Text == key {
				return l[i][j].Value, true
			}
		}
	}
	return ID{}, false
}

// Node is a node statement, e.g. `A [color = red][length = long]`.
type Node struct {
	ID         ID
	Attributes AttributeList `json:",omitempty" yaml:",omitempty"`
	Pos        Position      `json:"-" yaml:"-"`
}

// Endpoint is one end of an edge segment. Exactly one of NodeID and Subgraph
// is set.
type Endpoint[K Kind] struct {
	NodeID   *ID          `json:",omitempty" yaml:",omitempty"`
	Subgraph *Subgraph[K] `json:",omitempty" yaml:",omitempty"`
}

// IsSubgraph reports whether the endpoint is an inline subgraph.
func (e Endpoint[K]) IsSubgraph() bool { return e.Subgraph != nil }

// Pos returns the position of the endpoint's first token.
func (e Endpoint[K]) Pos() Position {
	if e.Subgraph != nil {
		return e.Subgraph.Pos
	}
	return e.NodeID.Pos
}

// EdgePair is one segment of an edge chain.
type EdgePair[K Kind] struct {
	From Endpoint[K]
	To   Endpoint[K]
}

// Edge is an edge chain `A -> B -> C [attrs]`. It always has at least two
// endpoints, and Attributes apply to every segment.
type Edge[K Kind] struct {
	Endpoints  []Endpoint[K]
	Attributes AttributeList `json:",omitempty" yaml:",omitempty"`
	Pos        Position      `json:"-" yaml:"-"`
}

// Pairs returns the adjacent endpoint pairs of the chain.
func (e *Edge[K]) Pairs() []EdgePair[K] {
	if len(e.Endpoints) < 2 {
		return nil
	}
	pairs := make([]EdgePair[K], 0, len(e.Endpoints)-1)
	for i := 0; i+1 < len(e.Endpoints); i++ {
		pairs = append(pairs, EdgePair[K]{From: e.Endpoints[i], To: e.Endpoints[i+1]})
	}
	return pairs
}

// Subgraph is `subgraph [ID] { ... }` or an anonymous `{ ... }` block.
type Subgraph[K Kind] struct {
	ID         *ID          `json:",omitempty" yaml:",omitempty"`
	Keyword    bool         `json:"-" yaml:"-"` // written with the 'subgraph' keyword
	Statements []Statement[K]
	Pos        Position `json:"-" yaml:"-"`
}

// Name returns the subgraph ID text, or "" for an anonymous subgraph.
func (s *Subgraph[K]) Name() string {
	if s.ID == nil {
		return ""
	}
	return s.ID.Text
}

// AttrTarget is the keyword before an attribute statement.
type AttrTarget int

const (
	TargetNone  AttrTarget = iota // bare [...]
	TargetGraph                   // graph [...]
	TargetNode                    // node [...]
	TargetEdge                    // edge [...]
)

var attrTargetNames = [...]string{"none", "graph", "node", "edge"}

func (t AttrTarget) String() string {
	if int(t) < len(attrTargetNames) {
		return attrTargetNames[t]
	}
	return "unknown"
}

func (t AttrTarget) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// AttrStmt sets default attributes for the graph, or for nodes or edges
// declared after it in the same scope.
type AttrStmt struct {
	Target     AttrTarget
	Attributes AttributeList
	Pos        Position `json:"-" yaml:"-"`
}

// StatementKind discriminates the Statement tagged union.
type StatementKind int

const (
	StmtNode StatementKind = iota
	StmtEdge
	StmtSubgraph
	StmtAssignment
	StmtAttr
)

var statementKindNames = [...]string{"node", "edge", "subgraph", "assignment", "attr"}

func (k StatementKind) String() string {
	if int(k) < len(statementKindNames) {
		return statementKindNames[k]
	}
	return "unknown"
}

func (k StatementKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Statement is one entry of a graph or subgraph body. Kind determines which
// field is populated.
type Statement[K Kind] struct {
	Kind       StatementKind
	Node       *Node        `json:",omitempty" yaml:",omitempty"`
	Edge       *Edge[K]     `json:",omitempty" yaml:",omitempty"`
	Subgraph   *Subgraph[K] `json:",omitempty" yaml:",omitempty"`
	Assignment *Assignment  `json:",omitempty" yaml:",omitempty"`
	Attr       *AttrStmt    `json:",omitempty" yaml:",omitempty"`
}

// Pos returns the position of the statement's first token.
func (s Statement[K]) Pos() Position {
	switch s.Kind {
	case StmtNode:
		return s.Node.Pos
	case StmtEdge:
		return s.Edge.Pos
	case StmtSubgraph:
		return s.Subgraph.Pos
	case StmtAssignment:
		return s.Assignment.Pos
	case StmtAttr:
		return s.Attr.Pos
	}
	return Position{}
}

// Graph is the top-level parse result.
type Graph[K Kind] struct {
	ID         ID
	Strict     bool
	Statements []Statement[K]
	Pos        Position `json:"-" yaml:"-"`
}

// Kind returns the runtime graph kind of g.
func (g *Graph[K]) Kind() GraphKind { return KindOf[K]() }

// Walk visits every statement depth-first in source order, descending into
// subgraph statements and subgraph edge endpoints. Returning false from fn
// skips the children of that statement.
func Walk[K Kind](stmts []Statement[K], fn func(Statement[K]) bool) {
	for _, st := range stmts {
		if !fn(st) {
			continue
		}
		switch st.Kind {
		case StmtSubgraph:
			Walk(st.Subgraph.Statements, fn)
		case StmtEdge:
			for _, ep := range st.Edge.Endpoints {
				if ep.Subgraph != nil {
					Walk(ep.Subgraph.Statements, fn)
				}
			}
		}
	}
}

// Edges returns every edge statement reachable from the graph, including
// those nested in subgraphs.
func (g *Graph[K]) Edges() []*Edge[K] {
	var edges []*Edge[K]
	Walk(g.Statements, func(st Statement[K]) bool {
		if st.Kind == StmtEdge {
			edges = append(edges, st.Edge)
		}
		return true
	})
	return edges
}
