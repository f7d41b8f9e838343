package dotparser

// Directed selects the digraph grammar: introduced by 'digraph', edges joined by '->'.
type Directed struct{}

// Undirected selects the graph grammar: introduced by 'graph', edges joined by '--'.
type Undirected struct{}

func (Directed) introducer() TokenKind   { return TokenDigraph }
func (Directed) edgeOp() TokenKind       { return TokenArrow }
func (Undirected) introducer() TokenKind { return TokenGraph }
func (Undirected) edgeOp() TokenKind     { return TokenDash }

// Kind is the graph-kind type parameter threaded through Graph, Subgraph,
// Statement, Edge and Endpoint. A tree instantiated with one kind cannot hold
// nodes of the other.
type Kind interface {
	Directed | Undirected
	introducer() TokenKind
	edgeOp() TokenKind
}

// GraphKind is the runtime counterpart of Kind, used where the kind is only
// known after inspecting the input.
type GraphKind int

const (
	KindUndirected GraphKind = iota
	KindDirected
)

func (k GraphKind) String() string {
	if k == KindDirected {
		return "digraph"
	}
	return "graph"
}

// EdgeOp returns the edge operator text for the kind.
func (k GraphKind) EdgeOp() string {
	if k == KindDirected {
		return "->"
	}
	return "--"
}

// KindOf returns the runtime GraphKind of the type parameter K.
func KindOf[K Kind]() GraphKind {
	var k K
	if k.introducer() == TokenDigraph {
		return KindDirected
	}
	return KindUndirected
}

func introducerOf[K Kind]() TokenKind {
	var k K
	return k.introducer()
}

func edgeOpOf[K Kind]() TokenKind {
	var k K
	return k.edgeOp()
}
