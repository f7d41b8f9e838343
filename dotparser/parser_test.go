package dotparser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ignorePos = cmpopts.IgnoreTypes(Position{})

func id(s string) ID  { return ID{Text: s} }
func qid(s string) ID { return ID{Text: s, Quote: QuoteDouble} }

func asg(k, v string) Assignment { return Assignment{Key: id(k), Value: id(v)} }

func nodeEP[K Kind](s string) Endpoint[K] {
	n := id(s)
	return Endpoint[K]{NodeID: &n}
}

func nodeStmt[K Kind](s string, attrs AttributeList) Statement[K] {
	return Statement[K]{Kind: StmtNode, Node: &Node{ID: id(s), Attributes: attrs}}
}

func edgeStmt[K Kind](attrs AttributeList, eps ...Endpoint[K]) Statement[K] {
	return Statement[K]{Kind: StmtEdge, Edge: &Edge[K]{Endpoints: eps, Attributes: attrs}}
}

func assertNoDiff(t *testing.T, want, got any) {
	t.Helper()
	if diff := cmp.Diff(want, got, ignorePos); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseID(t *testing.T) {
	got, c, err := ParseID(cursorFor(t, `"hello world" x`))
	require.NoError(t, err)
	assertNoDiff(t, qid("hello world"), got)
	assert.Equal(t, "x", c.Peek().Literal)

	_, _, err = ParseID(cursorFor(t, "{"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected identifier")
}

func TestParseIDRejectsKeyword(t *testing.T) {
	_, _, err := ParseID(cursorFor(t, "node"))
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)
}

func TestParseAssignment(t *testing.T) {
	got, c, err := ParseAssignment(cursorFor(t, "color = blue"))
	require.NoError(t, err)
	assertNoDiff(t, asg("color", "blue"), got)
	assert.True(t, c.AtEnd())
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, got.Pos)
}

func TestParseAssignmentErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"color blue", "'='"},
		{"= blue", "identifier"},
		{"color = ;", "identifier"},
		{"color =", "identifier"},
	}
	for _, tt := range tests {
		_, _, err := ParseAssignment(cursorFor(t, tt.input))
		require.Error(t, err, "input: %s", tt.input)
		var se *SyntaxError
		require.ErrorAs(t, err, &se, "input: %s", tt.input)
		assert.Equal(t, tt.expected, se.Expected, "input: %s", tt.input)
		assert.Equal(t, "assignment", se.Construct, "input: %s", tt.input)
	}
}

func TestParseAttributeListGroups(t *testing.T) {
	got, c, err := ParseAttributeList(cursorFor(t, "[color = blue, height = s10][length = long] rest"))
	require.NoError(t, err)
	want := AttributeList{
		{asg("color", "blue"), asg("height", "s10")},
		{asg("length", "long")},
	}
	assertNoDiff(t, want, got)
	assert.Equal(t, "rest", c.Peek().Literal)
}

func TestParseAttributeListSeparators(t *testing.T) {
	tests := []string{
		"[a=1, b=2]",
		"[a=1; b=2]",
		"[a=1 b=2]",
		"[a=1, b=2,]",
		"[a=1; b=2;]",
	}
	want := AttributeList{{asg("a", "1"), asg("b", "2")}}
	for _, src := range tests {
		got, c, err := ParseAttributeList(cursorFor(t, src))
		require.NoError(t, err, "input: %s", src)
		assertNoDiff(t, want, got)
		assert.True(t, c.AtEnd(), "input: %s", src)
	}
}

func TestParseAttributeListEmptyBrackets(t *testing.T) {
	got, _, err := ParseAttributeList(cursorFor(t, "[]"))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got, 1)
	assert.Empty(t, got[0])

	got, _, err = ParseAttributeList(cursorFor(t, "[][]"))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParseAttributeListRequiresBracket(t *testing.T) {
	c := cursorFor(t, "a=1")
	_, next, err := ParseAttributeList(c)
	require.Error(t, err)
	assert.Equal(t, c.Index(), next.Index())
}

func TestParseAttributeListUnclosed(t *testing.T) {
	_, _, err := ParseAttributeList(cursorFor(t, "[a=1"))
	require.Error(t, err)
	var pe *PrematureEndError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "attribute list", pe.Construct)
}

func TestParseNode(t *testing.T) {
	tests := []struct {
		input string
		want  *Node
	}{
		{"A", &Node{ID: id("A")}},
		{"nd_1 [label = \"Node 1\"]", &Node{ID: id("nd_1"), Attributes: AttributeList{{
			{Key: id("label"), Value: qid("Node 1")},
		}}}},
		{"A [x=1][y=2]", &Node{ID: id("A"), Attributes: AttributeList{
			{asg("x", "1")},
			{asg("y", "2")},
		}}},
		{"A []", &Node{ID: id("A"), Attributes: AttributeList{{}}}},
	}
	for _, tt := range tests {
		got, c, err := ParseNode(cursorFor(t, tt.input))
		require.NoError(t, err, "input: %s", tt.input)
		assertNoDiff(t, tt.want, got)
		assert.True(t, c.AtEnd(), "input: %s", tt.input)
	}
}

func TestParseNodeWithoutAttributesKeepsNextToken(t *testing.T) {
	got, c, err := ParseNode(cursorFor(t, "A ; B"))
	require.NoError(t, err)
	assert.Nil(t, got.Attributes)
	assert.Equal(t, TokenSemicolon, c.Peek().Kind)
}

func TestParseNodeMalformedAttributesAreAbsent(t *testing.T) {
	got, c, err := ParseNode(cursorFor(t, "A [x=]"))
	require.NoError(t, err)
	assert.Nil(t, got.Attributes)
	assert.Equal(t, TokenLBracket, c.Peek().Kind)
}

func TestParseNodeRequiresID(t *testing.T) {
	_, _, err := ParseNode(cursorFor(t, "[x=1]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected identifier in node statement")
}

func TestParseEdgeChain(t *testing.T) {
	got, c, err := ParseEdge[Directed](cursorFor(t, "A -> B -> C;"))
	require.NoError(t, err)
	want := &Edge[Directed]{Endpoints: []Endpoint[Directed]{
		nodeEP[Directed]("A"), nodeEP[Directed]("B"), nodeEP[Directed]("C"),
	}}
	assertNoDiff(t, want, got)
	assert.Equal(t, TokenSemicolon, c.Peek().Kind)

	pairs := got.Pairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, "A", pairs[0].From.NodeID.Text)
	assert.Equal(t, "B", pairs[0].To.NodeID.Text)
	assert.Equal(t, "B", pairs[1].From.NodeID.Text)
	assert.Equal(t, "C", pairs[1].To.NodeID.Text)
}

func TestParseEdgeUndirected(t *testing.T) {
	got, _, err := ParseEdge[Undirected](cursorFor(t, "a -- b [weight=2]"))
	require.NoError(t, err)
	want := &Edge[Undirected]{
		Endpoints:  []Endpoint[Undirected]{nodeEP[Undirected]("a"), nodeEP[Undirected]("b")},
		Attributes: AttributeList{{asg("weight", "2")}},
	}
	assertNoDiff(t, want, got)
}

func TestParseEdgeSubgraphEndpoints(t *testing.T) {
	got, c, err := ParseEdge[Directed](cursorFor(t, "A -> {B C} -> subgraph s { D }"))
	require.NoError(t, err)
	assert.True(t, c.AtEnd())
	require.Len(t, got.Endpoints, 3)

	assert.False(t, got.Endpoints[0].IsSubgraph())
	mid := got.Endpoints[1].Subgraph
	require.NotNil(t, mid)
	assert.Nil(t, mid.ID)
	assert.False(t, mid.Keyword)
	assertNoDiff(t, []Statement[Directed]{
		nodeStmt[Directed]("B", nil),
		nodeStmt[Directed]("C", nil),
	}, mid.Statements)

	last := got.Endpoints[2].Subgraph
	require.NotNil(t, last)
	assert.Equal(t, "s", last.Name())
	assert.True(t, last.Keyword)
}

func TestParseEdgeWrongOperator(t *testing.T) {
	_, _, err := ParseEdge[Undirected](cursorFor(t, "a -> b"))
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, TokenArrow, se.Got.Kind)
	assert.Equal(t, "'--'", se.Expected)
	assert.Contains(t, err.Error(), "'->' is not allowed in an undirected graph")

	_, _, err = ParseEdge[Directed](cursorFor(t, "a -> b -- c"))
	require.Error(t, err)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, TokenDash, se.Got.Kind)
	assert.Equal(t, 8, se.Pos.Column)
}

func TestParseEdgeDanglingOperator(t *testing.T) {
	_, _, err := ParseEdge[Directed](cursorFor(t, "a ->"))
	require.Error(t, err)
	assert.IsType(t, &PrematureEndError{}, err)
}

func TestParseEdgeRequiresOperator(t *testing.T) {
	_, _, err := ParseEdge[Directed](cursorFor(t, "a b"))
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)
}

func TestParseSubgraph(t *testing.T) {
	got, c, err := ParseSubgraph[Directed](cursorFor(t, "subgraph cluster_0 { a; b -> c; label=x }"))
	require.NoError(t, err)
	assert.True(t, c.AtEnd())
	assert.Equal(t, "cluster_0", got.Name())
	want := []Statement[Directed]{
		nodeStmt[Directed]("a", nil),
		edgeStmt[Directed](nil, nodeEP[Directed]("b"), nodeEP[Directed]("c")),
		{Kind: StmtAssignment, Assignment: &Assignment{Key: id("label"), Value: id("x")}},
	}
	assertNoDiff(t, want, got.Statements)
}

func TestParseSubgraphForms(t *testing.T) {
	tests := []struct {
		input   string
		name    string
		keyword bool
	}{
		{"subgraph s {}", "s", true},
		{"subgraph {}", "", true},
		{"{}", "", false},
	}
	for _, tt := range tests {
		got, _, err := ParseSubgraph[Undirected](cursorFor(t, tt.input))
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.name, got.Name(), "input: %s", tt.input)
		assert.Equal(t, tt.keyword, got.Keyword, "input: %s", tt.input)
		assert.Empty(t, got.Statements, "input: %s", tt.input)
	}
}

func TestParseSubgraphUnclosed(t *testing.T) {
	_, _, err := ParseSubgraph[Directed](cursorFor(t, "subgraph s { a"))
	require.Error(t, err)
	var pe *PrematureEndError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "'}'", pe.Expected)
	assert.Equal(t, "subgraph", pe.Construct)
}

func TestParseStatementDispatch(t *testing.T) {
	tests := []struct {
		input string
		kind  StatementKind
	}{
		{"a", StmtNode},
		{"a [x=1]", StmtNode},
		{"a -> b", StmtEdge},
		{"{a} -> b", StmtEdge},
		{"subgraph s {a} -> b", StmtEdge},
		{"subgraph s {a}", StmtSubgraph},
		{"{a b}", StmtSubgraph},
		{"rankdir=LR", StmtAssignment},
		{`"quoted key" = v`, StmtAssignment},
		{"[x=1]", StmtAttr},
		{"graph [x=1]", StmtAttr},
		{"node [shape=box]", StmtAttr},
		{"edge [color=red]", StmtAttr},
	}
	for _, tt := range tests {
		got, c, err := ParseStatement[Directed](cursorFor(t, tt.input))
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.kind, got.Kind, "input: %s", tt.input)
		assert.True(t, c.AtEnd(), "input: %s", tt.input)
	}
}

func TestParseAttrStmtTargets(t *testing.T) {
	tests := []struct {
		input  string
		target AttrTarget
	}{
		{"[x=1]", TargetNone},
		{"graph [x=1]", TargetGraph},
		{"node [x=1]", TargetNode},
		{"EDGE [x=1]", TargetEdge},
	}
	for _, tt := range tests {
		got, _, err := ParseAttrStmt(cursorFor(t, tt.input))
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.target, got.Target, "input: %s", tt.input)
		assertNoDiff(t, AttributeList{{asg("x", "1")}}, got.Attributes)
	}

	_, _, err := ParseAttrStmt(cursorFor(t, "node"))
	require.Error(t, err)
}

func TestParseStatementRejectsJunk(t *testing.T) {
	for _, src := range []string{"=", "]", "-> a", "strict"} {
		_, _, err := ParseStatement[Directed](cursorFor(t, src))
		require.Error(t, err, "input: %s", src)
		assert.IsType(t, &SyntaxError{}, err, "input: %s", src)
	}
}

func TestParseGraph(t *testing.T) {
	got, c, err := ParseGraph[Directed](cursorFor(t, `strict digraph "G 1" { a -> b }`))
	require.NoError(t, err)
	assert.True(t, c.AtEnd())
	want := &Graph[Directed]{
		ID:     qid("G 1"),
		Strict: true,
		Statements: []Statement[Directed]{
			edgeStmt[Directed](nil, nodeEP[Directed]("a"), nodeEP[Directed]("b")),
		},
	}
	assertNoDiff(t, want, got)
	assert.Equal(t, KindDirected, got.Kind())
}

func TestParseGraphIgnoresTrailingInput(t *testing.T) {
	got, c, err := ParseGraph[Undirected](cursorFor(t, "graph G {} graph H {}"))
	require.NoError(t, err)
	assert.Equal(t, "G", got.ID.Text)
	assert.Equal(t, TokenGraph, c.Peek().Kind)
}

func TestParseGraphKindMismatch(t *testing.T) {
	_, _, err := ParseGraph[Undirected](cursorFor(t, "digraph G {}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document is a digraph, parsed as a graph")

	_, _, err = ParseGraph[Directed](cursorFor(t, "strict graph G {}"))
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, TokenGraph, se.Got.Kind)
}

func TestParseGraphErrors(t *testing.T) {
	tests := []struct {
		input     string
		construct string
	}{
		{"digraph {}", "graph"},
		{"digraph G a", "graph"},
		{"digraph G { a -> }", "edge"},
		{"digraph G { a [x=1 }", "attribute list"},
		{"digraph G { = }", "statement list"},
	}
	for _, tt := range tests {
		_, _, err := ParseGraph[Directed](cursorFor(t, tt.input))
		require.Error(t, err, "input: %s", tt.input)
		var se *SyntaxError
		require.ErrorAs(t, err, &se, "input: %s", tt.input)
		assert.Equal(t, tt.construct, se.Construct, "input: %s", tt.input)
	}
}

func TestParseGraphUnclosed(t *testing.T) {
	_, _, err := ParseGraph[Directed](cursorFor(t, "digraph G { a -> b"))
	require.Error(t, err)
	var pe *PrematureEndError
	require.ErrorAs(t, err, &pe)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, TokenEOF, se.Got.Kind)
}

func TestParseEdgeChainVersusSeparateEdges(t *testing.T) {
	chained, err := ParseAs[Directed]([]byte("digraph g { A -> B -> C; }"))
	require.NoError(t, err)
	require.Len(t, chained.Statements, 1)
	assert.Len(t, chained.Statements[0].Edge.Endpoints, 3)

	separate, err := ParseAs[Directed]([]byte("digraph g { A -> B; B -> C; }"))
	require.NoError(t, err)
	require.Len(t, separate.Statements, 2)
	for _, st := range separate.Statements {
		require.Equal(t, StmtEdge, st.Kind)
		assert.Len(t, st.Edge.Endpoints, 2)
	}
}

func TestParseNestedSubgraphOwnership(t *testing.T) {
	got, err := ParseAs[Directed]([]byte("digraph g { subgraph s { a; b } a -> c }"))
	require.NoError(t, err)
	want := []Statement[Directed]{
		{Kind: StmtSubgraph, Subgraph: &Subgraph[Directed]{
			ID:      &ID{Text: "s"},
			Keyword: true,
			Statements: []Statement[Directed]{
				nodeStmt[Directed]("a", nil),
				nodeStmt[Directed]("b", nil),
			},
		}},
		edgeStmt[Directed](nil, nodeEP[Directed]("a"), nodeEP[Directed]("c")),
	}
	assertNoDiff(t, want, got.Statements)
}

func TestParseStatementOrderPreserved(t *testing.T) {
	src := `graph g {
		node [shape=box]
		a
		edge [color=red];
		a -- b
		label = "g"
		{ rank=same; b c }
		[fontsize=10]
	}`
	got, err := ParseAs[Undirected]([]byte(src))
	require.NoError(t, err)
	var kinds []StatementKind
	for _, st := range got.Statements {
		kinds = append(kinds, st.Kind)
	}
	assert.Equal(t, []StatementKind{
		StmtAttr, StmtNode, StmtAttr, StmtEdge, StmtAssignment, StmtSubgraph, StmtAttr,
	}, kinds)
}

func TestWalkVisitsNestedEdges(t *testing.T) {
	src := `digraph g {
		a -> b
		subgraph s { c -> d; subgraph t { e -> f } }
		{ g -> h } -> i
	}`
	got, err := ParseAs[Directed]([]byte(src))
	require.NoError(t, err)
	edges := got.Edges()
	assert.Len(t, edges, 5)
}

func TestStatementPos(t *testing.T) {
	got, err := ParseAs[Directed]([]byte("digraph g {\n  a\n  b -> c\n}"))
	require.NoError(t, err)
	require.Len(t, got.Statements, 2)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 14}, got.Statements[0].Pos())
	assert.Equal(t, 3, got.Statements[1].Pos().Line)
}
