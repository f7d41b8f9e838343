package graph

import (
	"strings"

	"github.com/eras/dotfile-parser/dotparser"
)

// Build walks the statements of ast in order and produces the materialized
// graph. Later attribute bindings override earlier ones: within one
// statement, across bracket groups, and across statements naming the same
// node.
func Build[K dotparser.Kind](ast *dotparser.Graph[K]) *Graph {
	g := &Graph{
		Name:          ast.ID.Text,
		Directed:      dotparser.KindOf[K]() == dotparser.KindDirected,
		Strict:        ast.Strict,
		nodeIndex:     make(map[string]*Node),
		subgraphIndex: make(map[string]*Subgraph),
	}
	b := &builder[K]{
		g:       g,
		edges:   make(map[edgeKey]*Edge),
		members: make(map[*Subgraph]map[string]bool),
	}
	b.walk(ast.Statements, &scope{})
	return g
}

// FromDocument builds whichever graph d holds.
func FromDocument(d *dotparser.Document) *Graph {
	if d.Directed != nil {
		return Build(d.Directed)
	}
	return Build(d.Undirected)
}

// scope holds the defaults in effect for one graph or subgraph body.
type scope struct {
	parent       *scope
	sub          *Subgraph // nil for the root graph
	nodeDefaults []Attr
	edgeDefaults []Attr
}

func (s *scope) child(sub *Subgraph) *scope {
	return &scope{
		parent:       s,
		sub:          sub,
		nodeDefaults: copyAttrs(s.nodeDefaults),
		edgeDefaults: copyAttrs(s.edgeDefaults),
	}
}

type edgeKey struct{ from, to string }

type builder[K dotparser.Kind] struct {
	g       *Graph
	edges   map[edgeKey]*Edge // strict graphs only
	members map[*Subgraph]map[string]bool
}

func (b *builder[K]) walk(stmts []dotparser.Statement[K], sc *scope) {
	for _, st := range stmts {
		switch st.Kind {
		case dotparser.StmtNode:
			n := b.ensureNode(st.Node.ID, sc)
			n.Declared = true
			n.Attrs = mergeAttrs(n.Attrs, b.attrs(st.Node.Attributes, n.ID))

		case dotparser.StmtEdge:
			b.addEdge(st.Edge, sc)

		case dotparser.StmtSubgraph:
			b.subgraph(st.Subgraph, sc)

		case dotparser.StmtAssignment:
			b.setGraphAttrs(sc, []Attr{toAttr(*st.Assignment)})

		case dotparser.StmtAttr:
			switch st.Attr.Target {
			case dotparser.TargetNode:
				sc.nodeDefaults = mergeAttrs(sc.nodeDefaults, b.attrs(st.Attr.Attributes, "node"))
			case dotparser.TargetEdge:
				sc.edgeDefaults = mergeAttrs(sc.edgeDefaults, b.attrs(st.Attr.Attributes, "edge"))
			default:
				b.setGraphAttrs(sc, b.attrs(st.Attr.Attributes, "graph"))
			}
		}
	}
}

func (b *builder[K]) setGraphAttrs(sc *scope, attrs []Attr) {
	if sc.sub == nil {
		b.g.GraphAttrs = mergeAttrs(b.g.GraphAttrs, attrs)
		return
	}
	sc.sub.Attrs = mergeAttrs(sc.sub.Attrs, attrs)
}

// ensureNode registers a node if it does not already exist and records its
// membership in every enclosing subgraph.
func (b *builder[K]) ensureNode(id dotparser.ID, sc *scope) *Node {
	n, ok := b.g.nodeIndex[id.Text]
	if !ok {
		n = &Node{
			ID:    id.Text,
			Attrs: copyAttrs(sc.nodeDefaults),
			Pos:   id.Pos,
		}
		b.g.nodeIndex[id.Text] = n
		b.g.Nodes = append(b.g.Nodes, n)
	}

	var chain []*Subgraph
	for s := sc; s != nil; s = s.parent {
		if s.sub != nil {
			chain = append(chain, s.sub)
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		sub := chain[i]
		if b.members[sub][n.ID] {
			continue
		}
		b.members[sub][n.ID] = true
		sub.Nodes = append(sub.Nodes, n.ID)
		if sub.ID != "" && !contains(n.Subgraphs, sub.ID) {
			n.Subgraphs = append(n.Subgraphs, sub.ID)
		}
	}
	return n
}

// subgraph walks a subgraph body in a child scope and returns its member nodes.
func (b *builder[K]) subgraph(ast *dotparser.Subgraph[K], sc *scope) []string {
	name := ast.Name()
	rec := b.g.subgraphIndex[name]
	if name == "" || rec == nil {
		rec = &Subgraph{ID: name, Pos: ast.Pos}
		if sc.sub != nil {
			rec.Parent = sc.sub.ID
		}
		b.g.Subgraphs = append(b.g.Subgraphs, rec)
		b.members[rec] = make(map[string]bool)
		if name != "" {
			b.g.subgraphIndex[name] = rec
		}
	}
	b.walk(ast.Statements, sc.child(rec))
	return append([]string(nil), rec.Nodes...)
}

// addEdge expands an edge chain into one edge per adjacent pair. A subgraph
// endpoint stands for every node in it.
func (b *builder[K]) addEdge(e *dotparser.Edge[K], sc *scope) {
	owner := edgeOwner(e)
	merged := mergeAttrs(sc.edgeDefaults, b.attrs(e.Attributes, owner))

	ends := make([][]string, len(e.Endpoints))
	for i, ep := range e.Endpoints {
		if ep.Subgraph != nil {
			ends[i] = b.subgraph(ep.Subgraph, sc)
			if len(ends[i]) == 0 {
				b.g.EmptyEndpoints = append(b.g.EmptyEndpoints, EmptyEndpoint{Owner: owner, Pos: ep.Pos()})
			}
			continue
		}
		ends[i] = []string{b.ensureNode(*ep.NodeID, sc).ID}
	}

	for i := 0; i+1 < len(ends); i++ {
		pos := e.Endpoints[i].Pos()
		for _, from := range ends[i] {
			for _, to := range ends[i+1] {
				b.connect(from, to, merged, pos)
			}
		}
	}
}

func (b *builder[K]) connect(from, to string, attrs []Attr, pos dotparser.Position) {
	key := edgeKey{from, to}
	if !b.g.Directed && key.from > key.to {
		key.from, key.to = key.to, key.from
	}
	if b.g.Strict {
		if existing, ok := b.edges[key]; ok {
			existing.Attrs = mergeAttrs(existing.Attrs, attrs)
			existing.Duplicates++
			return
		}
	}

	edge := &Edge{
		From:  from,
		To:    to,
		Attrs: copyAttrs(attrs),
		Pos:   pos,
	}
	b.g.Edges = append(b.g.Edges, edge)
	if b.g.Strict {
		b.edges[key] = edge
	}
}

// attrs flattens an attribute list into bindings, collapsing repeated keys
// to their last value and recording each repeat.
func (b *builder[K]) attrs(list dotparser.AttributeList, owner string) []Attr {
	var out []Attr
	index := make(map[string]int)
	for _, asg := range list.Assignments() {
		a := toAttr(asg)
		if i, ok := index[a.Key]; ok {
			b.g.Redefinitions = append(b.g.Redefinitions, Redefinition{
				Key:    a.Key,
				Owner:  owner,
				First:  out[i].Pos,
				Second: a.Pos,
			})
			out[i].Value = a.Value
			continue
		}
		index[a.Key] = len(out)
		out = append(out, a)
	}
	return out
}

func toAttr(a dotparser.Assignment) Attr {
	return Attr{Key: a.Key.Text, Value: ParseValue(a.Value), Pos: a.Pos}
}

func edgeOwner[K dotparser.Kind](e *dotparser.Edge[K]) string {
	parts := make([]string, len(e.Endpoints))
	for i, ep := range e.Endpoints {
		if ep.Subgraph != nil {
			parts[i] = "{" + ep.Subgraph.Name() + "}"
		} else {
			parts[i] = ep.NodeID.Text
		}
	}
	return strings.Join(parts, " "+dotparser.KindOf[K]().EdgeOp()+" ")
}

// mergeAttrs produces a final attribute list by starting with defaults and
// overlaying explicit attrs. Explicit attrs with the same key replace defaults.
func mergeAttrs(defaults, explicit []Attr) []Attr {
	if len(defaults) == 0 {
		return copyAttrs(explicit)
	}
	if len(explicit) == 0 {
		return copyAttrs(defaults)
	}

	overridden := make(map[string]bool, len(explicit))
	for _, a := range explicit {
		overridden[a.Key] = true
	}

	result := make([]Attr, 0, len(defaults)+len(explicit))
	for _, a := range defaults {
		if !overridden[a.Key] {
			result = append(result, a)
		}
	}
	result = append(result, explicit...)
	return result
}

func copyAttrs(attrs []Attr) []Attr {
	if attrs == nil {
		return nil
	}
	cp := make([]Attr, len(attrs))
	copy(cp, attrs)
	return cp
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
