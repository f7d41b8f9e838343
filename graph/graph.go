// Package graph materializes a dotparser AST into a queryable graph: nodes,
// edges (edge chains expanded into pairs), subgraphs and typed attribute
// maps, with node/edge default attributes applied per scope the way Graphviz
// does.
package graph

import "github.com/eras/dotfile-parser/dotparser"

// Attr is a key=value pair from an attribute list or assignment.
type Attr struct {
	Key   string
	Value Value
	Pos   dotparser.Position
}

// Node represents a node of the materialized graph.
type Node struct {
	ID        string
	Attrs     []Attr
	Subgraphs []string // names of the subgraphs the node belongs to, outermost first
	Declared  bool     // named by a node statement, not only by edges
	Pos       dotparser.Position
}

// Attr looks up a node attribute by key. Returns the value and true if found.
func (n *Node) Attr(key string) (Value, bool) {
	return lookup(n.Attrs, key)
}

// Edge represents a single edge from one node to another.
type Edge struct {
	From  string
	To    string
	Attrs []Attr
	Pos   dotparser.Position

	// Duplicates counts later statements merged into this edge in a strict graph.
	Duplicates int
}

// Attr looks up an edge attribute by key. Returns the value and true if found.
func (e *Edge) Attr(key string) (Value, bool) {
	return lookup(e.Attrs, key)
}

// Subgraph is a named or anonymous subgraph. Anonymous subgraphs have an
// empty ID.
type Subgraph struct {
	ID     string
	Parent string
	Attrs  []Attr
	Nodes  []string // member node IDs in first-seen order
	Pos    dotparser.Position
}

// Attr looks up a subgraph attribute by key.
func (s *Subgraph) Attr(key string) (Value, bool) {
	return lookup(s.Attrs, key)
}

// Redefinition records a key bound more than once in one statement's attribute list.
type Redefinition struct {
	Key    string
	Owner  string // node ID, "a -> b" edge text, or "graph"
	First  dotparser.Position
	Second dotparser.Position
}

// EmptyEndpoint records a subgraph edge endpoint with no member nodes. Every
// edge segment touching it expands to nothing.
type EmptyEndpoint struct {
	Owner string // "a -> {}" edge text
	Pos   dotparser.Position
}

// Graph is the complete materialized representation of a DOT graph.
type Graph struct {
	Name       string
	Directed   bool
	Strict     bool
	GraphAttrs []Attr      // from graph [...], bare [...] and top-level key=value
	Nodes      []*Node     // all nodes in first-seen order
	Edges      []*Edge     // all edges (chains expanded)
	Subgraphs  []*Subgraph // in first-seen order

	Redefinitions  []Redefinition
	EmptyEndpoints []EmptyEndpoint

	nodeIndex     map[string]*Node
	subgraphIndex map[string]*Subgraph
}

// NodeByID returns the node with the given ID, or nil if not found.
func (g *Graph) NodeByID(id string) *Node {
	return g.nodeIndex[id]
}

// SubgraphByID returns the named subgraph, or nil if not found.
func (g *Graph) SubgraphByID(id string) *Subgraph {
	return g.subgraphIndex[id]
}

// EdgesFrom returns all edges originating from the given node ID.
func (g *Graph) EdgesFrom(id string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		if e.From == id {
			result = append(result, e)
		}
	}
	return result
}

// EdgesTo returns all edges targeting the given node ID.
func (g *Graph) EdgesTo(id string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		if e.To == id {
			result = append(result, e)
		}
	}
	return result
}

// Neighbors returns the IDs adjacent to id: successors in a directed graph,
// both directions in an undirected one. Each neighbor is listed once.
func (g *Graph) Neighbors(id string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, e := range g.Edges {
		switch {
		case e.From == id:
			add(e.To)
		case !g.Directed && e.To == id:
			add(e.From)
		}
	}
	return out
}

// GraphAttr looks up a graph-level attribute by key. Returns the value and true if found.
func (g *Graph) GraphAttr(key string) (Value, bool) {
	return lookup(g.GraphAttrs, key)
}

func lookup(attrs []Attr, key string) (Value, bool) {
	for i := len(attrs) - 1; i >= 0; i-- {
		if attrs[i].Key == key {
			return attrs[i].Value, true
		}
	}
	return Value{}, false
}
