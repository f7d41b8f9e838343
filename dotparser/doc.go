// Package dotparser parses the Graphviz DOT language into a typed AST.
//
// The parser is a hand-rolled recursive-descent parser with three layers:
//
//   - Lexer: converts raw bytes into tokens, stripping comments and
//     whitespace. Keywords are case-insensitive; identifiers may be bare,
//     numerals, "quoted" or <html>.
//   - Builders: every AST node has a ParseFunc that consumes a prefix of the
//     token sequence from a Cursor and returns the value with the advanced
//     Cursor. Cursors are values, so optional elements are parsed
//     speculatively and simply discarded on failure.
//   - AST types: Graph, Subgraph, Statement, Node, Edge, Assignment,
//     AttributeList.
//
// Graph, Subgraph, Statement and Edge are parameterized by a Kind, Directed
// or Undirected. The kind fixes the introducer keyword (digraph or graph) and
// the edge operator (-> or --) for the whole tree, so a Graph[Directed] can
// never contain an undirected edge.
//
// Usage:
//
//	doc, err := dotparser.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if doc.Directed != nil {
//	    fmt.Println(doc.Directed.ID, len(doc.Directed.Statements))
//	}
//
// When the kind is known up front, ParseAs[dotparser.Directed](src) returns
// the typed graph directly and rejects undirected input.
package dotparser
