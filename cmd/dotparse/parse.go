package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eras/dotfile-parser/dotparser"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Print the syntax tree of a DOT document",
		Long:  "Parse a DOT document and print its syntax tree as yaml, json or an indented tree.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, doc, err := a.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format := a.v.GetString("parse.output"); format != "tree" {
				return encode(out, format, doc)
			}
			if doc.Directed != nil {
				writeTree(out, doc.Directed)
			} else {
				writeTree(out, doc.Undirected)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "yaml", "Output format: yaml, json or tree")
	_ = a.v.BindPFlag("parse.output", cmd.Flags().Lookup("output"))
	return cmd
}

type treeWriter struct {
	w     io.Writer
	depth int
}

func (t *treeWriter) line(pos dotparser.Position, format string, args ...any) {
	fmt.Fprintf(t.w, "%s%s  @%d:%d\n", strings.Repeat("  ", t.depth), fmt.Sprintf(format, args...), pos.Line, pos.Column)
}

// writeTree prints one line per statement, children indented under their
// subgraph.
func writeTree[K dotparser.Kind](w io.Writer, g *dotparser.Graph[K]) {
	t := &treeWriter{w: w}
	header := dotparser.KindOf[K]().String() + " " + dotparser.FormatID(g.ID)
	if g.Strict {
		header = "strict " + header
	}
	t.line(g.Pos, "%s", header)
	t.depth++
	writeStatements(t, g.Statements)
}

func writeStatements[K dotparser.Kind](t *treeWriter, stmts []dotparser.Statement[K]) {
	for _, st := range stmts {
		switch st.Kind {
		case dotparser.StmtNode:
			t.line(st.Pos(), "node %s%s", dotparser.FormatID(st.Node.ID), attrSuffix(st.Node.Attributes))

		case dotparser.StmtEdge:
			op := " " + dotparser.KindOf[K]().EdgeOp() + " "
			parts := make([]string, len(st.Edge.Endpoints))
			for i, ep := range st.Edge.Endpoints {
				if ep.Subgraph != nil {
					parts[i] = subgraphLabel(ep.Subgraph)
				} else {
					parts[i] = dotparser.FormatID(*ep.NodeID)
				}
			}
			t.line(st.Pos(), "edge %s%s", strings.Join(parts, op), attrSuffix(st.Edge.Attributes))
			t.depth++
			for _, ep := range st.Edge.Endpoints {
				if ep.Subgraph != nil {
					writeSubgraph(t, ep.Subgraph)
				}
			}
			t.depth--

		case dotparser.StmtSubgraph:
			writeSubgraph(t, st.Subgraph)

		case dotparser.StmtAssignment:
			t.line(st.Pos(), "assign %s=%s",
				dotparser.FormatID(st.Assignment.Key), dotparser.FormatID(st.Assignment.Value))

		case dotparser.StmtAttr:
			target := st.Attr.Target.String()
			if st.Attr.Target == dotparser.TargetNone {
				target = "graph"
			}
			t.line(st.Pos(), "attr %s %s", target, dotparser.FormatAttributes(st.Attr.Attributes))
		}
	}
}

func writeSubgraph[K dotparser.Kind](t *treeWriter, sub *dotparser.Subgraph[K]) {
	t.line(sub.Pos, "%s", subgraphLabel(sub))
	t.depth++
	writeStatements(t, sub.Statements)
	t.depth--
}

func subgraphLabel[K dotparser.Kind](sub *dotparser.Subgraph[K]) string {
	if sub.ID == nil {
		return "subgraph {}"
	}
	return "subgraph " + dotparser.FormatID(*sub.ID)
}

func attrSuffix(attrs dotparser.AttributeList) string {
	if attrs == nil {
		return ""
	}
	return " " + dotparser.FormatAttributes(attrs)
}
