package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eras/dotfile-parser/graph"
)

func newInspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file|->",
		Short: "Summarize the graph a DOT document describes",
		Long:  "Build the graph with default attributes applied and print its nodes, edges and subgraphs.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, doc, err := a.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			g := graph.FromDocument(doc)
			out := cmd.OutOrStdout()
			if format := a.v.GetString("inspect.output"); format != "text" {
				return encode(out, format, g)
			}
			return writeSummary(out, g)
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format: text, yaml or json")
	_ = a.v.BindPFlag("inspect.output", cmd.Flags().Lookup("output"))
	return cmd
}

func writeSummary(w io.Writer, g *graph.Graph) error {
	kind, op := "graph", "--"
	if g.Directed {
		kind, op = "digraph", "->"
	}
	if g.Strict {
		kind = "strict " + kind
	}
	fmt.Fprintf(w, "%s %s\n", kind, g.Name)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(g.GraphAttrs) > 0 {
		fmt.Fprintf(tw, "\ngraph attributes:\n")
		for _, a := range g.GraphAttrs {
			fmt.Fprintf(tw, "  %s\t%s\n", a.Key, a.Value)
		}
	}

	fmt.Fprintf(tw, "\nnodes (%d):\n", len(g.Nodes))
	for _, n := range g.Nodes {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", n.ID, formatAttrs(n.Attrs), strings.Join(n.Subgraphs, ","))
	}

	fmt.Fprintf(tw, "\nedges (%d):\n", len(g.Edges))
	for _, e := range g.Edges {
		fmt.Fprintf(tw, "  %s %s %s\t%s\t\n", e.From, op, e.To, formatAttrs(e.Attrs))
	}

	if len(g.Subgraphs) > 0 {
		fmt.Fprintf(tw, "\nsubgraphs (%d):\n", len(g.Subgraphs))
		for _, s := range g.Subgraphs {
			name := s.ID
			if name == "" {
				name = "(anonymous)"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", name, formatAttrs(s.Attrs), strings.Join(s.Nodes, ","))
		}
	}
	return tw.Flush()
}

func formatAttrs(attrs []graph.Attr) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = a.Key + "=" + a.Value.String()
	}
	return strings.Join(parts, " ")
}
