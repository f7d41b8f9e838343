package graph

import (
	"fmt"
	"strings"

	"github.com/eras/dotfile-parser/dotparser"
)

// Severity ranks a Diagnostic. Lower values are more serious.
type Severity int

const (
	Error   Severity = iota // the graph is structurally unusable
	Warning                 // usable, but probably not what the author meant
	Info
)

var severityNames = [...]string{Error: "error", Warning: "warning", Info: "info"}

func (s Severity) String() string {
	if s >= 0 && int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Diagnostic is one finding reported by a LintRule. Only Rule, Severity and
// Message are always set.
type Diagnostic struct {
	Rule     string
	Severity Severity
	Message  string
	NodeID   string
	Edge     *EdgeRef
	Fix      string
	Pos      dotparser.Position
}

// EdgeRef names an edge by its endpoints.
type EdgeRef struct {
	From string
	To   string
}

func (d Diagnostic) String() string {
	parts := []string{fmt.Sprintf("%s %s: %s", d.Severity, d.Rule, d.Message)}
	switch {
	case d.Edge != nil:
		parts = append(parts, fmt.Sprintf("edge %s/%s", d.Edge.From, d.Edge.To))
	case d.NodeID != "":
		parts = append(parts, "node "+d.NodeID)
	}
	if d.Fix != "" {
		parts = append(parts, "fix: "+d.Fix)
	}
	return strings.Join(parts, "; ")
}

// LintRule inspects a built graph and reports what it finds.
type LintRule interface {
	Name() string
	Apply(g *Graph) []Diagnostic
}

// ValidationError carries the error-severity diagnostics of a failed
// ValidateOrError call.
type ValidationError struct {
	Diagnostics []Diagnostic
}

func (e *ValidationError) Error() string {
	if len(e.Diagnostics) == 1 {
		return "graph is invalid: " + e.Diagnostics[0].String()
	}
	lines := make([]string, 0, len(e.Diagnostics)+1)
	lines = append(lines, fmt.Sprintf("graph is invalid: %d errors", len(e.Diagnostics)))
	for _, d := range e.Diagnostics {
		lines = append(lines, "\t"+d.String())
	}
	return strings.Join(lines, "\n")
}

// Validate applies the built-in rules followed by extra, in order, and
// returns every diagnostic they produce.
func Validate(g *Graph, extra ...LintRule) []Diagnostic {
	var out []Diagnostic
	for _, rule := range append(builtinRules(), extra...) {
		out = append(out, rule.Apply(g)...)
	}
	return out
}

// ValidateOrError is Validate plus a *ValidationError when any diagnostic has
// Error severity. The full diagnostic list is returned either way.
func ValidateOrError(g *Graph, extra ...LintRule) ([]Diagnostic, error) {
	all := Validate(g, extra...)
	failed := &ValidationError{}
	for _, d := range all {
		if d.Severity == Error {
			failed.Diagnostics = append(failed.Diagnostics, d)
		}
	}
	if len(failed.Diagnostics) == 0 {
		return all, nil
	}
	return all, failed
}

// rule adapts a check function to LintRule, stamping the rule name and
// severity onto everything it reports.
type rule struct {
	name     string
	severity Severity
	check    func(g *Graph, report func(Diagnostic))
}

func (r rule) Name() string { return r.name }

func (r rule) Apply(g *Graph) []Diagnostic {
	var out []Diagnostic
	r.check(g, func(d Diagnostic) {
		d.Rule, d.Severity = r.name, r.severity
		out = append(out, d)
	})
	return out
}

func builtinRules() []LintRule {
	return []LintRule{
		rule{"duplicate_attribute", Warning, checkRedefinitions},
		rule{"strict_multi_edge", Warning, checkStrictMultiEdges},
		rule{"undeclared_edge_node", Info, checkUndeclaredNodes},
		rule{"isolated_node", Info, checkIsolatedNodes},
		rule{"self_loop", Info, checkSelfLoops},
		rule{"empty_edge_endpoint", Error, checkEmptyEndpoints},
	}
}

// A key bound twice in one statement; the later value wins.
func checkRedefinitions(g *Graph, report func(Diagnostic)) {
	for _, r := range g.Redefinitions {
		report(Diagnostic{
			Message: fmt.Sprintf("%q is set more than once on %s (first at line %d); the last value wins",
				r.Key, r.Owner, r.First.Line),
			Fix: fmt.Sprintf("remove one of the %q bindings", r.Key),
			Pos: r.Second,
		})
	}
}

// Repeated edges that a strict graph collapsed into one.
func checkStrictMultiEdges(g *Graph, report func(Diagnostic)) {
	if !g.Strict {
		return
	}
	for _, e := range g.Edges {
		if e.Duplicates > 0 {
			report(Diagnostic{
				Message: fmt.Sprintf("edge declared %d times in a strict graph; merged into one", e.Duplicates+1),
				Edge:    &EdgeRef{From: e.From, To: e.To},
				Fix:     "remove the repeated edge statements or drop 'strict'",
				Pos:     e.Pos,
			})
		}
	}
}

// Nodes that never get a node statement of their own.
func checkUndeclaredNodes(g *Graph, report func(Diagnostic)) {
	for _, n := range g.Nodes {
		if !n.Declared {
			report(Diagnostic{
				Message: fmt.Sprintf("node %q is only referenced by edges", n.ID),
				NodeID:  n.ID,
				Pos:     n.Pos,
			})
		}
	}
}

func checkIsolatedNodes(g *Graph, report func(Diagnostic)) {
	touched := make(map[string]struct{}, len(g.Nodes))
	for _, e := range g.Edges {
		touched[e.From] = struct{}{}
		touched[e.To] = struct{}{}
	}
	for _, n := range g.Nodes {
		if _, ok := touched[n.ID]; !ok {
			report(Diagnostic{
				Message: fmt.Sprintf("node %q has no edges", n.ID),
				NodeID:  n.ID,
				Pos:     n.Pos,
			})
		}
	}
}

func checkSelfLoops(g *Graph, report func(Diagnostic)) {
	for _, e := range g.Edges {
		if e.From == e.To {
			report(Diagnostic{
				Message: fmt.Sprintf("node %q has an edge to itself", e.From),
				NodeID:  e.From,
				Edge:    &EdgeRef{From: e.From, To: e.To},
				Pos:     e.Pos,
			})
		}
	}
}

// An edge to or from a subgraph with no nodes produces no edges.
func checkEmptyEndpoints(g *Graph, report func(Diagnostic)) {
	for _, ep := range g.EmptyEndpoints {
		report(Diagnostic{
			Message: fmt.Sprintf("subgraph endpoint in %s has no nodes; no edges are created for it", ep.Owner),
			Fix:     "add nodes to the subgraph or remove the edge",
			Pos:     ep.Pos,
		})
	}
}
