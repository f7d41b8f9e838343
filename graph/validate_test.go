package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcRule lets a test supply an ad-hoc LintRule.
type funcRule func(g *Graph) []Diagnostic

func (funcRule) Name() string                  { return "test_rule" }
func (f funcRule) Apply(g *Graph) []Diagnostic { return f(g) }

func only(diags []Diagnostic, rule string) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Rule == rule {
			out = append(out, d)
		}
	}
	return out
}

const tidyGraph = `
digraph Tidy {
    graph [rankdir=LR]
    start [shape=Mdiamond]
    work  [shape=box]
    exit  [shape=Msquare]
    start -> work -> exit
}
`

func TestValidateTidyGraph(t *testing.T) {
	assert.Empty(t, Validate(mustBuild(t, tidyGraph)))
}

func TestValidateOrErrorToleratesWarnings(t *testing.T) {
	diags, err := ValidateOrError(mustBuild(t, `strict digraph G { a -> b; a -> b; c }`))
	require.NoError(t, err)
	require.NotEmpty(t, diags)
	for _, d := range diags {
		assert.Less(t, Error, d.Severity, d.String())
	}
}

func TestValidateOrErrorFailsOnErrors(t *testing.T) {
	reserved := funcRule(func(g *Graph) []Diagnostic {
		if g.NodeByID("exit") == nil {
			return nil
		}
		return []Diagnostic{{Rule: "reserved", Severity: Error, Message: "exit is reserved", NodeID: "exit"}}
	})

	diags, err := ValidateOrError(mustBuild(t, tidyGraph), reserved)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, diags, 1)
	require.Len(t, ve.Diagnostics, 1)
	assert.Equal(t, "exit", ve.Diagnostics[0].NodeID)
	assert.EqualError(t, err, "graph is invalid: error reserved: exit is reserved; node exit")
}

func TestValidateOrErrorFailsOnEmptyEndpoint(t *testing.T) {
	diags, err := ValidateOrError(mustBuild(t, `graph G { {} -- a }`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Diagnostics, 1)
	assert.Equal(t, "empty_edge_endpoint", ve.Diagnostics[0].Rule)
	assert.Len(t, only(diags, "isolated_node"), 1)
}

func TestValidationErrorListsEveryError(t *testing.T) {
	err := &ValidationError{Diagnostics: []Diagnostic{
		{Rule: "r1", Severity: Error, Message: "one"},
		{Rule: "r2", Severity: Error, Message: "two"},
	}}
	assert.Equal(t, "graph is invalid: 2 errors\n\terror r1: one\n\terror r2: two", err.Error())
}

func TestExtraRulesRunAfterBuiltins(t *testing.T) {
	extra := funcRule(func(*Graph) []Diagnostic {
		return []Diagnostic{{Rule: "custom", Severity: Info, Message: "custom info"}}
	})
	diags := Validate(mustBuild(t, `digraph G { a }`), extra)
	require.NotEmpty(t, diags)
	assert.Equal(t, "custom", diags[len(diags)-1].Rule)
	assert.Len(t, only(diags, "isolated_node"), 1)
}

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		d    Diagnostic
		want string
	}{
		{
			Diagnostic{Rule: "self_loop", Severity: Warning, Message: "loop", NodeID: "a",
				Edge: &EdgeRef{From: "a", To: "a"}, Fix: "remove it"},
			"warning self_loop: loop; edge a/a; fix: remove it",
		},
		{
			Diagnostic{Rule: "isolated_node", Severity: Info, Message: "alone", NodeID: "n"},
			"info isolated_node: alone; node n",
		},
		{
			Diagnostic{Rule: "x", Severity: Severity(7), Message: "odd"},
			"severity(7) x: odd",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.String())
	}
}

func TestBuiltinRules(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		rule  string
		check func(t *testing.T, got []Diagnostic)
	}{
		{
			name: "attribute repeated within a statement",
			src: `digraph G {
				a -> b [color=red, color=blue]
				node [shape=box][shape=circle]
				c
			}`,
			rule: "duplicate_attribute",
			check: func(t *testing.T, got []Diagnostic) {
				require.Len(t, got, 2)
				assert.Equal(t, Warning, got[0].Severity)
				assert.Contains(t, got[0].Message, `"color"`)
				assert.Contains(t, got[0].Message, "a -> b")
				assert.Equal(t, 2, got[0].Pos.Line)
				assert.Contains(t, got[1].Message, "node")
			},
		},
		{
			name:  "attribute repeated across statements",
			src:   `digraph G { a [color=red]; a [color=blue] }`,
			rule:  "duplicate_attribute",
			check: func(t *testing.T, got []Diagnostic) { assert.Empty(t, got) },
		},
		{
			name: "strict graph merges repeated edges",
			src:  `strict digraph G { a -> b; a -> b; a -> b; b -> a }`,
			rule: "strict_multi_edge",
			check: func(t *testing.T, got []Diagnostic) {
				require.Len(t, got, 1)
				assert.Equal(t, &EdgeRef{From: "a", To: "b"}, got[0].Edge)
				assert.Contains(t, got[0].Message, "3 times")
			},
		},
		{
			name:  "non-strict graph keeps repeated edges",
			src:   `digraph G { a -> b; a -> b }`,
			rule:  "strict_multi_edge",
			check: func(t *testing.T, got []Diagnostic) { assert.Empty(t, got) },
		},
		{
			name: "node only seen as an endpoint",
			src:  `digraph G { a; a -> b }`,
			rule: "undeclared_edge_node",
			check: func(t *testing.T, got []Diagnostic) {
				require.Len(t, got, 1)
				assert.Equal(t, "b", got[0].NodeID)
				assert.Equal(t, Info, got[0].Severity)
			},
		},
		{
			name: "nodes without edges",
			src:  `graph G { a -- b; c; subgraph s { d } }`,
			rule: "isolated_node",
			check: func(t *testing.T, got []Diagnostic) {
				require.Len(t, got, 2)
				assert.Equal(t, "c", got[0].NodeID)
				assert.Equal(t, "d", got[1].NodeID)
			},
		},
		{
			name:  "self loop counts as an edge",
			src:   `digraph G { a -> a }`,
			rule:  "isolated_node",
			check: func(t *testing.T, got []Diagnostic) { assert.Empty(t, got) },
		},
		{
			name: "self loop",
			src:  `digraph G { a -> a; a -> b }`,
			rule: "self_loop",
			check: func(t *testing.T, got []Diagnostic) {
				require.Len(t, got, 1)
				assert.Equal(t, "a", got[0].NodeID)
				assert.Equal(t, &EdgeRef{From: "a", To: "a"}, got[0].Edge)
			},
		},
		{
			name: "edge to a subgraph with no nodes",
			src:  `digraph G { a -> {} -> b; c -> {d} }`,
			rule: "empty_edge_endpoint",
			check: func(t *testing.T, got []Diagnostic) {
				require.Len(t, got, 1)
				assert.Equal(t, Error, got[0].Severity)
				assert.Contains(t, got[0].Message, "a -> {} -> b")
				assert.Equal(t, 1, got[0].Pos.Line)
				assert.Equal(t, 18, got[0].Pos.Column)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, only(Validate(mustBuild(t, tt.src)), tt.rule))
		})
	}
}

func TestBuiltinRuleNames(t *testing.T) {
	var names []string
	for _, r := range builtinRules() {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{
		"duplicate_attribute", "strict_multi_edge", "undeclared_edge_node", "isolated_node", "self_loop",
		"empty_edge_endpoint",
	}, names)
}
