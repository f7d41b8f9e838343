package dotparser

import "strings"

// Format writes g back as DOT source: tab indentation, one statement per line,
// attribute groups kept separate. Source whitespace and comments are not
// preserved.
func Format[K Kind](g *Graph[K]) string {
	var b strings.Builder
	f := &formatter{b: &b}

	if g.Strict {
		f.write("strict ")
	}
	f.write(KindOf[K]().String())
	f.write(" ")
	f.write(FormatID(g.ID))
	f.write(" {\n")
	f.indent++
	formatStatements(f, g.Statements)
	f.indent--
	f.write("}\n")
	return b.String()
}

// FormatDocument formats whichever graph d holds.
func FormatDocument(d *Document) string {
	if d.Directed != nil {
		return Format(d.Directed)
	}
	return Format(d.Undirected)
}

type formatter struct {
	b      *strings.Builder
	indent int
}

func (f *formatter) write(s string) {
	f.b.WriteString(s)
}

func (f *formatter) writeIndent() {
	for i := 0; i < f.indent; i++ {
		f.write("\t")
	}
}

func formatStatements[K Kind](f *formatter, stmts []Statement[K]) {
	for _, st := range stmts {
		f.writeIndent()
		switch st.Kind {
		case StmtNode:
			f.write(FormatID(st.Node.ID))
			formatAttributes(f, st.Node.Attributes)
			f.write(";")
		case StmtEdge:
			op := " " + KindOf[K]().EdgeOp() + " "
			for i, ep := range st.Edge.Endpoints {
				if i > 0 {
					f.write(op)
				}
				if ep.Subgraph != nil {
					formatSubgraph(f, ep.Subgraph)
				} else {
					f.write(FormatID(*ep.NodeID))
				}
			}
			formatAttributes(f, st.Edge.Attributes)
			f.write(";")
		case StmtSubgraph:
			formatSubgraph(f, st.Subgraph)
		case StmtAssignment:
			f.write(formatAssignment(*st.Assignment))
			f.write(";")
		case StmtAttr:
			if st.Attr.Target != TargetNone {
				f.write(st.Attr.Target.String())
				f.write(" ")
			}
			formatGroups(f, st.Attr.Attributes)
			f.write(";")
		}
		f.write("\n")
	}
}

func formatSubgraph[K Kind](f *formatter, sub *Subgraph[K]) {
	if sub.Keyword || sub.ID != nil {
		f.write("subgraph ")
		if sub.ID != nil {
			f.write(FormatID(*sub.ID))
			f.write(" ")
		}
	}
	if len(sub.Statements) == 0 {
		f.write("{}")
		return
	}
	f.write("{\n")
	f.indent++
	formatStatements(f, sub.Statements)
	f.indent--
	f.writeIndent()
	f.write("}")
}

// formatAttributes writes a leading space and the groups, or nothing for an
// absent list.
func formatAttributes(f *formatter, attrs AttributeList) {
	if attrs == nil {
		return
	}
	f.write(" ")
	formatGroups(f, attrs)
}

// FormatAttributes renders attrs as `[k=v, k2=v2][k3=v3]`. An absent list
// renders as the empty string.
func FormatAttributes(attrs AttributeList) string {
	var b strings.Builder
	formatGroups(&formatter{b: &b}, attrs)
	return b.String()
}

func formatGroups(f *formatter, attrs AttributeList) {
	for _, group := range attrs {
		f.write("[")
		for i, asg := range group {
			if i > 0 {
				f.write(", ")
			}
			f.write(formatAssignment(asg))
		}
		f.write("]")
	}
}

func formatAssignment(a Assignment) string {
	return FormatID(a.Key) + "=" + FormatID(a.Value)
}

// FormatID renders an ID the way it must be written in DOT source. Quoted and
// HTML IDs keep their form; unquoted IDs are quoted only when they would not
// lex back as a single bare identifier.
func FormatID(id ID) string {
	switch id.Quote {
	case QuoteHTML:
		return "<" + id.Text + ">"
	case QuoteNone:
		if isBareID(id.Text) {
			return id.Text
		}
	}
	return `"` + strings.ReplaceAll(id.Text, `"`, `\"`) + `"`
}

func isBareID(text string) bool {
	if text == "" {
		return false
	}
	tokens, err := Tokenize([]byte(text))
	if err != nil || len(tokens) != 2 {
		return false
	}
	tok := tokens[0]
	return tok.Kind == TokenIdentifier && tok.Quote == QuoteNone && tok.Raw == text
}
