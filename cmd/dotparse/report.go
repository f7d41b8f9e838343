package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/eras/dotfile-parser/dotparser"
	"github.com/eras/dotfile-parser/graph"
)

type level string

const (
	levelError   level = "error"
	levelWarning level = "warning"
	levelInfo    level = "info"
)

func (l level) color() func(a ...interface{}) string {
	switch l {
	case levelError:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case levelWarning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	}
}

func severityLevel(s graph.Severity) level {
	switch s {
	case graph.Error:
		return levelError
	case graph.Warning:
		return levelWarning
	default:
		return levelInfo
	}
}

// finding is one message anchored at a source position.
type finding struct {
	Level   level
	Message string
	Pos     dotparser.Position
	Width   int    // caret length, at least 1
	Help    string // optional
}

// reporter renders findings against the source text: a header, the file
// location, the offending line and a caret marker.
type reporter struct {
	name  string
	lines []string
}

func newReporter(name string, src []byte) *reporter {
	return &reporter{
		name:  name,
		lines: strings.Split(string(src), "\n"),
	}
}

func (r *reporter) render(w io.Writer, f finding) {
	levelColor := f.Level.color()
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "%s: %s\n", levelColor(string(f.Level)), bold(f.Message))
	if f.Pos.Line <= 0 {
		fmt.Fprintf(w, "  %s %s\n", dim("-->"), r.name)
		return
	}

	gutter := len(fmt.Sprint(f.Pos.Line))
	indent := strings.Repeat(" ", gutter)
	fmt.Fprintf(w, "%s %s %s:%d:%d\n", indent, dim("-->"), r.name, f.Pos.Line, f.Pos.Column)
	fmt.Fprintf(w, "%s %s\n", indent, dim("|"))

	if f.Pos.Line <= len(r.lines) {
		line := strings.TrimRight(r.lines[f.Pos.Line-1], "\r")
		fmt.Fprintf(w, "%s %s %s\n", bold(fmt.Sprintf("%*d", gutter, f.Pos.Line)), dim("|"), line)
		fmt.Fprintf(w, "%s %s %s\n", indent, dim("|"), levelColor(marker(line, f.Pos.Column, f.Width)))
	}
	if f.Help != "" {
		fmt.Fprintf(w, "%s %s %s %s\n", indent, dim("|"), color.New(color.FgGreen).Sprint("help:"), f.Help)
	}
}

// marker builds the caret line under column col, keeping tabs so the caret
// lines up with the source.
func marker(line string, col, width int) string {
	if width < 1 {
		width = 1
	}
	var b strings.Builder
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}

// reportError prints err to w. Parse failures are rendered against their
// source line; anything else is printed as a single line.
func reportError(w io.Writer, err error) {
	if errors.Is(err, errLintFailed) {
		fmt.Fprintf(w, "%s: %s\n", levelError.color()(string(levelError)), err)
		return
	}

	var se *sourceError
	var located interface{ Position() dotparser.Position }
	if errors.As(err, &se) && errors.As(se.err, &located) && located.Position().Line > 0 {
		pos := located.Position()
		f := finding{
			Level:   levelError,
			Message: strings.TrimPrefix(se.err.Error(), fmt.Sprintf("line %d, col %d: ", pos.Line, pos.Column)),
			Pos:     pos,
			Width:   1,
		}
		var syn *dotparser.SyntaxError
		if errors.As(se.err, &syn) && len(syn.Got.Raw) > 0 {
			f.Width = len(syn.Got.Raw)
		}
		newReporter(se.name, se.src).render(w, f)
		return
	}

	fmt.Fprintf(w, "%s: %s\n", levelError.color()(string(levelError)), err)
}
