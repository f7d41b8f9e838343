package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eras/dotfile-parser/dotparser"
)

// sourceError ties a parse failure to the input it came from so it can be
// rendered against the offending line.
type sourceError struct {
	name string
	src  []byte
	err  error
}

func (e *sourceError) Error() string { return e.name + ": " + e.err.Error() }

func (e *sourceError) Unwrap() error { return e.err }

// readInput reads path, or standard input when path is "-".
func readInput(cmd *cobra.Command, path string) (string, []byte, error) {
	if path == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("reading stdin: %w", err)
		}
		return "<stdin>", src, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading input: %w", err)
	}
	return path, src, nil
}

// parseDocument parses src with the grammar selected by --kind.
func (a *app) parseDocument(name string, src []byte) (*dotparser.Document, error) {
	opts := []dotparser.Option{dotparser.WithLogger(a.log)}

	var (
		doc *dotparser.Document
		err error
	)
	switch kind := a.v.GetString("kind"); kind {
	case "", "auto":
		doc, err = dotparser.Parse(src, opts...)
	case "directed", "digraph":
		var g *dotparser.Graph[dotparser.Directed]
		if g, err = dotparser.ParseAs[dotparser.Directed](src, opts...); err == nil {
			doc = &dotparser.Document{Directed: g}
		}
	case "undirected", "graph":
		var g *dotparser.Graph[dotparser.Undirected]
		if g, err = dotparser.ParseAs[dotparser.Undirected](src, opts...); err == nil {
			doc = &dotparser.Document{Undirected: g}
		}
	default:
		return nil, fmt.Errorf("unknown kind %q (want auto, directed or undirected)", kind)
	}
	if err != nil {
		return nil, &sourceError{name: name, src: src, err: err}
	}

	a.log.Debug("parsed document",
		zap.String("input", name),
		zap.Stringer("kind", doc.Kind()),
		zap.String("id", doc.ID().Text))
	return doc, nil
}

// loadDocument reads and parses the single positional argument.
func (a *app) loadDocument(cmd *cobra.Command, path string) (string, []byte, *dotparser.Document, error) {
	name, src, err := readInput(cmd, path)
	if err != nil {
		return "", nil, nil, err
	}
	doc, err := a.parseDocument(name, src)
	if err != nil {
		return "", nil, nil, err
	}
	if a.v.GetBool("verbose") {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s %s\n", name, doc.Kind(), dotparser.FormatID(doc.ID()))
	}
	return name, src, doc, nil
}

// encode writes v as yaml or json.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
