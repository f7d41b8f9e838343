package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eras/dotfile-parser/graph"
)

var errLintFailed = errors.New("lint failed")

func newLintCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <file|->",
		Short: "Check a DOT document for structural problems",
		Long: "Build the graph described by a DOT document and report structural problems. " +
			"Exits non-zero when an error-level problem is found, or any warning with --werror.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, doc, err := a.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			g := graph.FromDocument(doc)
			diags, verr := graph.ValidateOrError(g)
			failures := 0
			var ve *graph.ValidationError
			if errors.As(verr, &ve) {
				failures = len(ve.Diagnostics)
			}

			quiet := a.v.GetBool("lint.quiet")
			failOnWarning := a.v.GetBool("lint.werror")
			rep := newReporter(name, src)
			out := cmd.OutOrStdout()

			for _, d := range diags {
				if failOnWarning && d.Severity == graph.Warning {
					failures++
				}
				if quiet && d.Severity == graph.Info {
					continue
				}
				rep.render(out, finding{
					Level:   severityLevel(d.Severity),
					Message: d.Rule + ": " + d.Message,
					Pos:     d.Pos,
					Width:   1,
					Help:    d.Fix,
				})
			}
			a.log.Debug("lint finished",
				zap.String("input", name),
				zap.Int("diagnostics", len(diags)),
				zap.Int("failures", failures))

			if failures > 0 {
				return fmt.Errorf("%w: %d problem(s) in %s", errLintFailed, failures, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("quiet", "q", false, "Hide info diagnostics")
	cmd.Flags().Bool("werror", false, "Treat warnings as errors")
	_ = a.v.BindPFlag("lint.quiet", cmd.Flags().Lookup("quiet"))
	_ = a.v.BindPFlag("lint.werror", cmd.Flags().Lookup("werror"))
	return cmd
}
