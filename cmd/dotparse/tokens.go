package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eras/dotfile-parser/dotparser"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the token stream of a DOT document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			tokens, err := dotparser.Tokenize(src)
			if err != nil {
				return &sourceError{name: name, src: src, err: err}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tok := range tokens {
				fmt.Fprintf(tw, "%d:%d\t%s\t%s\n", tok.Pos.Line, tok.Pos.Column, tok.Kind, tok.Raw)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if a.v.GetBool("verbose") {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d tokens\n", name, len(tokens))
			}
			return nil
		},
	}
}
