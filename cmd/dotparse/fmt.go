package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eras/dotfile-parser/dotparser"
)

func newFmtCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt <file|->",
		Short: "Reformat a DOT document",
		Long:  "Reformat a DOT document with tab indentation and one statement per line. Comments are not preserved.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			if write && args[0] == "-" {
				return errors.New("--write needs a file argument")
			}

			name, src, doc, err := a.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			out := dotparser.FormatDocument(doc)
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
			if out == string(src) {
				a.log.Debug("already formatted", zap.String("input", name))
				return nil
			}
			info, err := os.Stat(name)
			if err != nil {
				return err
			}
			if err := os.WriteFile(name, []byte(out), info.Mode().Perm()); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
			a.log.Info("reformatted", zap.String("input", name))
			return nil
		},
	}
	cmd.Flags().BoolP("write", "w", false, "Write the result back to the file")
	return cmd
}
