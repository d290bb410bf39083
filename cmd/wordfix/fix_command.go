package main

import (
	"bufio"
	"fmt"
	"slices"

	"github.com/bastiangx/wordfix/internal/cli"
	"github.com/bastiangx/wordfix/pkg/fix"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newFixCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix RULES_FILE [FILES...]",
		Short: "Correct one field of every line of the input files",
		Long: "Correct one field of every line read from FILES, or stdin when no files\n" +
			"are given (\"-\" also names stdin). Corrected lines go to stdout.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.settings(cmd)
			if err != nil {
				return err
			}
			set, err := loadRules(args[0], s)
			if err != nil {
				return err
			}
			fixer, err := newFixer(set, s)
			if err != nil {
				return err
			}
			processor, err := fix.NewProcessor(fixer,
				fix.WithDelimiter(s.delimiter),
				fix.WithField(s.field),
			)
			if err != nil {
				return err
			}

			paths := args[1:]
			stdin := cmd.InOrStdin()
			if (len(paths) == 0 || slices.Contains(paths, fix.StdinPath)) && cli.IsTerminal(stdin) {
				log.Warn("Reading from the terminal, end input with Ctrl+D")
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			stats, err := processor.ProcessFiles(cmd.Context(), paths, stdin, out)
			if flushErr := out.Flush(); err == nil && flushErr != nil {
				err = fmt.Errorf("write output: %w", flushErr)
			}
			if err != nil {
				return err
			}

			log.Debugf("Done: %d lines, %d changed, %d without field %d",
				stats.Lines, stats.Changed, stats.Short, s.field)
			return nil
		},
	}

	addModeFlags(cmd)
	cmd.Flags().StringP("delimiter", "d", "", "Field delimiter (default from config, tab)")
	cmd.Flags().IntP("field", "f", 0, "1-based field to correct (default from config, 1)")
	return cmd
}
