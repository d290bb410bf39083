package main

import (
	"github.com/bastiangx/wordfix/internal/cli"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newTryCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "try [RULES_FILE]",
		Short: "Correct lines typed interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.settings(cmd)
			if err != nil {
				return err
			}
			path, err := ctx.rulesPath(args)
			if err != nil {
				return err
			}
			set, err := loadRules(path, s)
			if err != nil {
				return err
			}
			fixer, err := newFixer(set, s)
			if err != nil {
				return err
			}

			log.Debug("Input info:", "rules", set.Len(), "window", set.MaxWrongLen, "mode", s.mode)
			inputHandler := cli.NewInputHandler(fixer, cmd.InOrStdin(), cmd.OutOrStdout())
			return inputHandler.Start(cmd.Context())
		},
	}

	addModeFlags(cmd)
	return cmd
}
