package main

import (
	"fmt"
	"strconv"

	"github.com/bastiangx/wordfix/pkg/rules"
	"github.com/spf13/cobra"
)

func newRulesCommand(ctx *commandContext) *cobra.Command {
	var prefix string
	var limit int
	var unstable bool

	cmd := &cobra.Command{
		Use:   "rules [RULES_FILE]",
		Short: "List the rules of a rule file",
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

			index := rules.NewIndex(set)
			var list []rules.Rule
			if unstable {
				list = index.Unstable()
				if limit > 0 && len(list) > limit {
					list = list[:limit]
				}
			} else {
				list = index.WithPrefix(prefix, limit)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No matching rules")
			} else {
				rows := make([][]string, 0, len(list))
				for _, rule := range list {
					rows = append(rows, []string{
						rule.WrongText(),
						rule.CorrectText(),
						strconv.Itoa(len(rule.Wrong)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Wrong", "Correct", "Tokens"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
			}
			fmt.Fprintf(out, "%d rules, window %d tokens\n", set.Len(), set.MaxWrongLen)
			return nil
		},
	}

	cmd.Flags().String("normalize", "", "Unicode normalization for rules: none, nfc, nfd, nfkc, nfkd")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Only list rules whose wrong phrase starts with this text")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of rules to list (0 for all)")
	cmd.Flags().BoolVar(&unstable, "unstable", false, "List rules whose correction is rewritten again by other rules")
	return cmd
}
