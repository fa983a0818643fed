package main

import (
	"fmt"
	"strconv"

	smsnormalizer "github.com/baditaflorin/go_sms_normalizer"
	"github.com/spf13/cobra"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rewrite rules in the order they run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := smsnormalizer.DefaultRules().Rules()
			rows := make([][]string, 0, len(list))
			for _, r := range list {
				rows = append(rows, []string{
					strconv.Itoa(r.Order),
					r.Name,
					strconv.Quote(r.Replacement),
					r.Pattern.String(),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable(
				[]string{"Order", "Name", "Replacement", "Pattern"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
