package main

import (
	"errors"
	"fmt"
	"strconv"

	smsnormalizer "github.com/baditaflorin/go_sms_normalizer"
	"github.com/spf13/cobra"
)

func newTryCommand() *cobra.Command {
	var ruleName string
	var pattern string

	cmd := &cobra.Command{
		Use:   "try [words...]",
		Short: "Show how a rule or pattern rewrites sample words",
		Long: "Replace every match of a built-in rule (--rule) or an ad-hoc regular\n" +
			"expression (--pattern) with OK in each word. Without words, --rule uses\n" +
			"the sample words kept for that rule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (ruleName == "") == (pattern == "") {
				return errors.New("exactly one of --rule and --pattern is required")
			}

			words := args
			var (
				results []smsnormalizer.TryResult
				err     error
			)
			if ruleName != "" {
				if len(words) == 0 {
					words = smsnormalizer.Samples(ruleName)
				}
				results, err = smsnormalizer.DefaultRules().TryRule(ruleName, words)
			} else {
				results, err = smsnormalizer.Try(pattern, words)
			}
			if err != nil {
				return err
			}
			if len(results) == 0 {
				return errors.New("no words to try")
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Input, r.Output, strconv.FormatBool(r.Matched)})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable(
				[]string{"Input", "Output", "Matched"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVarP(&ruleName, "rule", "r", "", "Built-in rule name (see 'smsprep rules')")
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Regular expression to try")
	return cmd
}
