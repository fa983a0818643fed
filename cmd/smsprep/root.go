package main

import (
	"fmt"

	smsnormalizer "github.com/baditaflorin/go_sms_normalizer"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var inputPath string
	var outputPath string

	rootCmd := &cobra.Command{
		Use:           "smsprep -i INPUT -o OUTPUT",
		Short:         "Normalize a labeled SMS collection into a CSV file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Close()

			n, err := smsnormalizer.New(smsnormalizer.WithLogger(logger))
			if err != nil {
				return err
			}

			stats, err := n.ProcessFile(cmd.Context(), inputPath, outputPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s (%d rewritten, %d blank lines skipped)\n",
				stats.Records, outputPath, stats.Rewritten, stats.Skipped)
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input file with tab-separated label and text")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output CSV file")
	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(newTryCommand())
	rootCmd.AddCommand(newRulesCommand())

	return rootCmd
}
