package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"career-backend/internal/assessment"
)

func newScoreCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print trait scores for a submission file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read submission: %w", err)
			}
			sub, err := assessment.DecodeSubmissionYAML(data)
			if err != nil {
				return fmt.Errorf("decode submission: %w", err)
			}
			scorer := assessment.DefaultScorer()
			scores, err := scorer.CalculateScores(sub.Answers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color.New(color.FgCyan, color.Bold).Fprintln(out, "Trait scores")
			for _, trait := range scorer.Traits() {
				fmt.Fprintf(out, "  %-14s %3d\n", trait, scores[trait])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Submission file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
