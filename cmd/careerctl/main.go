package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"career-backend/internal/bootstrap"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "careerctl",
		Short: "Generate career guidance reports from the command line",
		Long: `careerctl runs the assessment pipeline locally: it scores a submission file,
infers a career goal, generates each report section and writes the PDF to disk.`,
		SilenceUsage: true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newGenerateCmd(bootstrap.BuildLLM),
		newScoreCmd(),
		newRenderDemoCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "careerctl version %s\n", version)
		},
	}
}
