package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"career-backend/internal/assessment"
	"career-backend/internal/bootstrap"
	"career-backend/internal/llm"
	"career-backend/internal/shared/config"
	localstore "career-backend/internal/shared/storage/artifact/local"
)

// clientFactory builds the generation client from config.
type clientFactory func(ctx context.Context, cfg config.Config) (llm.Client, error)

func newGenerateCmd(newClient clientFactory) *cobra.Command {
	var (
		file   string
		outDir string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report PDF from a submission file",
		Long: `Generate reads a submission (YAML or JSON) with an answers mapping and the
optional studentName, age, academicInfo and interests fields, then runs the full pipeline.`,
		Example: `  careerctl generate -f submission.yaml
  careerctl generate -f submission.json -o ./out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, newClient, file, outDir, quiet)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Submission file (YAML or JSON)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Directory for the generated PDF (default REPORTS_DIR)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Disable the progress spinner")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runGenerate(cmd *cobra.Command, newClient clientFactory, file, outDir string, quiet bool) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read submission: %w", err)
	}
	sub, err := assessment.DecodeSubmissionYAML(data)
	if err != nil {
		return fmt.Errorf("decode submission: %w", err)
	}

	cfg := config.Load()
	if outDir != "" {
		cfg.ReportsDir = outDir
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := newClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("llm client: %w", err)
	}
	store, err := localstore.New(cfg.ReportsDir)
	if err != nil {
		return err
	}
	svc := bootstrap.NewService(cfg, store, client)

	var s *spinner.Spinner
	if !quiet {
		s = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
		s.Writer = cmd.ErrOrStderr()
		s.Suffix = " Generating career report..."
		s.Start()
	}
	result, err := svc.Submit(ctx, sub)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "Report generation failed: %v\n", err)
		return err
	}

	out := cmd.OutOrStdout()
	color.New(color.FgGreen, color.Bold).Fprintln(out, "Report generated")
	fmt.Fprintf(out, "  Career goal: %s\n", result.CareerGoal)
	fmt.Fprintf(out, "  Sections:    %d\n", result.Sections)
	fmt.Fprintf(out, "  Size:        %d bytes\n", result.SizeBytes)
	fmt.Fprintf(out, "  File:        %s\n", filepath.Join(store.Dir(), result.Name))
	return nil
}
