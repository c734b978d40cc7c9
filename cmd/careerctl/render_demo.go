package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/ledongthuc/pdf"
	"github.com/spf13/cobra"

	"career-backend/report/model"
	"career-backend/report/render"
)

func newRenderDemoCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render-demo",
		Short: "Render a sample report to PDF without calling an LLM",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer := render.NewPDFRenderer()
			data, err := renderer.Render(cmd.Context(), demoReport())
			if err != nil {
				return err
			}
			pages, err := checkPDF(data, "Career Guidance Report")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Wrote %s (%d pages, %d bytes)\n", out, pages, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "demo-report.pdf", "Output PDF path")
	return cmd
}

// checkPDF parses data back and confirms want appears in the extracted text.
func checkPDF(data []byte, want string) (int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("parse rendered pdf: %w", err)
	}
	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return 0, fmt.Errorf("extract page %d: %w", i, err)
		}
		text.WriteString(content)
	}
	if !strings.Contains(text.String(), want) {
		return 0, fmt.Errorf("rendered pdf is missing %q", want)
	}
	return reader.NumPage(), nil
}

func demoReport() model.Report {
	return model.Report{
		StudentName: "Asha Verma",
		CareerGoal:  "Data Scientist",
		GeneratedAt: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
		Sections: []model.Section{
			{TopicID: "personality_profile", Title: "Personality Profile", Body: "Asha is **analytical** and curious.\n\nShe enjoys structured problem solving."},
			{TopicID: "strengths", Title: "Key Strengths", Body: "- Quantitative reasoning\n- Clear written communication\n- Persistence"},
			{TopicID: "career_paths", Title: "Career Paths", Body: "## Primary\nData Scientist\n\n## Adjacent\nMachine learning engineer, analytics consultant."},
			{TopicID: "skill_gaps", Title: "Skill Gaps", Body: "- Production SQL\n- Model deployment"},
			{TopicID: "education_pathway", Title: "Education Pathway", Body: "A statistics or computer science degree followed by applied projects."},
			{TopicID: "action_plan", Title: "Action Plan", Body: "1. Finish an online statistics course.\n2. Publish two notebooks.\n3. Apply for a summer internship."},
		},
	}
}
