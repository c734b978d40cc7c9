package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"

	"career-backend/report/model"
)

func sampleReport() model.Report {
	return model.Report{
		StudentName: "Asha",
		CareerGoal:  "Data Scientist",
		GeneratedAt: time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC),
		Sections: []model.Section{
			{TopicID: "personality_profile", Title: "Personality Profile", Body: "You are **analytical** and calm."},
			{TopicID: "strengths", Title: "Strengths", Body: "* Statistics\n* Curiosity"},
		},
	}
}

func extractText(t *testing.T, data []byte) (string, int) {
	t.Helper()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open pdf: %v", err)
	}
	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			t.Fatalf("page %d text: %v", i, err)
		}
		b.WriteString(text)
	}
	return b.String(), reader.NumPage()
}

func TestRenderProducesReadablePDF(t *testing.T) {
	data, err := NewPDFRenderer().Render(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}

	text, pages := extractText(t, data)
	if pages != 1 {
		t.Fatalf("expected 1 page, got %d", pages)
	}
	for _, want := range []string{"Career Guidance Report", "Asha", "Data Scientist", "Personality Profile", "Strengths", "Statistics"} {
		if !strings.Contains(text, want) {
			t.Fatalf("pdf text missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "**") {
		t.Fatalf("markdown markers leaked into pdf text")
	}
	if strings.Index(text, "Personality Profile") > strings.Index(text, "Strengths") {
		t.Fatalf("sections rendered out of order")
	}
}

func TestRenderPaginatesLongReports(t *testing.T) {
	report := sampleReport()
	long := strings.Repeat("Build a portfolio of small data projects and share them. ", 60)
	for i := 0; i < 4; i++ {
		report.Sections = append(report.Sections, model.Section{TopicID: "extra", Title: "Extra", Body: long})
	}

	data, err := NewPDFRenderer().Render(context.Background(), report)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, pages := extractText(t, data); pages < 2 {
		t.Fatalf("expected multiple pages, got %d", pages)
	}
}

func TestRenderIsDeterministicForFixedTimestamp(t *testing.T) {
	r := NewPDFRenderer()
	first, err := r.Render(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := r.Render(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output")
	}
}

func TestRenderRejectsInvalidReport(t *testing.T) {
	report := sampleReport()
	report.Sections = nil
	if _, err := NewPDFRenderer().Render(context.Background(), report); !errors.Is(err, ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPDFRenderer().Render(ctx, sampleReport())
	if !errors.Is(err, ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestRenderTranslatesNonASCII(t *testing.T) {
	report := sampleReport()
	report.StudentName = "Zoë"
	if _, err := NewPDFRenderer().Render(context.Background(), report); err != nil {
		t.Fatalf("Render: %v", err)
	}
}
