package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"career-backend/report/model"
)

// ErrRender marks a document backend failure.
var ErrRender = errors.New("render failed")

// PDFRenderer lays a report out as an A4 PDF.
type PDFRenderer struct {
	// Now stamps reports that carry no GeneratedAt. Defaults to time.Now.
	Now func() time.Time
}

// NewPDFRenderer constructs a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Now: time.Now}
}

// Render returns the PDF bytes for report. ctx is checked between sections.
func (r *PDFRenderer) Render(ctx context.Context, report model.Report) ([]byte, error) {
	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: before layout: %w", ErrRender, err)
	}

	generated := report.GeneratedAt
	if generated.IsZero() {
		now := r.Now
		if now == nil {
			now = time.Now
		}
		generated = now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin+5)
	pdf.SetCreationDate(generated)
	pdf.SetTitle(tr(report.StudentName+" Career Report"), false)
	pdf.SetCreator("career-backend", false)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(footerOffset)
		applyStyle(pdf, StyleMap["footer"])
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	writeTitle(pdf, tr, report, generated)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: title: %v", ErrRender, err)
	}

	for _, section := range report.Sections {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: section %s: %w", ErrRender, section.TopicID, err)
		}
		writeSection(pdf, tr, section)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("%w: section %s: %v", ErrRender, section.TopicID, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: output: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func applyStyle(pdf *fpdf.Fpdf, s TextStyle) {
	pdf.SetFont(s.Family, s.Style, s.Size)
	pdf.SetTextColor(s.Color[0], s.Color[1], s.Color[2])
}

func writeTitle(pdf *fpdf.Fpdf, tr func(string) string, report model.Report, generated time.Time) {
	applyStyle(pdf, StyleMap["title"])
	pdf.MultiCell(0, 10, tr("Career Guidance Report"), "", "L", false)
	pdf.Ln(2)

	applyStyle(pdf, StyleMap["meta"])
	pdf.MultiCell(0, lineHeight, tr("Prepared for: "+report.StudentName), "", "L", false)
	pdf.MultiCell(0, lineHeight, tr("Career goal: "+report.CareerGoal), "", "L", false)
	pdf.MultiCell(0, lineHeight, tr("Generated: "+generated.Format("January 2, 2006")), "", "L", false)
	pdf.Ln(4)

	x, y := pdf.GetXY()
	w, _ := pdf.GetPageSize()
	pdf.SetDrawColor(209, 213, 219)
	pdf.Line(x, y, w-pageMargin, y)
	pdf.Ln(6)
}

func writeSection(pdf *fpdf.Fpdf, tr func(string) string, section model.Section) {
	title := section.Title
	if title == "" {
		title = section.TopicID
	}
	applyStyle(pdf, StyleMap["sectionHeading"])
	pdf.MultiCell(0, 9, tr(title), "", "L", false)
	pdf.Ln(1)

	for _, b := range blocks(section.Body) {
		switch b.kind {
		case blockHeading:
			applyStyle(pdf, StyleMap["subheading"])
			pdf.MultiCell(0, lineHeight+1, tr(b.text), "", "L", false)
		case blockBullet:
			applyStyle(pdf, StyleMap["body"])
			pdf.SetX(pageMargin + 4)
			pdf.MultiCell(0, lineHeight, tr("• "+b.text), "", "L", false)
		default:
			applyStyle(pdf, StyleMap["body"])
			pdf.MultiCell(0, lineHeight, tr(b.text), "", "L", false)
			pdf.Ln(2)
		}
	}
	pdf.Ln(4)
}
