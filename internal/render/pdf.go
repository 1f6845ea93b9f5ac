// Package render turns generated lesson plans into PDF documents. Rendering
// is deterministic: the same lesson plan always produces the same bytes, so
// responses can be cached and re-downloads compared.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/lessonforge/lessonforge-api/internal/models"
)

// Layout constants, all in points.
const (
	pageMargin = 72

	titleSize      = 18
	sectionSize    = 14
	subsectionSize = 12
	bodySize       = 10

	titleLead      = 22
	sectionLead    = 17
	subsectionLead = 15
	bodyLead       = 13

	labelColWidth = 144 // 2 in
	valueColWidth = 288 // 4 in
	cellPadding   = 6
	bulletIndent  = 20
)

// LessonPlanPDF renders plan into a standalone PDF document.
func LessonPlanPDF(plan *models.LessonPlan) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")

	// Pin the document dates to the plan's generation time so re-renders
	// are byte-identical.
	doc.SetCreationDate(plan.GeneratedAt)
	doc.SetModificationDate(plan.GeneratedAt)

	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	r := &renderer{
		doc:       doc,
		translate: doc.UnicodeTranslatorFromDescriptor(""),
	}

	r.title("LESSON PLAN")
	r.detailsTable(plan)
	r.content(plan.Content)

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("failed to render lesson plan pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render lesson plan pdf: %w", err)
	}

	return buf.Bytes(), nil
}

type renderer struct {
	doc       *fpdf.Fpdf
	translate func(string) string
}

func (r *renderer) title(text string) {
	r.doc.SetFont("Helvetica", "B", titleSize)
	r.doc.SetTextColor(0, 0, 139) // dark blue
	r.doc.CellFormat(0, titleLead, r.translate(text), "", 1, "C", false, 0, "")
	r.doc.Ln(30)
}

// detailsTable draws the two-column parameter table: grey label column,
// 1 pt black grid, wrapped values.
func (r *renderer) detailsTable(plan *models.LessonPlan) {
	req := plan.RequestData

	focus := req.FocusTopic
	if focus == "" {
		focus = "General Coverage"
	}

	rows := []struct{ label, value string }{
		{"Subject:", req.SubjectName},
		{"Lecture Topic:", req.LectureTopic},
		{"Focus Topic:", focus},
		{"Bloom's Taxonomy Level:", req.BloomsTaxonomy},
		{"AQF Level:", req.AQFLevel},
		{"Duration:", req.LessonDuration},
		{"Generated:", plan.GeneratedAt.Format("2006-01-02 15:04:05")},
	}

	r.doc.SetDrawColor(0, 0, 0)
	r.doc.SetLineWidth(1)
	for _, row := range rows {
		r.detailRow(row.label, row.value)
	}
	r.doc.Ln(30)
}

func (r *renderer) detailRow(label, value string) {
	r.doc.SetFont("Helvetica", "B", bodySize)
	labelLines := r.doc.SplitText(r.translate(label), labelColWidth-2*cellPadding)
	r.doc.SetFont("Helvetica", "", bodySize)
	valueLines := r.doc.SplitText(r.translate(value), valueColWidth-2*cellPadding)

	lineCount := len(labelLines)
	if len(valueLines) > lineCount {
		lineCount = len(valueLines)
	}
	rowHeight := float64(lineCount)*bodyLead + 2*cellPadding

	x, y := r.doc.GetXY()

	r.doc.SetFillColor(211, 211, 211) // light grey
	r.doc.Rect(x, y, labelColWidth, rowHeight, "FD")
	r.doc.Rect(x+labelColWidth, y, valueColWidth, rowHeight, "D")

	r.doc.SetTextColor(0, 0, 0)
	r.doc.SetFont("Helvetica", "B", bodySize)
	r.cellText(x+cellPadding, y+cellPadding, labelLines)
	r.doc.SetFont("Helvetica", "", bodySize)
	r.cellText(x+labelColWidth+cellPadding, y+cellPadding, valueLines)

	r.doc.SetXY(x, y+rowHeight)
}

func (r *renderer) cellText(x, y float64, lines []string) {
	for i, line := range lines {
		// Text positions at the baseline, hence the font-size offset.
		r.doc.Text(x, y+float64(i)*bodyLead+bodySize, line)
	}
}

// content lays out the plan body. Blocks are separated by blank lines; the
// first line of a block may be a section heading, every line is otherwise
// classified independently.
func (r *renderer) content(content string) {
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		r.block(block)
	}
}

func (r *renderer) block(block string) {
	for i, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch Classify(line, i == 0) {
		case SectionHeading:
			r.sectionHeading(line)
		case SubsectionHeading:
			r.subsectionHeading(line)
		case Bullet:
			r.bullet(strings.TrimPrefix(line, "- "))
		default:
			r.paragraph(line)
		}
	}
}

func (r *renderer) sectionHeading(text string) {
	r.doc.Ln(15)
	r.doc.SetFont("Helvetica", "B", sectionSize)
	r.doc.SetTextColor(0, 0, 139)
	r.doc.MultiCell(0, sectionLead, r.translate(text), "", "L", false)
	r.doc.Ln(10)
}

func (r *renderer) subsectionHeading(text string) {
	r.doc.Ln(10)
	r.doc.SetFont("Helvetica", "B", subsectionSize)
	r.doc.SetTextColor(0, 0, 0)
	r.doc.MultiCell(0, subsectionLead, r.translate(text), "", "L", false)
	r.doc.Ln(5)
}

func (r *renderer) bullet(text string) {
	r.doc.Ln(3)
	r.doc.SetFont("Helvetica", "", bodySize)
	r.doc.SetTextColor(0, 0, 0)

	// Raise the left margin so wrapped bullet lines stay indented.
	r.doc.SetLeftMargin(pageMargin + bulletIndent)
	r.doc.SetX(pageMargin + bulletIndent)
	r.doc.MultiCell(0, bodyLead, r.translate("• "+text), "", "L", false)
	r.doc.SetLeftMargin(pageMargin)

	r.doc.Ln(3)
}

func (r *renderer) paragraph(text string) {
	r.doc.SetFont("Helvetica", "", bodySize)
	r.doc.SetTextColor(0, 0, 0)
	r.doc.MultiCell(0, bodyLead, r.translate(text), "", "L", false)
	r.doc.Ln(6)
}
