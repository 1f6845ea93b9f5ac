package pdftext

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF produces a minimal PDF with one text line per entry in lines,
// one page per outer slice element.
func buildPDF(t *testing.T, pages ...[]string) []byte {
	t.Helper()

	doc := fpdf.New("P", "pt", "Letter", "")
	for _, lines := range pages {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 12)
		for _, line := range lines {
			doc.CellFormat(0, 16, line, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestExtract_SinglePage(t *testing.T) {
	raw := buildPDF(t, []string{"Photosynthesis converts light energy into chemical energy."})

	text, err := Extract(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	assert.Contains(t, text, "Photosynthesis converts light energy")
}

func TestExtract_MultiPagePreservesOrder(t *testing.T) {
	raw := buildPDF(t,
		[]string{"Week 1: Cell Structure", "Mitochondria and energy production"},
		[]string{"Week 2: Protein Synthesis", "Ribosomes and translation"},
	)

	text, err := Extract(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	assert.Contains(t, text, "Mitochondria")
	assert.Contains(t, text, "Ribosomes")
	assert.Less(t, strings.Index(text, "Mitochondria"), strings.Index(text, "Ribosomes"),
		"page one text should precede page two text")
}

func TestExtract_ImageOnlyPDF(t *testing.T) {
	// A page with no text operations at all, as a scanned document would be.
	raw := buildPDF(t, nil)

	_, err := Extract(bytes.NewReader(raw), int64(len(raw)))
	assert.ErrorIs(t, err, ErrNoReadableText)
}

func TestExtract_NotAPDF(t *testing.T) {
	raw := []byte("this is just a plain text file, not a pdf at all")

	_, err := Extract(bytes.NewReader(raw), int64(len(raw)))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_TruncatedPDF(t *testing.T) {
	raw := buildPDF(t, []string{"Some curriculum content"})
	truncated := raw[:len(raw)/3]

	_, err := Extract(bytes.NewReader(truncated), int64(len(truncated)))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_EmptyInput(t *testing.T) {
	_, err := Extract(bytes.NewReader(nil), 0)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractFile(t *testing.T) {
	raw := buildPDF(t, []string{"Introduction to Thermodynamics"})

	path := filepath.Join(t.TempDir(), "lecture.pdf")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	text, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Thermodynamics")
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
