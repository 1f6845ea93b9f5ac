// Package pdftext extracts plain text from PDF documents. Extraction is
// page-tolerant: pages that cannot be decoded are skipped rather than
// failing the whole document.
package pdftext

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/lessonforge/lessonforge-api/pkg/logger"
)

var (
	// ErrUnsupportedFormat indicates the input could not be parsed as a PDF
	// at all (corrupted, encrypted, or not a PDF).
	ErrUnsupportedFormat = errors.New("unsupported pdf format")

	// ErrNoReadableText indicates the document parsed fine but yielded no
	// text, typically a scanned or image-only PDF.
	ErrNoReadableText = errors.New("no readable text in pdf")
)

// ExtractFile extracts the plain text of the PDF at path.
func ExtractFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat pdf: %w", err)
	}

	return Extract(f, info.Size())
}

// Extract reads every page of the document and concatenates the per-page
// text with newline separators. Returns ErrUnsupportedFormat when the
// document cannot be parsed and ErrNoReadableText when parsing succeeds
// but no page produces text.
func Extract(r io.ReaderAt, size int64) (string, error) {
	reader, err := newReader(r, size)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		pageText, err := extractPage(reader, i)
		if err != nil {
			logger.Warn("Skipping unreadable PDF page",
				zap.Int("page", i),
				zap.Error(err))
			continue
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrNoReadableText
	}

	return text, nil
}

// newReader wraps pdf.NewReader with panic recovery. The parser panics on
// some malformed inputs instead of returning an error.
func newReader(r io.ReaderAt, size int64) (reader *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reader = nil
			err = fmt.Errorf("%w: %v", ErrUnsupportedFormat, rec)
		}
	}()

	reader, err = pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	return reader, nil
}

// extractPage pulls the plain text of a single page, recovering from
// parser panics on broken page content.
func extractPage(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("page %d: %v", num, rec)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d: empty page object", num)
	}

	return page.GetPlainText(nil)
}
