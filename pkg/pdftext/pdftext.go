// Package pdftext extracts plain text from PDF invitations.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor pulls text out of PDF bytes page by page.
type Extractor struct{}

// New returns a ready Extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractText returns the concatenated text of all pages. A page that fails
// to decode is skipped; the error is returned only when no page yields any
// text.
func (e *Extractor) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	var lastErr error
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			lastErr = err
			continue
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}

	out := strings.TrimSpace(sb.String())
	if out == "" && lastErr != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", lastErr)
	}
	return out, nil
}
