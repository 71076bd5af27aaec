package pdftext

import (
	"strings"
	"testing"
)

// minimalPDF builds a tiny single-page PDF with the given latin text drawn
// via the built-in Helvetica font.
func minimalPDF(text string) []byte {
	content := "BT /F1 12 Tf 72 720 Td (" + text + ") Tj ET"

	var sb strings.Builder
	var offsets []int
	add := func(s string) {
		offsets = append(offsets, sb.Len())
		sb.WriteString(s)
	}

	sb.WriteString("%PDF-1.4\n")
	add("1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj\n")
	add("2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj\n")
	add("3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >> endobj\n")
	add("4 0 obj << /Length " + itoa(len(content)) + " >> stream\n" + content + "\nendstream endobj\n")
	add("5 0 obj << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> endobj\n")

	xrefPos := sb.Len()
	sb.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for _, off := range offsets {
		sb.WriteString(pad10(off) + " 00000 n \n")
	}
	sb.WriteString("trailer << /Size 6 /Root 1 0 R >>\nstartxref\n" + itoa(xrefPos) + "\n%%EOF")
	return []byte(sb.String())
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func pad10(n int) string {
	s := itoa(n)
	return strings.Repeat("0", 10-len(s)) + s
}

func TestExtractText(t *testing.T) {
	t.Run("Single page text", func(t *testing.T) {
		got, err := New().ExtractText(minimalPDF("Event at 19:30"))
		if err != nil {
			t.Fatalf("ExtractText() error = %v", err)
		}
		if !strings.Contains(got, "19:30") {
			t.Errorf("ExtractText() = %q, want it to contain the time", got)
		}
	})

	t.Run("Garbage input fails", func(t *testing.T) {
		if _, err := New().ExtractText([]byte("not a pdf at all")); err == nil {
			t.Fatal("ExtractText() error = nil, want open failure")
		}
	})

	t.Run("Empty input fails", func(t *testing.T) {
		if _, err := New().ExtractText(nil); err == nil {
			t.Fatal("ExtractText() error = nil, want open failure")
		}
	})
}
