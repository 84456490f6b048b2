package pdf

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"github.com/valora-ai/valora/internal/common"
	"github.com/valora-ai/valora/internal/models"
)

// fixturePDF renders a small document so tests exercise a real parse.
func fixturePDF(t *testing.T, lines ...string) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		doc.Cell(0, 10, line)
		doc.Ln(12)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("failed to build fixture PDF: %v", err)
	}
	return buf.Bytes()
}

func TestExtractText(t *testing.T) {
	extractor := NewExtractor(common.GetLogger(), 5000)
	data := fixturePDF(t, "Demonstracao Financeira 2024", "Receita liquida: R$ 1.000")

	result, err := extractor.ExtractText(context.Background(), data, "application/pdf")
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}

	if result.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", result.PageCount)
	}
	if strings.TrimSpace(result.Text) == "" {
		t.Error("expected non-empty extracted text")
	}
	if result.Truncated {
		t.Error("small document should not be truncated")
	}
}

func TestExtractTextTruncates(t *testing.T) {
	const budget = 40
	extractor := NewExtractor(common.GetLogger(), budget)
	data := fixturePDF(t, "Relatorio anual com um paragrafo consideravelmente longo para estourar o limite")

	result, err := extractor.ExtractText(context.Background(), data, "application/pdf")
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}

	if !result.Truncated {
		t.Error("expected Truncated flag for oversized document")
	}
	if got := utf8.RuneCountInString(result.Text); got > budget {
		t.Errorf("extracted %d runes, budget is %d", got, budget)
	}
}

func TestExtractTextRejectsNonPDF(t *testing.T) {
	extractor := NewExtractor(common.GetLogger(), 5000)

	tests := []struct {
		name        string
		data        []byte
		contentType string
	}{
		{"empty payload", nil, "application/pdf"},
		{"wrong content type", fixturePDF(t, "x"), "image/png"},
		{"not a pdf body", []byte("plain text masquerading"), "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractor.ExtractText(context.Background(), tt.data, tt.contentType)
			if !errors.Is(err, models.ErrUnsupportedFormat) {
				t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestExtractTextUnreadable(t *testing.T) {
	extractor := NewExtractor(common.GetLogger(), 5000)

	// Valid magic header, garbage body
	data := []byte("%PDF-1.7\nnot actually a document")
	_, err := extractor.ExtractText(context.Background(), data, "application/pdf")
	if !errors.Is(err, models.ErrDocumentUnreadable) {
		t.Fatalf("error = %v, want ErrDocumentUnreadable", err)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "abc", 10, "abc"},
		{"exact length", "abcde", 5, "abcde"},
		{"cut ascii", "abcdef", 3, "abc"},
		{"cut multibyte on boundary", "ação de varejo", 4, "ação"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateRunes(tt.in, tt.max); got != tt.want {
				t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
