// -----------------------------------------------------------------------
// PDF Extractor Service - Extract text content from uploaded documents
// Uses pdfcpu for Go-native PDF processing
// -----------------------------------------------------------------------

package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
	"github.com/valora-ai/valora/internal/interfaces"
	"github.com/valora-ai/valora/internal/models"
)

// pdfMagic is the header every well-formed PDF starts with.
var pdfMagic = []byte("%PDF-")

// Extractor implements the PDFExtractor interface using pdfcpu
type Extractor struct {
	logger     arbor.ILogger
	tempDir    string
	maxExtract int
}

// Compile-time interface assertion
var _ interfaces.PDFExtractor = (*Extractor)(nil)

// NewExtractor creates a new PDF extractor service. maxExtract is the
// character budget applied to the extracted text; zero or negative
// disables truncation.
func NewExtractor(logger arbor.ILogger, maxExtract int) *Extractor {
	// Create a temp directory for PDF processing
	tempDir := filepath.Join(os.TempDir(), "valora-pdf")
	os.MkdirAll(tempDir, 0755)

	return &Extractor{
		logger:     logger,
		tempDir:    tempDir,
		maxExtract: maxExtract,
	}
}

// ExtractText extracts text content from raw PDF bytes. The payload is
// sniffed before parsing: a non-PDF body fails with ErrUnsupportedFormat
// regardless of the declared content type, and a PDF that cannot be
// parsed fails with ErrDocumentUnreadable.
func (e *Extractor) ExtractText(ctx context.Context, data []byte, contentType string) (*interfaces.ExtractedText, error) {
	if err := e.checkFormat(data, contentType); err != nil {
		return nil, err
	}

	// Write to temp file for pdfcpu processing
	token := uuid.NewString()
	tempFile := filepath.Join(e.tempDir, fmt.Sprintf("extract_%s.pdf", token))
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	defer os.Remove(tempFile)

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Failed to parse uploaded PDF")
		return nil, models.NewPipelineError(models.ErrDocumentUnreadable, "parse: %v", err)
	}

	pageCount := pdfCtx.PageCount

	// pdfcpu extracts content page by page into an output directory
	outDir := filepath.Join(e.tempDir, fmt.Sprintf("pages_%s", token))
	os.MkdirAll(outDir, 0755)
	defer os.RemoveAll(outDir)

	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		e.logger.Warn().Err(err).Msg("Failed to extract PDF content")
		return nil, models.NewPipelineError(models.ErrDocumentUnreadable, "extract: %v", err)
	}

	text := e.collectPages(outDir, pageCount)
	if strings.TrimSpace(text) == "" {
		return nil, models.NewPipelineError(models.ErrDocumentUnreadable, "document yielded no text")
	}

	truncated := false
	if e.maxExtract > 0 && utf8.RuneCountInString(text) > e.maxExtract {
		text = truncateRunes(text, e.maxExtract)
		truncated = true
	}

	e.logger.Debug().
		Int("page_count", pageCount).
		Int("chars", utf8.RuneCountInString(text)).
		Bool("truncated", truncated).
		Msg("Extracted PDF text")

	return &interfaces.ExtractedText{
		Text:      text,
		Truncated: truncated,
		PageCount: pageCount,
	}, nil
}

// checkFormat rejects payloads that are not PDFs before any parsing.
func (e *Extractor) checkFormat(data []byte, contentType string) error {
	if len(data) == 0 {
		return models.NewPipelineError(models.ErrUnsupportedFormat, "empty upload")
	}
	if contentType != "" && contentType != "application/pdf" &&
		!strings.HasPrefix(contentType, "application/pdf;") {
		return models.NewPipelineError(models.ErrUnsupportedFormat, "content type %s", contentType)
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return models.NewPipelineError(models.ErrUnsupportedFormat, "missing PDF header")
	}
	return nil
}

// collectPages reads the per-page content files pdfcpu wrote and joins
// them in page order.
func (e *Extractor) collectPages(outDir string, pageCount int) string {
	files, _ := os.ReadDir(outDir)
	pageTexts := make(map[int]string)

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			continue
		}
		var pageNum int
		if _, err := fmt.Sscanf(file.Name(), "Content_page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		} else if _, err := fmt.Sscanf(file.Name(), "page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		}
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		text, ok := pageTexts[pageNum]
		if !ok || text == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(text)
	}
	return builder.String()
}

// truncateRunes cuts s to at most max runes, never splitting a
// multi-byte character.
func truncateRunes(s string, max int) string {
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
