package interfaces

import "context"

// ExtractedText is the result of pulling text out of an uploaded document.
type ExtractedText struct {
	// Text is the extracted content, truncated to the configured
	// character budget.
	Text string
	// Truncated reports whether the budget cut the text short; callers
	// must tell the user the content may be partial.
	Truncated bool
	// PageCount is the number of pages in the source document.
	PageCount int
}

// PDFExtractor extracts text content from uploaded PDF documents.
type PDFExtractor interface {
	// ExtractText extracts text from raw PDF bytes. Fails with
	// models.ErrUnsupportedFormat when the payload is not a PDF and
	// models.ErrDocumentUnreadable when parsing fails.
	ExtractText(ctx context.Context, data []byte, contentType string) (*ExtractedText, error)
}
