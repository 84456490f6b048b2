package interfaces

// PDFService renders a markdown analysis into a downloadable PDF report.
type PDFService interface {
	// ConvertMarkdownToPDF converts markdown content to a PDF byte slice.
	ConvertMarkdownToPDF(markdown, title string) ([]byte, error)
}
