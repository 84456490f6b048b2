package handlers

import (
	"io"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/valora-ai/valora/internal/common"
	"github.com/valora-ai/valora/internal/interfaces"
	"github.com/valora-ai/valora/internal/models"
)

// UploadHandler accepts financial-statement PDFs and returns their
// extracted text.
type UploadHandler struct {
	extractor    interfaces.PDFExtractor
	logger       arbor.ILogger
	maxSizeBytes int64
}

func NewUploadHandler(extractor interfaces.PDFExtractor, maxSizeBytes int64) *UploadHandler {
	return &UploadHandler{
		extractor:    extractor,
		logger:       common.GetLogger(),
		maxSizeBytes: maxSizeBytes,
	}
}

// UploadResponse is the extraction result returned to the UI. The
// truncated flag tells the user the text may be partial.
type UploadResponse struct {
	Text      string `json:"text"`
	Truncated bool   `json:"truncated"`
	PageCount int    `json:"pageCount"`
}

// UploadHandler handles POST /api/upload with a multipart "pdf" field.
func (h *UploadHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSizeBytes)
	if err := r.ParseMultipartForm(h.maxSizeBytes); err != nil {
		h.logger.Debug().Err(err).Msg("Rejected multipart upload")
		WriteError(w, http.StatusBadRequest, "Upload must be multipart form data within the size limit.")
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing 'pdf' file field.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to read uploaded file")
		WriteError(w, http.StatusInternalServerError, "Failed to read the uploaded file.")
		return
	}

	contentType := header.Header.Get("Content-Type")
	h.logger.Debug().
		Str("state", string(models.StateExtractingDoc)).
		Str("filename", header.Filename).
		Str("content_type", contentType).
		Int("size", len(data)).
		Msg("Processing uploaded document")

	result, err := h.extractor.ExtractText(r.Context(), data, contentType)
	if err != nil {
		WritePipelineError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, UploadResponse{
		Text:      result.Text,
		Truncated: result.Truncated,
		PageCount: result.PageCount,
	})
}
