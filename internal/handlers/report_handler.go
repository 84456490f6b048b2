package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/valora-ai/valora/internal/common"
	"github.com/valora-ai/valora/internal/interfaces"
)

// ReportHandler exports a finished analysis as a PDF download.
type ReportHandler struct {
	pdfService interfaces.PDFService
	logger     arbor.ILogger
}

func NewReportHandler(pdfService interfaces.PDFService) *ReportHandler {
	return &ReportHandler{
		pdfService: pdfService,
		logger:     common.GetLogger(),
	}
}

// ReportRequest carries the markdown analysis to render.
type ReportRequest struct {
	Markdown string `json:"markdown"`
	Title    string `json:"title"`
}

// ReportHandler handles POST /api/report/pdf.
func (h *ReportHandler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if strings.TrimSpace(req.Markdown) == "" {
		WriteError(w, http.StatusBadRequest, "Missing 'markdown' field.")
		return
	}
	if req.Title == "" {
		req.Title = "Valuation analysis"
	}

	data, err := h.pdfService.ConvertMarkdownToPDF(req.Markdown, req.Title)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to render report")
		WriteError(w, http.StatusInternalServerError, "Failed to render the report.")
		return
	}

	filename := strings.ReplaceAll(strings.ToLower(req.Title), " ", "-") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
