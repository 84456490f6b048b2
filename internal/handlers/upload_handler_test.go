package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/valora-ai/valora/internal/interfaces"
	"github.com/valora-ai/valora/internal/models"
)

// fakeExtractor serves a canned extraction result.
type fakeExtractor struct {
	result *interfaces.ExtractedText
	err    error
}

func (f *fakeExtractor) ExtractText(ctx context.Context, data []byte, contentType string) (*interfaces.ExtractedText, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func multipartPDF(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, "balanco.pdf")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	part.Write(content)
	writer.Close()
	return &buf, writer.FormDataContentType()
}

func TestUploadHandler(t *testing.T) {
	extractor := &fakeExtractor{
		result: &interfaces.ExtractedText{Text: "Receita liquida: R$ 500", Truncated: true, PageCount: 3},
	}
	handler := NewUploadHandler(extractor, 10*1024*1024)

	body, contentType := multipartPDF(t, "pdf", []byte("%PDF-1.7 fixture"))
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.UploadHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp UploadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Text != "Receita liquida: R$ 500" {
		t.Errorf("Text = %q", resp.Text)
	}
	if !resp.Truncated {
		t.Error("Truncated flag must propagate to the caller")
	}
	if resp.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3", resp.PageCount)
	}
}

func TestUploadHandlerMissingField(t *testing.T) {
	handler := NewUploadHandler(&fakeExtractor{}, 10*1024*1024)

	body, contentType := multipartPDF(t, "document", []byte("%PDF-1.7"))
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.UploadHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadHandlerUnsupportedFormat(t *testing.T) {
	extractor := &fakeExtractor{
		err: models.NewPipelineError(models.ErrUnsupportedFormat, "content type image/png"),
	}
	handler := NewUploadHandler(extractor, 10*1024*1024)

	body, contentType := multipartPDF(t, "pdf", []byte("PNG bytes"))
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.UploadHandler(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestUploadHandlerUnreadableDocument(t *testing.T) {
	extractor := &fakeExtractor{
		err: models.NewPipelineError(models.ErrDocumentUnreadable, "parse failure"),
	}
	handler := NewUploadHandler(extractor, 10*1024*1024)

	body, contentType := multipartPDF(t, "pdf", []byte("%PDF-1.7 broken"))
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.UploadHandler(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestUploadHandlerTooLarge(t *testing.T) {
	handler := NewUploadHandler(&fakeExtractor{}, 64)

	body, contentType := multipartPDF(t, "pdf", bytes.Repeat([]byte("x"), 4096))
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.UploadHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
