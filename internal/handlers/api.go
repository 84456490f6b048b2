package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/valora-ai/valora/internal/common"
	"github.com/valora-ai/valora/internal/interfaces"
)

type APIHandler struct {
	chatService interfaces.ChatService
	logger      arbor.ILogger
}

func NewAPIHandler(chatService interfaces.ChatService) *APIHandler {
	return &APIHandler{
		chatService: chatService,
		logger:      common.GetLogger(),
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
	})
}

// HealthHandler returns health check status, including whether the
// configured LLM provider answers a probe.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	status := map[string]string{
		"status": "ok",
	}
	if h.chatService != nil {
		status["llm_mode"] = string(h.chatService.GetMode())
		if err := h.chatService.HealthCheck(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("LLM health probe failed")
			status["status"] = "degraded"
			status["llm"] = "unreachable"
		} else {
			status["llm"] = "ok"
		}
	}

	WriteJSON(w, http.StatusOK, status)
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
