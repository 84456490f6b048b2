package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/valora-ai/valora/internal/common"
	"github.com/valora-ai/valora/internal/interfaces"
	"github.com/valora-ai/valora/internal/models"
)

// ChatHandler serves the valuation chat endpoint.
type ChatHandler struct {
	chatService interfaces.ChatService
	logger      arbor.ILogger
}

func NewChatHandler(chatService interfaces.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      common.GetLogger(),
	}
}

// ChatHandler handles POST /api/chat: one valuation analysis per
// submission.
func (h *ChatHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req models.ValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("Rejected malformed chat payload")
		WriteError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	resp, err := h.chatService.Analyze(r.Context(), &req)
	if err != nil {
		WritePipelineError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}
