package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/winnow-hq/winnow-api/internal/apperror"
	"github.com/winnow-hq/winnow-api/internal/core"
	"github.com/winnow-hq/winnow-api/internal/models"
)

type ChatHandler struct {
	model core.ChatModel
	log   *zap.Logger
}

// NewChatHandler accepts a nil model: when no API key is configured the
// endpoint stays mounted and reports the problem per request.
func NewChatHandler(model core.ChatModel, log *zap.Logger) *ChatHandler {
	return &ChatHandler{model: model, log: log}
}

type chatRequest struct {
	Message     string            `json:"message"`
	ChatHistory []models.ChatTurn `json:"chatHistory"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperror.Invalid("invalid body"))
		return
	}

	if h.model == nil {
		writeError(w, h.log, errors.New("Gemini API key is not configured; contact the administrator"))
		return
	}

	reply, err := h.model.Chat(r.Context(), req.ChatHistory, req.Message)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
