package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"dorry-backend/internal/domain"
	"dorry-backend/internal/service"
)

// ChatHandler serves the per-project conversation and the TTS status
// probe.
type ChatHandler struct {
	chatSvc *service.ChatService
	tts     service.SpeechSynthesizer
	logger  *zap.Logger
}

func NewChatHandler(chatSvc *service.ChatService, tts service.SpeechSynthesizer, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc, tts: tts, logger: logger}
}

type postMessageRequest struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
	TTS     bool   `json:"tts"`
}

// Handle serves GET (history) and POST (new message) on
// /api/projects/{id}/chat.
func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request, projectID int) {
	switch r.Method {
	case http.MethodGet:
		messages, err := h.chatSvc.History(r.Context(), projectID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(messages))

	case http.MethodPost:
		var req postMessageRequest
		if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid message data"))
			return
		}
		if req.Sender == "" {
			req.Sender = domain.SenderUser
		}

		result, err := h.chatSvc.HandleMessage(r.Context(), projectID, req.Sender, req.Content, req.TTS)
		if err != nil {
			h.logger.Error("Chat turn failed",
				zap.Int("project_id", projectID), zap.Error(err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(result))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// TTSStatus serves GET /api/tts/status.
func (h *ChatHandler) TTSStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]bool{
		"available": h.tts != nil && h.tts.Available(),
	}))
}
