package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/internal/infra/http/middleware"
	"github.com/xavierca1/gym-leadbot/internal/usecase"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

const (
	msgNoMessage   = "⚠️ No message received"
	msgChatAlive   = "Chat endpoint is working. Use POST."
	msgChatFailure = "⚠️ Something went wrong, please try again."
)

type ChatRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatHandler serves the website widget. Replies are rendered as plain text.
type ChatHandler struct {
	Engine  MessageEngine
	Content *entity.Content
}

func NewChatHandler(engine MessageEngine, content *entity.Content) *ChatHandler {
	return &ChatHandler{Engine: engine, Content: content}
}

func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet:
		writeJSON(w, http.StatusOK, ChatResponse{Reply: msgChatAlive})
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "GET, POST, OPTIONS")
		writeJSON(w, http.StatusMethodNotAllowed, ChatResponse{Reply: msgChatAlive})
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ChatResponse{Reply: msgNoMessage})
		return
	}

	if errs := usecase.ValidateChatInput(req.Phone, req.Message); len(errs) > 0 {
		reply := msgNoMessage
		if errs[0].Field != "message" {
			reply = "⚠️ " + usecase.JoinValidation(errs)
		}
		writeJSON(w, http.StatusBadRequest, ChatResponse{Reply: reply})
		return
	}

	out, err := h.Engine.Execute(r.Context(), usecase.HandleMessageInput{
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusBadRequest, ChatResponse{Reply: "⚠️ " + err.Error()})
			return
		}
		logger.Error().Err(err).Str("phone", entity.NormalizePhone(req.Phone)).Msg("❌ chat: dialogue failed")
		writeJSON(w, http.StatusInternalServerError, ChatResponse{Reply: msgChatFailure})
		return
	}

	middleware.RecordLeadTier(string(out.Tier))
	middleware.RecordReply(string(out.Reply.Kind))
	writeJSON(w, http.StatusOK, ChatResponse{Reply: usecase.PlainText(out.Reply, h.Content)})
}
