package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/internal/infra/http/middleware"
	"github.com/xavierca1/gym-leadbot/internal/infra/integration/whatsapp"
	"github.com/xavierca1/gym-leadbot/internal/usecase"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

// WebhookHandler receives Gupshup v2 events. It always answers 200 so
// Gupshup does not retry an event the bot already decided to drop.
type WebhookHandler struct {
	Engine    MessageEngine
	Dedup     Deduplicator
	Deliverer ReplySender
}

func NewWebhookHandler(engine MessageEngine, dedup Deduplicator, deliverer ReplySender) *WebhookHandler {
	return &WebhookHandler{
		Engine:    engine,
		Dedup:     dedup,
		Deliverer: deliverer,
	}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer acknowledge(w)

	var event whatsapp.InboundEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		logger.Warn().Err(err).Msg("⚠️ webhook: bad JSON")
		middleware.RecordInboundEvent("invalid")
		return
	}

	sender, message, buttonID, ok := whatsapp.ParseInbound(event)
	if !ok {
		middleware.RecordInboundEvent("ignored")
		return
	}

	ev := usecase.InboundEvent{Sender: sender, Message: message, ButtonID: buttonID}
	if errs := usecase.ValidateInboundEvent(ev); len(errs) > 0 {
		logger.Warn().Str("sender", sender).Str("errors", usecase.JoinValidation(errs)).Msg("⚠️ webhook: invalid event")
		middleware.RecordInboundEvent("invalid")
		return
	}

	if h.Dedup != nil && h.Dedup.IsDuplicate(ctx, ev) {
		logger.Info().Str("phone", entity.NormalizePhone(sender)).Msg("duplicate event dropped")
		middleware.RecordInboundEvent("duplicate")
		return
	}

	out, err := h.Engine.Execute(ctx, usecase.HandleMessageInput{
		Phone:    sender,
		Message:  message,
		ButtonID: buttonID,
	})
	if err != nil {
		logger.Error().Err(err).Str("sender", sender).Msg("❌ webhook: dialogue failed")
		middleware.RecordInboundEvent("failed")
		return
	}

	middleware.RecordInboundEvent("processed")
	middleware.RecordLeadTier(string(out.Tier))
	middleware.RecordReply(string(out.Reply.Kind))

	if err := h.Deliverer.Deliver(ctx, sender, out.Reply); err != nil {
		logger.Error().Err(err).Str("phone", out.Session.Phone).Str("reply", string(out.Reply.Kind)).Msg("❌ webhook: reply delivery failed")
		middleware.RecordIntegrationError("gupshup")
	}
}

func acknowledge(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
