package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

type LeadHandler struct {
	leadRepo entity.LeadRepositoryInterface
}

func NewLeadHandler(leadRepo entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{leadRepo: leadRepo}
}

// HandleGet serves GET /leads/{phone}.
func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	phone := entity.NormalizePhone(chi.URLParam(r, "phone"))
	if phone == "" {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_PHONE", entity.ErrInvalidPhone.Error())
		return
	}

	lead, err := h.leadRepo.FindByPhone(r.Context(), phone)
	if errors.Is(err, entity.ErrLeadNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "LEAD_NOT_FOUND", "lead not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("phone", phone).Msg("❌ lead lookup failed")
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load lead")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}
