package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/gym-leadbot/internal/entity"
)

func getLead(h *LeadHandler, phone string) *httptest.ResponseRecorder {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("phone", phone)
	req := httptest.NewRequest(http.MethodGet, "/leads/lookup", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)
	return rec
}

func TestLeadHandlerReturnsLead(t *testing.T) {
	repo := new(MockLeadRepo)
	repo.On("FindByPhone", mock.Anything, "919876543210").
		Return(&entity.Lead{Phone: "919876543210", Name: "Asha", LeadType: entity.TierHot}, nil)

	rec := getLead(NewLeadHandler(repo), "+91 98765-43210")

	require.Equal(t, http.StatusOK, rec.Code)
	var lead entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	assert.Equal(t, "Asha", lead.Name)
	assert.Equal(t, entity.TierHot, lead.LeadType)
}

func TestLeadHandlerNotFound(t *testing.T) {
	repo := new(MockLeadRepo)
	repo.On("FindByPhone", mock.Anything, "919876543210").Return(nil, entity.ErrLeadNotFound)

	rec := getLead(NewLeadHandler(repo), "919876543210")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadHandlerErrors(t *testing.T) {
	repo := new(MockLeadRepo)
	repo.On("FindByPhone", mock.Anything, "919876543210").Return(nil, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, getLead(NewLeadHandler(repo), "919876543210").Code)
	assert.Equal(t, http.StatusBadRequest, getLead(NewLeadHandler(repo), "abc").Code)
}
