package handler

import (
	"net/http"

	"github.com/tebnews/TEBNews_Go/internal/slots"
)

// SlotsHandler handles slots-related HTTP requests
type SlotsHandler struct {
	service slots.Service
}

// NewSlotsHandler creates a new slots handler
func NewSlotsHandler(service slots.Service) *SlotsHandler {
	return &SlotsHandler{service: service}
}

// SpinSlotsRequest represents a request to spin the slots
type SpinSlotsRequest struct {
	Bet int64 `json:"bet" validate:"required,gte=10,lte=10000"`
}

// HandleSpinSlots processes a slots spin request
// @Summary Spin slots
// @Tags slots
// @Accept json
// @Produce json
// @Param request body SpinSlotsRequest true "Bet"
// @Success 200 {object} domain.SlotsResult
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /slots/spin [post]
func (h *SlotsHandler) HandleSpinSlots(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SpinSlotsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spin slots"); err != nil {
		return
	}

	result, err := h.service.Spin(r.Context(), userID, req.Bet)
	if err != nil {
		respondServiceError(w, r, ErrMsgSpinFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
