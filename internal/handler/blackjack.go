package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tebnews/TEBNews_Go/internal/blackjack"
	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// BlackjackHandler serves blackjack turns. Game state travels in a signed cookie, never in the body.
type BlackjackHandler struct {
	service  blackjack.Service
	stateTTL time.Duration
}

// NewBlackjackHandler creates a new blackjack handler. stateTTL should match the service's state expiry.
func NewBlackjackHandler(service blackjack.Service, stateTTL time.Duration) *BlackjackHandler {
	return &BlackjackHandler{service: service, stateTTL: stateTTL}
}

// DealRequest starts a hand
type DealRequest struct {
	Bet int64 `json:"bet" validate:"required,gte=1"`
}

// BlackjackResponse wraps the visible table
type BlackjackResponse struct {
	Game domain.GameView `json:"game"`
}

type blackjackAction func(ctx context.Context, userID uuid.UUID, state string) (*blackjack.Result, error)

// HandleDeal debits the bet and deals the opening hands
// @Summary Deal blackjack hand
// @Tags blackjack
// @Accept json
// @Produce json
// @Param request body DealRequest true "Bet"
// @Success 200 {object} BlackjackResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /blackjack/deal [post]
func (h *BlackjackHandler) HandleDeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req DealRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Blackjack deal"); err != nil {
		return
	}

	result, err := h.service.Deal(r.Context(), userID, req.Bet)
	if err != nil {
		respondServiceError(w, r, ErrMsgBlackjackFailed, err)
		return
	}
	h.respond(w, result)
}

// HandleHit draws one card for the player
// @Summary Hit
// @Tags blackjack
// @Produce json
// @Success 200 {object} BlackjackResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /blackjack/hit [post]
func (h *BlackjackHandler) HandleHit(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, h.service.Hit)
}

// HandleStand plays out the dealer and settles the hand
// @Summary Stand
// @Tags blackjack
// @Produce json
// @Success 200 {object} BlackjackResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /blackjack/stand [post]
func (h *BlackjackHandler) HandleStand(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, h.service.Stand)
}

// HandleDouble doubles the bet, draws once and stands
// @Summary Double down
// @Tags blackjack
// @Produce json
// @Success 200 {object} BlackjackResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /blackjack/double [post]
func (h *BlackjackHandler) HandleDouble(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, h.service.Double)
}

func (h *BlackjackHandler) handleAction(w http.ResponseWriter, r *http.Request, action blackjackAction) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	cookie, err := r.Cookie(GameStateCookie)
	if err != nil || cookie.Value == "" {
		respondError(w, http.StatusBadRequest, ErrMsgMissingGameState)
		return
	}

	result, err := action(r.Context(), userID, cookie.Value)
	if err != nil {
		// A rejected state can never be played again
		if errors.Is(err, domain.ErrInvalidState) {
			h.clearState(w)
		}
		respondServiceError(w, r, ErrMsgBlackjackFailed, err)
		return
	}
	h.respond(w, result)
}

func (h *BlackjackHandler) respond(w http.ResponseWriter, result *blackjack.Result) {
	if result.Clear {
		h.clearState(w)
	} else {
		http.SetCookie(w, h.stateCookie(result.State, int(h.stateTTL.Seconds())))
	}
	respondJSON(w, http.StatusOK, BlackjackResponse{Game: result.View})
}

func (h *BlackjackHandler) clearState(w http.ResponseWriter) {
	http.SetCookie(w, h.stateCookie("", -1))
}

func (h *BlackjackHandler) stateCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     GameStateCookie,
		Value:    value,
		Path:     GameStateCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
