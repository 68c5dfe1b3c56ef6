package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tebnews/TEBNews_Go/internal/battle"
	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/sse"
)

// BattleHandler handles case battles and their live streams
type BattleHandler struct {
	service battle.Service
	hub     *sse.Hub
}

// NewBattleHandler creates a new battle handler
func NewBattleHandler(service battle.Service, hub *sse.Hub) *BattleHandler {
	return &BattleHandler{service: service, hub: hub}
}

// CreateBattleRequest opens a battle on a case for a number of rounds
type CreateBattleRequest struct {
	CaseID int `json:"case_id" validate:"required,gte=1"`
	Rounds int `json:"rounds" validate:"required,gte=1,lte=10"`
}

// BattlesResponse lists waiting battles
type BattlesResponse struct {
	Battles []domain.Battle `json:"battles"`
}

// HandleCreateBattle charges the creator and opens a battle in the lobby
// @Summary Create battle
// @Tags battles
// @Accept json
// @Produce json
// @Param request body CreateBattleRequest true "Battle"
// @Success 201 {object} battle.CreateResult
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /battles [post]
func (h *BattleHandler) HandleCreateBattle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateBattleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create battle"); err != nil {
		return
	}

	result, err := h.service.CreateBattle(r.Context(), userID, req.CaseID, req.Rounds)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateBattleFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// HandleBotBattle resolves a battle against the house immediately
// @Summary Battle the bot
// @Tags battles
// @Accept json
// @Produce json
// @Param request body CreateBattleRequest true "Battle"
// @Success 200 {object} domain.BattleResult
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /battles/bot [post]
func (h *BattleHandler) HandleBotBattle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateBattleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Bot battle"); err != nil {
		return
	}

	result, err := h.service.BotBattle(r.Context(), userID, req.CaseID, req.Rounds)
	if err != nil {
		respondServiceError(w, r, ErrMsgBotBattleFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleJoinBattle pays the entry cost and resolves every round
// @Summary Join battle
// @Tags battles
// @Produce json
// @Param id path string true "Battle id"
// @Success 200 {object} domain.BattleResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /battles/{id}/join [post]
func (h *BattleHandler) HandleJoinBattle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	battleID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.service.JoinBattle(r.Context(), userID, battleID)
	if err != nil {
		respondServiceError(w, r, ErrMsgJoinBattleFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleGetBattle returns one battle with its rounds
// @Summary Get battle
// @Tags battles
// @Produce json
// @Param id path string true "Battle id"
// @Success 200 {object} domain.Battle
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /battles/{id} [get]
func (h *BattleHandler) HandleGetBattle(w http.ResponseWriter, r *http.Request) {
	battleID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	b, err := h.service.GetBattle(r.Context(), battleID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetBattleFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// HandleListBattles lists battles waiting for a joiner, newest first
// @Summary List waiting battles
// @Tags battles
// @Produce json
// @Param limit query int false "Max battles"
// @Success 200 {object} BattlesResponse
// @Security BearerAuth
// @Router /battles [get]
func (h *BattleHandler) HandleListBattles(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	battles, err := h.service.ListWaitingBattles(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, ErrMsgListBattlesFailed, err)
		return
	}
	if battles == nil {
		battles = []domain.Battle{}
	}
	respondJSON(w, http.StatusOK, BattlesResponse{Battles: battles})
}

// HandleBattleEvents streams one battle over SSE. The connected event carries the current battle.
// @Summary Battle event stream
// @Tags battles
// @Produce text/event-stream
// @Param id path string true "Battle id"
// @Param types query string false "Comma-separated event types"
// @Router /battles/{id}/events [get]
func (h *BattleHandler) HandleBattleEvents(w http.ResponseWriter, r *http.Request) {
	battleID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := sse.ServeStream(w, r, h.hub, sse.BattleTopic(battleID), h.battleSnapshot(battleID)); err != nil {
		respondServiceError(w, r, ErrMsgStreamBattleFailed, err)
	}
}

// HandleBattleWebSocket streams one battle over a WebSocket
// @Summary Battle WebSocket
// @Tags battles
// @Param id path string true "Battle id"
// @Router /battles/{id}/ws [get]
func (h *BattleHandler) HandleBattleWebSocket(w http.ResponseWriter, r *http.Request) {
	battleID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := sse.ServeWebSocket(w, r, h.hub, sse.BattleTopic(battleID), h.battleSnapshot(battleID)); err != nil {
		respondServiceError(w, r, ErrMsgStreamBattleFailed, err)
	}
}

// HandleLobbyEvents streams battle creation and completion for the whole lobby
// @Summary Lobby event stream
// @Tags battles
// @Produce text/event-stream
// @Router /battles/events [get]
func (h *BattleHandler) HandleLobbyEvents(w http.ResponseWriter, r *http.Request) {
	if err := sse.ServeStream(w, r, h.hub, sse.LobbyTopic, h.lobbySnapshot); err != nil {
		respondServiceError(w, r, ErrMsgStreamBattleFailed, err)
	}
}

// battleSnapshot loads the battle a stream is opened for so late viewers still see the result
func (h *BattleHandler) battleSnapshot(battleID uuid.UUID) sse.SnapshotFunc {
	return func(ctx context.Context) (interface{}, error) {
		return h.service.GetBattle(ctx, battleID)
	}
}

func (h *BattleHandler) lobbySnapshot(ctx context.Context) (interface{}, error) {
	battles, err := h.service.ListWaitingBattles(ctx, 0)
	if err != nil {
		return nil, err
	}
	if battles == nil {
		battles = []domain.Battle{}
	}
	return BattlesResponse{Battles: battles}, nil
}
