package handler

import (
	"net/http"
	"time"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/economy"
	"github.com/tebnews/TEBNews_Go/internal/logger"
	"github.com/tebnews/TEBNews_Go/internal/user"
)

// TokenIssuer signs player bearer tokens
type TokenIssuer interface {
	Issue(user *domain.User) (string, time.Time, error)
}

// UserHandler handles account provisioning and profile requests
type UserHandler struct {
	userService    user.Service
	economyService economy.Service
	tokens         TokenIssuer
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService user.Service, economyService economy.Service, tokens TokenIssuer) *UserHandler {
	return &UserHandler{
		userService:    userService,
		economyService: economyService,
		tokens:         tokens,
	}
}

// RegisterUserRequest is the admin request to provision a player
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,username"`
}

// RegisterUserResponse carries the new account and its bearer token
type RegisterUserResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// HandleRegisterUser provisions a player account funded with the starting balance
// @Summary Provision user
// @Description Creates a player and returns a bearer token for it
// @Tags admin
// @Accept json
// @Produce json
// @Param request body RegisterUserRequest true "New user"
// @Success 201 {object} RegisterUserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users [post]
func (h *UserHandler) HandleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
		return
	}

	u, err := h.userService.Register(r.Context(), req.Username)
	if err != nil {
		respondServiceError(w, r, ErrMsgRegisterUserFailed, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(u)
	if err != nil {
		respondServiceError(w, r, ErrMsgIssueTokenFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgUserRegistered, "user_id", u.ID, "username", u.Username)

	respondJSON(w, http.StatusCreated, RegisterUserResponse{
		User:      u,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// HandleGetMe returns the authenticated player with a live balance
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *UserHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	u, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetUserFailed, err)
		return
	}

	// Cached profiles may lag a concurrent wager
	balance, err := h.economyService.GetBalance(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetUserFailed, err)
		return
	}

	me := *u
	me.Balance = balance
	respondJSON(w, http.StatusOK, me)
}
