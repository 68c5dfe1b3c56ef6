package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a player account with a currency balance.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Balance   int64     `json:"balance"`
	IsBot     bool      `json:"is_bot"`
	CreatedAt time.Time `json:"created_at"`
}
