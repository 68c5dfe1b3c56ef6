package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Item is a skin that can be won from a case.
type Item struct {
	ID       int    `json:"id"`
	CaseID   int    `json:"case_id"`
	Name     string `json:"name"`
	Rarity   Rarity `json:"rarity"`
	Value    int64  `json:"value"`
	ImageURL string `json:"image_url,omitempty"`
}

// MarshalJSON adds the player-facing rarity name next to the stored tier.
func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	return json.Marshal(struct {
		plain
		RarityName string `json:"rarity_name"`
	}{plain(i), i.Rarity.DisplayName()})
}

// Case is a container with a fixed, ordered item pool.
type Case struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
	Items    []Item `json:"items,omitempty"`
}

// ItemSource records how an inventory entry was obtained.
type ItemSource string

const (
	ItemSourceCase   ItemSource = "case"
	ItemSourceBattle ItemSource = "battle"
)

// InventoryItem is one owned copy of an item.
type InventoryItem struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Item       Item       `json:"item"`
	Source     ItemSource `json:"source"`
	AcquiredAt time.Time  `json:"acquired_at"`
}

// ItemGrant is a request to add an item to a user's inventory.
type ItemGrant struct {
	UserID uuid.UUID
	ItemID int
	Source ItemSource
}
