package handler

import (
	"net/http"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/economy"
)

// InventoryHandler handles inventory listing and item sales
type InventoryHandler struct {
	service economy.Service
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service economy.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// InventoryResponse lists the items a player owns
type InventoryResponse struct {
	Items []domain.InventoryItem `json:"items"`
}

// HandleGetInventory lists the authenticated player's items, newest first
// @Summary List inventory
// @Tags inventory
// @Produce json
// @Success 200 {object} InventoryResponse
// @Security BearerAuth
// @Router /inventory [get]
func (h *InventoryHandler) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListInventory(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetInventoryFailed, err)
		return
	}
	if items == nil {
		items = []domain.InventoryItem{}
	}

	respondJSON(w, http.StatusOK, InventoryResponse{Items: items})
}

// HandleSellItem sells one owned inventory entry for its value
// @Summary Sell item
// @Tags inventory
// @Produce json
// @Param id path string true "Inventory item id"
// @Success 200 {object} economy.SellResult
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/{id}/sell [post]
func (h *InventoryHandler) HandleSellItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	inventoryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.service.SellItem(r.Context(), userID, inventoryID)
	if err != nil {
		respondServiceError(w, r, ErrMsgSellItemFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
