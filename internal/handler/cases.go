package handler

import (
	"net/http"

	"github.com/tebnews/TEBNews_Go/internal/caseopen"
	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// CaseHandler handles the case catalog and case openings
type CaseHandler struct {
	service caseopen.Service
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(service caseopen.Service) *CaseHandler {
	return &CaseHandler{service: service}
}

// OpenCaseRequest is the optional body of an open request
type OpenCaseRequest struct {
	QuickSell bool `json:"quick_sell"`
}

// CasesResponse lists the catalog
type CasesResponse struct {
	Cases []domain.Case `json:"cases"`
}

// HandleListCases lists every case without its item pool
// @Summary List cases
// @Tags cases
// @Produce json
// @Success 200 {object} CasesResponse
// @Security BearerAuth
// @Router /cases [get]
func (h *CaseHandler) HandleListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.service.ListCases(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgListCasesFailed, err)
		return
	}
	if cases == nil {
		cases = []domain.Case{}
	}
	respondJSON(w, http.StatusOK, CasesResponse{Cases: cases})
}

// HandleGetCase returns a case with its ordered item pool
// @Summary Get case
// @Tags cases
// @Produce json
// @Param id path int true "Case id"
// @Success 200 {object} domain.Case
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id} [get]
func (h *CaseHandler) HandleGetCase(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	c, err := h.service.GetCase(r.Context(), caseID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetCaseFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// HandleOpenCase charges the case price and draws one item
// @Summary Open case
// @Description With quick_sell the drawn item is credited at its value instead of added to the inventory
// @Tags cases
// @Accept json
// @Produce json
// @Param id path int true "Case id"
// @Param request body OpenCaseRequest false "Open options"
// @Success 200 {object} caseopen.OpenResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/open [post]
func (h *CaseHandler) HandleOpenCase(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	caseID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	var req OpenCaseRequest
	if err := decodeOptionalRequest(r, w, &req, "Open case"); err != nil {
		return
	}

	result, err := h.service.OpenCase(r.Context(), userID, caseID, req.QuickSell)
	if err != nil {
		respondServiceError(w, r, ErrMsgOpenCaseFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
