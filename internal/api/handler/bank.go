package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/showquiz/tvtrivia/internal/ai"
	"github.com/showquiz/tvtrivia/internal/api/request"
	"github.com/showquiz/tvtrivia/internal/api/response"
	"github.com/showquiz/tvtrivia/internal/services/bank"
)

// BankHandler handles question bank endpoints
type BankHandler struct {
	bankService *bank.Service
}

// NewBankHandler creates a new bank handler
func NewBankHandler(bankService *bank.Service) *BankHandler {
	return &BankHandler{bankService: bankService}
}

// GetLatest handles GET /api/v1/questions/{decade}
func (h *BankHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	b, err := h.bankService.GetLatest(r.Context(), mux.Vars(r)["decade"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BankFromModel(b))
}

// Status handles GET /api/v1/questions/{decade}/status
// Selected shows may be passed as repeated "show" query params to check
// whether the stored bank matches them.
func (h *BankHandler) Status(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query()["show"]

	status, err := h.bankService.Status(r.Context(), mux.Vars(r)["decade"], selected)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BankStatusFromModel(status))
}

// Seed handles POST /api/v1/questions/seed (requires auth)
func (h *BankHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var req request.SeedBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if len(req.Shows) == 0 {
		WriteError(w, NewInvalidRequestError("At least one show is required"))
		return
	}

	b, err := h.bankService.Seed(r.Context(), req.Decade, req.Shows, req.QuestionsPerShow, ai.DefaultDifficultyMix(), req.Seed)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.BankFromModel(b))
}

// PopularShows handles GET /api/v1/decades/{decade}/popular-shows (requires auth)
func (h *BankHandler) PopularShows(w http.ResponseWriter, r *http.Request) {
	decade := mux.Vars(r)["decade"]

	titles, err := h.bankService.PopularShows(r.Context(), decade)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Shows{Decade: decade, Shows: titles})
}
