package handlers

import (
	"net/http"

	"gametrack-backend/internal/cache"
	"gametrack-backend/internal/locations"
	"gametrack-backend/internal/models"
	"gametrack-backend/internal/services"
	"gametrack-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// SellerHandler covers the per-location kiosk surface: opening and
// closing games, selling tickets, and paying winners.
type SellerHandler struct {
	lifecycle *services.LifecycleService
}

func NewSellerHandler(lifecycle *services.LifecycleService) *SellerHandler {
	return &SellerHandler{lifecycle: lifecycle}
}

func pathLocation(r *http.Request) string {
	return mux.Vars(r)["loc"]
}

// OpenCheck confirms a key sits in this location's Inventory.
func (h *SellerHandler) OpenCheck(w http.ResponseWriter, r *http.Request) {
	h.check(w, r, locations.StageInventory)
}

// CloseCheck confirms a key sits in this location's Open stage.
func (h *SellerHandler) CloseCheck(w http.ResponseWriter, r *http.Request) {
	h.check(w, r, locations.StageOpen)
}

func (h *SellerHandler) check(w http.ResponseWriter, r *http.Request, stage locations.Stage) {
	var req struct {
		Key string `json:"key"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Key == "" {
		utils.Fail(w, http.StatusBadRequest, "key is required")
		return
	}

	g, err := h.lifecycle.FindStaged(r.Context(), stage, pathLocation(r), req.Key)
	if err != nil {
		writeError(w, err)
		return
	}
	if g == nil {
		utils.OK(w, map[string]interface{}{"found": false})
		return
	}
	utils.OK(w, map[string]interface{}{"found": true, "row": g})
}

// OpenConfirm moves a game from Inventory to Open, optionally into a
// selling box.
func (h *SellerHandler) OpenConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key       string `json:"key"`
		BoxNumber *int   `json:"boxNumber"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Key == "" {
		utils.Fail(w, http.StatusBadRequest, "key is required")
		return
	}

	if _, err := h.lifecycle.OpenGame(r.Context(), pathLocation(r), req.Key, req.BoxNumber); err != nil {
		writeError(w, err)
		return
	}
	cache.InvalidateDashboard(r.Context())
	utils.OK(w, map[string]interface{}{"moved": true})
}

// CloseConfirm moves a game from Open to Closed with its counted
// cash.
func (h *SellerHandler) CloseConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key      string  `json:"key"`
		CashHand float64 `json:"cashHand"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Key == "" {
		utils.Fail(w, http.StatusBadRequest, "key is required")
		return
	}

	if _, err := h.lifecycle.CloseGame(r.Context(), pathLocation(r), req.Key, req.CashHand); err != nil {
		writeError(w, err)
		return
	}
	cache.InvalidateDashboard(r.Context())
	utils.OK(w, map[string]interface{}{"moved": true})
}

// Sell records a ticket sale against an open game, located by key or
// box number.
func (h *SellerHandler) Sell(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key           string   `json:"key"`
		BoxNumber     *int     `json:"boxNumber"`
		TicketsSold   *int     `json:"ticketsSold"`
		MoneyInserted *float64 `json:"moneyInserted"`
	}
	if !decode(w, r, &req) {
		return
	}

	g, err := h.lifecycle.SellTickets(r.Context(), pathLocation(r), req.Key, req.BoxNumber, req.TicketsSold, req.MoneyInserted)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.OK(w, map[string]interface{}{
		"ticketsSold":    g.TicketsSold,
		"currentTickets": g.CurrentTickets,
		"cashHand":       g.CashHand,
	})
}

// Winner records paid winners against an open game.
func (h *SellerHandler) Winner(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key         string  `json:"key"`
		BoxNumber   *int    `json:"boxNumber"`
		WinnersPaid int     `json:"winnersPaid"`
		PayoutCash  float64 `json:"payoutCash"`
	}
	if !decode(w, r, &req) {
		return
	}

	g, err := h.lifecycle.RecordWinners(r.Context(), pathLocation(r), req.Key, req.BoxNumber, req.WinnersPaid, req.PayoutCash)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.OK(w, map[string]interface{}{
		"winnersSold":    g.WinnersSold,
		"currentWinners": g.CurrentWinners,
		"cashHand":       g.CashHand,
	})
}

// OpenGames lists this location's boxed open games for the selling
// board.
func (h *SellerHandler) OpenGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.lifecycle.OpenBoxes(r.Context(), pathLocation(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if games == nil {
		games = []models.GameRecord{}
	}
	utils.OK(w, map[string]interface{}{"games": games})
}
