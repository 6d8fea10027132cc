package stock

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rsharma/sellsathi/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

type stockItemResponse struct {
	Name           string `json:"name"`
	BuyPrice       int64  `json:"buy_price"`
	SellPrice      int64  `json:"sell_price"`
	QuantityOnHand int64  `json:"quantity_on_hand"`
	SalesCount     int64  `json:"sales_count"`
}

func toResponse(item *ledger.StockItem) stockItemResponse {
	return stockItemResponse{
		Name:           item.Name,
		BuyPrice:       item.BuyPrice,
		SellPrice:      item.SellPrice,
		QuantityOnHand: item.QuantityOnHand,
		SalesCount:     item.SalesCount,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.SearchStock(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]stockItemResponse, len(items))
	for i, item := range items {
		resp[i] = toResponse(item)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createStockRequest struct {
	Name      string `json:"name"`
	BuyPrice  int64  `json:"buy_price"`
	SellPrice int64  `json:"sell_price"`
	Quantity  int64  `json:"quantity"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.svc.AddStockItem(r.Context(), ledger.AddStockParams{
		Name:      req.Name,
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		Quantity:  req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrDuplicateProduct):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, ledger.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(item)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
