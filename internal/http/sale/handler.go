package sale

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rsharma/sellsathi/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

type saleRecordResponse struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	SaleAmount  int64     `json:"sale_amount"`
	CostAmount  int64     `json:"cost_amount"`
	Profit      int64     `json:"profit"`
}

func toResponse(rec *ledger.SaleRecord) saleRecordResponse {
	return saleRecordResponse{
		ID:          rec.ID,
		Date:        rec.Date,
		ProductName: rec.ProductName,
		Quantity:    rec.Quantity,
		SaleAmount:  rec.SaleAmount,
		CostAmount:  rec.CostAmount,
		Profit:      rec.Profit,
	}
}

type createSaleRequest struct {
	ProductName   string `json:"product_name"`
	UnitBuyPrice  int64  `json:"unit_buy_price,omitempty"`
	UnitSellPrice int64  `json:"unit_sell_price,omitempty"`
	Quantity      int64  `json:"quantity"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.RecordDirectSale(r.Context(), ledger.SaleParams{
		ProductName:   req.ProductName,
		UnitBuyPrice:  req.UnitBuyPrice,
		UnitSellPrice: req.UnitSellPrice,
		Quantity:      req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrProductNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ledger.ErrInsufficientStock):
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

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListSales(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]saleRecordResponse, len(records))
	for i, rec := range records {
		resp[i] = toResponse(rec)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
