package billing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rsharma/sellsathi/internal/invoice"
	"github.com/rsharma/sellsathi/internal/ledger"
	"github.com/rsharma/sellsathi/internal/session"
)

type Handler struct {
	svc      *ledger.Service
	sess     *session.Session
	appName  string
	currency string
}

func NewHandler(svc *ledger.Service, sess *session.Session, appName, currency string) *Handler {
	return &Handler{
		svc:      svc,
		sess:     sess,
		appName:  appName,
		currency: currency,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}/invoice", h.invoiceDoc)
	r.Get("/draft", h.draft)
	r.Post("/draft/items", h.addItem)
	r.Delete("/draft/items/{index}", h.removeItem)
	r.Delete("/draft", h.clearDraft)
	r.Post("/finalize", h.finalize)
}

type lineItemResponse struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	LineTotal   int64  `json:"line_total"`
}

type billResponse struct {
	ID           uuid.UUID          `json:"id"`
	Date         time.Time          `json:"date"`
	CustomerName string             `json:"customer_name"`
	LineItems    []lineItemResponse `json:"line_items"`
	GrandTotal   int64              `json:"grand_total"`
}

func toLineItems(items []ledger.LineItem) []lineItemResponse {
	resp := make([]lineItemResponse, len(items))
	for i, li := range items {
		resp[i] = lineItemResponse{
			ProductName: li.ProductName,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			LineTotal:   li.LineTotal,
		}
	}

	return resp
}

func toBillResponse(b *ledger.Bill) billResponse {
	return billResponse{
		ID:           b.ID,
		Date:         b.Date,
		CustomerName: b.CustomerName,
		LineItems:    toLineItems(b.LineItems),
		GrandTotal:   b.GrandTotal,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.ListBills(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]billResponse, len(bills))
	for i, b := range bills {
		resp[i] = toBillResponse(b)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) invoiceDoc(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	bill, err := h.svc.GetBill(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrBillNotFound) {
			http.Error(w, "bill not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	profile, _ := h.sess.Profile()
	doc := invoice.Render(bill, invoice.BusinessInfo{
		AppName:      h.appName,
		BusinessName: profile.BusinessName,
		BusinessType: profile.BusinessType,
		Currency:     h.currency,
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+invoice.Filename(bill)+"\"")

	if _, err := w.Write([]byte(doc)); err != nil {
		slog.Error("failed to write invoice document", "error", err)
	}
}

type draftResponse struct {
	LineItems  []lineItemResponse `json:"line_items"`
	GrandTotal int64              `json:"grand_total"`
}

func (h *Handler) draft(w http.ResponseWriter, r *http.Request) {
	resp := draftResponse{
		LineItems:  toLineItems(h.svc.Draft()),
		GrandTotal: h.svc.DraftTotal(),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addItemRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	li, err := h.svc.AddDraftLineItem(r.Context(), req.ProductName, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrProductNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ledger.ErrExceedsAvailableStock):
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

	if err := json.NewEncoder(w).Encode(lineItemResponse{
		ProductName: li.ProductName,
		Quantity:    li.Quantity,
		UnitPrice:   li.UnitPrice,
		LineTotal:   li.LineTotal,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	if err := h.svc.RemoveDraftLineItem(index); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearDraft(w http.ResponseWriter, _ *http.Request) {
	h.svc.ClearDraft()
	w.WriteHeader(http.StatusNoContent)
}

type finalizeRequest struct {
	CustomerName string `json:"customer_name"`
	Date         string `json:"date,omitempty"`
}

func (h *Handler) finalize(w http.ResponseWriter, r *http.Request) {
	var req finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var date time.Time

	if req.Date != "" {
		parsed, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		date = parsed
	}

	bill, err := h.svc.FinalizeBill(r.Context(), req.CustomerName, date)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrEmptyBill), errors.Is(err, ledger.ErrMissingCustomerName):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ledger.ErrStockChanged):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toBillResponse(bill)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
