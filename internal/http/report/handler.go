package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rsharma/sellsathi/internal/report"
)

const defaultTopN = 3

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/metrics", h.metrics)
	r.Get("/top-products", h.topProducts)
	r.Get("/bottom-products", h.bottomProducts)
	r.Get("/top-profit", h.topProfit)
	r.Get("/trend", h.trend)
}

type metricsResponse struct {
	TodaySales         int64 `json:"today_sales"`
	TodayProfit        int64 `json:"today_profit"`
	TodayExpenditure   int64 `json:"today_expenditure"`
	MonthlySales       int64 `json:"monthly_sales"`
	MonthlyProfit      int64 `json:"monthly_profit"`
	MonthlyExpenditure int64 `json:"monthly_expenditure"`
}

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Metrics(r.Context(), time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, metricsResponse{
		TodaySales:         m.TodaySales,
		TodayProfit:        m.TodayProfit,
		TodayExpenditure:   m.TodayExpenditure,
		MonthlySales:       m.MonthlySales,
		MonthlyProfit:      m.MonthlyProfit,
		MonthlyExpenditure: m.MonthlyExpenditure,
	})
}

type productTotalResponse struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.TopProducts(r.Context(), queryN(r, defaultTopN))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toProductTotals(totals))
}

func (h *Handler) bottomProducts(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.BottomProducts(r.Context(), queryN(r, defaultTopN))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toProductTotals(totals))
}

type productProfitResponse struct {
	ProductName string `json:"product_name"`
	Profit      int64  `json:"profit"`
}

func (h *Handler) topProfit(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.TopProfitProducts(r.Context(), queryN(r, 10))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]productProfitResponse, len(totals))
	for i, t := range totals {
		resp[i] = productProfitResponse{ProductName: t.ProductName, Profit: t.Profit}
	}

	writeJSON(w, resp)
}

type trendPointResponse struct {
	Date       string `json:"date"`
	SaleAmount int64  `json:"sale_amount"`
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.DailyTrend(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]trendPointResponse, len(points))
	for i, p := range points {
		resp[i] = trendPointResponse{
			Date:       p.Date.Format(time.DateOnly),
			SaleAmount: p.SaleAmount,
		}
	}

	writeJSON(w, resp)
}

func toProductTotals(totals []report.ProductTotal) []productTotalResponse {
	resp := make([]productTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = productTotalResponse{ProductName: t.ProductName, Quantity: t.Quantity}
	}

	return resp
}

func queryN(r *http.Request, fallback int) int {
	s := r.URL.Query().Get("n")
	if s == "" {
		return fallback
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fallback
	}

	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
