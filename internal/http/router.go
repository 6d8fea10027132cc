package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rsharma/sellsathi/internal/http/billing"
	"github.com/rsharma/sellsathi/internal/http/importcsv"
	"github.com/rsharma/sellsathi/internal/http/report"
	"github.com/rsharma/sellsathi/internal/http/sale"
	"github.com/rsharma/sellsathi/internal/http/session"
	"github.com/rsharma/sellsathi/internal/http/stock"
)

func New(
	sessionV1 *session.Handler,
	stockV1 *stock.Handler,
	saleV1 *sale.Handler,
	billingV1 *billing.Handler,
	reportV1 *report.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			sessionV1.Routes(r)
		})

		r.Route("/stock", func(r chi.Router) {
			stockV1.Routes(r)
		})

		r.Route("/stock-import", importV1.Routes)

		r.Route("/sales", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			saleV1.Routes(r)
		})

		r.Route("/bills", func(r chi.Router) {
			billingV1.Routes(r)
		})

		r.Route("/reports", func(r chi.Router) {
			reportV1.Routes(r)
		})
	})

	return router
}
