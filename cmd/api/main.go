package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/rsharma/sellsathi/internal/config"
	sellsathiHttp "github.com/rsharma/sellsathi/internal/http"
	billingHandler "github.com/rsharma/sellsathi/internal/http/billing"
	importHandler "github.com/rsharma/sellsathi/internal/http/importcsv"
	reportHandler "github.com/rsharma/sellsathi/internal/http/report"
	saleHandler "github.com/rsharma/sellsathi/internal/http/sale"
	sessionHandler "github.com/rsharma/sellsathi/internal/http/session"
	stockHandler "github.com/rsharma/sellsathi/internal/http/stock"
	"github.com/rsharma/sellsathi/internal/importer"
	"github.com/rsharma/sellsathi/internal/ledger"
	ledgerStore "github.com/rsharma/sellsathi/internal/ledger/store"
	"github.com/rsharma/sellsathi/internal/report"
	"github.com/rsharma/sellsathi/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		ledgerService = ledger.NewService(ledgerStore.New())
		sess          = session.New(ledgerService)
		reportService = report.NewService(ledgerService)
		importService = importer.NewService()
	)

	var (
		sessionH = sessionHandler.NewHandler(sess)
		stockH   = stockHandler.NewHandler(ledgerService)
		saleH    = saleHandler.NewHandler(ledgerService)
		billingH = billingHandler.NewHandler(ledgerService, sess, cfg.App.Name, cfg.App.Currency)
		reportH  = reportHandler.NewHandler(reportService)
		importH  = importHandler.NewHandler(importService, ledgerService)
	)

	router := sellsathiHttp.New(sessionH, stockH, saleH, billingH, reportH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
