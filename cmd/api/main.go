package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/milk-ledger/internal/application/service"
	"github.com/sangkips/milk-ledger/internal/config"
	"github.com/sangkips/milk-ledger/internal/infrastructure/repository"
	"github.com/sangkips/milk-ledger/internal/presentation/http/handler"
	"github.com/sangkips/milk-ledger/internal/presentation/http/routes"
	"github.com/sangkips/milk-ledger/pkg/printer"
	"github.com/sangkips/milk-ledger/pkg/whatsapp"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.App.SlogLevel()}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the ledger store
	store, closeStore, err := repository.OpenLedgerStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open ledger store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close ledger store", "error", err)
		}
	}()

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		logger.Warn("failed to initialize printer, printing disabled", "error", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	links := whatsapp.NewLinkBuilder(cfg.Bill.WhatsAppBaseURL, cfg.Bill.DefaultCountryCode)
	ledgerService := service.NewLedgerService(store, cfg.Ledger.Locale, logger)
	billService := service.NewBillService(ledgerService, links, cfg.Bill.CurrencySymbol, cfg.Bill.SellerName)
	reportService := service.NewReportService(ledgerService)
	printerService := service.NewPrinterService(thermalPrinter, ledgerService, cfg.Printer.Type, cfg.Printer.Width, cfg.Bill.SellerName, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Customer: handler.NewCustomerHandler(ledgerService),
		Ledger:   handler.NewLedgerHandler(ledgerService),
		Bill:     handler.NewBillHandler(billService),
		Report:   handler.NewReportHandler(reportService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	rateLimiter := routes.NewRateLimiter(&cfg.RateLimit)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:         cfg,
		Logger:      logger,
		RateLimiter: rateLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"app", cfg.App.Name,
			"env", cfg.App.Env,
			"port", cfg.App.Port,
			"store", cfg.Store.Driver,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
