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

	"github.com/joho/godotenv"

	"github.com/bodega-app/bodega/internal/app"
	"github.com/bodega-app/bodega/internal/masterdata"
	"github.com/bodega-app/bodega/internal/masterdata/categories"
	"github.com/bodega-app/bodega/internal/masterdata/products"
	"github.com/bodega-app/bodega/internal/masterdata/suppliers"
	"github.com/bodega-app/bodega/internal/platform/db"
	"github.com/bodega-app/bodega/internal/purchases"
	"github.com/bodega-app/bodega/internal/reports"
	"github.com/bodega-app/bodega/internal/sales"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, db.Options{
		MaxConns:        cfg.PGMaxConns,
		MaxConnLifetime: cfg.PGConnLifetime,
	})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	productsService := products.NewService(products.NewRepository(pool))
	categoriesService := categories.NewService(categories.NewRepository(pool))
	suppliersService := suppliers.NewService(suppliers.NewRepository(pool))
	masterDataHandler := masterdata.NewHandler(
		products.NewHandler(logger, productsService),
		categories.NewHandler(logger, categoriesService),
		suppliers.NewHandler(logger, suppliersService),
	)

	purchasesService := purchases.NewService(purchases.NewRepository(pool))
	purchasesHandler := purchases.NewHandler(logger, purchasesService)

	salesService := sales.NewService(sales.NewRepository(pool))
	salesHandler := sales.NewHandler(logger, salesService)

	reportsService := reports.NewService(reports.NewRepository(pool), cfg.LowStockThreshold)
	reportsHandler := reports.NewHandler(logger, reportsService)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		MasterDataHandler: masterDataHandler,
		PurchasesHandler:  purchasesHandler,
		SalesHandler:      salesHandler,
		ReportsHandler:    reportsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
