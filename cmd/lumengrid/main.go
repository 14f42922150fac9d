package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumengrid/lumengrid-quote/internal/app"
	"github.com/lumengrid/lumengrid-quote/internal/catalog"
	"github.com/lumengrid/lumengrid-quote/internal/observability"
	"github.com/lumengrid/lumengrid-quote/internal/platform/cache"
	"github.com/lumengrid/lumengrid-quote/internal/pricing"
	"github.com/lumengrid/lumengrid-quote/internal/quotes"
	"github.com/lumengrid/lumengrid-quote/internal/reporting"
	"github.com/lumengrid/lumengrid-quote/internal/salesteam"
	"github.com/lumengrid/lumengrid-quote/internal/shared"
	"github.com/lumengrid/lumengrid-quote/jobs"
)

// headerCreator resolves the acting sales user from the identity header set
// by the upstream gateway. Authentication itself happens before this service.
func headerCreator(users salesteam.Repository) quotes.CreatorResolver {
	return func(r *http.Request) (salesteam.SalesUser, error) {
		raw := r.Header.Get("X-Sales-User-Id")
		if raw == "" {
			return salesteam.SalesUser{}, shared.ErrValidation
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return salesteam.SalesUser{}, shared.ErrValidation
		}
		u, err := users.Get(r.Context(), id)
		if err != nil {
			return salesteam.SalesUser{}, err
		}
		return *u, nil
	}
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	productCatalog, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		logger.Error("load catalog", slog.String("path", cfg.CatalogPath), slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	calculator := pricing.NewCalculator()

	usersRepo := salesteam.NewRepository(dbpool)
	quotesRepo := quotes.NewRepository(dbpool)

	notifier, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, logger)
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	quoteService := quotes.NewService(quotesRepo, usersRepo, productCatalog, calculator, notifier)

	reportCache := reporting.NewCache(redisClient, cfg.ReportTTL)
	if err := reportCache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("cache invalidation listener", slog.Any("error", err))
	}
	reportService := reporting.NewService(reporting.NewRepository(dbpool), usersRepo, reportCache)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CatalogHandler:   catalog.NewHandler(logger, productCatalog),
		PricingHandler:   pricing.NewHandler(logger, productCatalog, calculator),
		QuotesHandler:    quotes.NewHandler(logger, quoteService, headerCreator(usersRepo)),
		ReportingHandler: reporting.NewHandler(logger, reportService),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
