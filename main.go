package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zhima-Mochi/minishop-pos/internal/application/shop"
	"github.com/Zhima-Mochi/minishop-pos/internal/config"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/catalog"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/id"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/observability/telemetry"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/Zhima-Mochi/minishop-pos/internal/pkg/logging"
	"github.com/Zhima-Mochi/minishop-pos/internal/pkg/money"
	httppresentation "github.com/Zhima-Mochi/minishop-pos/internal/presentation/http"
	workerpresentation "github.com/Zhima-Mochi/minishop-pos/internal/presentation/worker"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv(nil)
	if err != nil {
		return err
	}

	baseLogger, err := logging.NewLogger(logging.Options{
		Service: cfg.ServiceName,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := zaplogger.New(logging.WithTrace(baseLogger, logging.SystemTraceID, logging.SystemSpanID))

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	tel := telemetry.FromSpecs(
		oteltrace.New(cfg.ServiceName),
		zaplogger.New(baseLogger),
		prometrics.New(prometheus.DefaultRegisterer, "", ""),
		observability.StandardMetrics(),
	)

	promos, err := config.LoadPromotions(cfg.PromotionsFile)
	if err != nil {
		return err
	}

	var source product.Source
	if cfg.CatalogURL != "" {
		source = catalog.NewRemoteSource(cfg.CatalogURL, cfg.CatalogTimeout, tel)
	} else {
		source = catalog.NewStaticSource(catalog.DefaultProducts()...)
	}

	shopService := shop.NewService(
		source,
		memory.NewCartRepository(),
		promos,
		id.NewUUIDGenerator(),
		money.WithPrefix(cfg.CurrencyPrefix),
		tel,
	)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.CatalogTimeout)
	loaded := shopService.LoadCatalog(loadCtx)
	cancelLoad()
	systemLogger.Info("catalog_ready",
		observability.F("products", loaded),
		observability.F("deals", promos.CodesWithActiveDeals()),
	)

	// In-memory event bus carrying cart events to the activity worker
	bus := outbox.NewBus(tel)
	bus.Start(context.Background())
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		bus.Stop(stopCtx)
	}()

	workerpresentation.NewActivityWorker(bus, tel).Start()

	changeQuantity := shop.NewChangeQuantityUseCase(shopService, bus, tel)
	handler := httppresentation.NewHandler(shopService, changeQuantity, tel)

	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	router.Mount("/", handler.Router())

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		systemLogger.Info("http_server_start", observability.F("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			systemLogger.Error("http_server_error", observability.F("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		systemLogger.Error("http_server_shutdown_error", observability.F("error", err))
		return err
	}
	systemLogger.Info("http_server_stopped")
	return nil
}
