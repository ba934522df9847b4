package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calq-destination-service/internal/config"
	"calq-destination-service/internal/events/adapters/calqhttp"
	eventsHttp "calq-destination-service/internal/events/adapters/http/fiber"
	eventsRepoPg "calq-destination-service/internal/events/adapters/postgres"
	eventsUsecase "calq-destination-service/internal/events/core/usecase"
	"calq-destination-service/internal/logging"

	metricsHttp "calq-destination-service/internal/metrics/adapters/http/fiber"
	metricsRepoPg "calq-destination-service/internal/metrics/adapters/postgres"
	metricsUsecase "calq-destination-service/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "calq-destination-service/docs"
)

var version = "dev"

// @title Calq Destination Service API
// @version 1.0
// @description Maps canonical analytics events to the Calq HTTP API and delivers them.
// @host localhost:8080
// @BasePath /
func main() {
	configPath := pflag.StringP("config", "c", "", "path to TOML config file")
	showVersion := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "calq-destination: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Integration runtime
	client := calqhttp.NewClient(calqhttp.Config{
		Endpoint: cfg.Calq.Endpoint,
		Retries:  cfg.Calq.Retries,
		Timeout:  cfg.Calq.Timeout.Duration,
	}, calqhttp.WithMetrics(calqhttp.NewMetrics(reg)), calqhttp.WithLogger(logger))

	dispatchOpts := []eventsUsecase.Option{eventsUsecase.WithLogger(logger)}

	// Delivery log, only when a database is configured
	var getMetricsUC *metricsUsecase.GetMetricsUseCase
	if cfg.Postgres.Enabled() {
		db, err := openPostgres(cfg.Postgres)
		if err != nil {
			return err
		}
		defer db.Close()

		deliveryRepository := eventsRepoPg.NewDeliveryRepository(eventsRepoPg.NewSQLDB(db))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = deliveryRepository.EnsureSchema(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("ensure deliveries schema: %w", err)
		}

		metricsRepository := metricsRepoPg.NewMetricsRepository(metricsRepoPg.NewSQLDB(db))
		getMetricsUC = metricsUsecase.NewGetMetricsUseCase(metricsRepository)
		dispatchOpts = append(dispatchOpts, eventsUsecase.WithDeliveryLog(deliveryRepository))
		logger.Info("delivery log enabled")
	}

	dispatcher, err := eventsUsecase.NewDispatcher(cfg.Calq.Settings(), client, dispatchOpts...)
	if err != nil {
		return fmt.Errorf("dispatcher: %w", err)
	}

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	eventsHandler := eventsHttp.NewEventHandler(dispatcher)
	eventsHandler.Register(app.Group("/v1"))

	if getMetricsUC != nil {
		metricsHandler := metricsHttp.NewMetricsHandler(getMetricsUC)
		app.Get("/deliveries/metrics", metricsHandler.GetMetrics)
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Listen); err != nil {
			logger.Error("fiber stopped", "error", err)
		}
	}()

	logger.Info("server started", "listen", cfg.Server.Listen, "endpoint", client.Endpoint(), "version", version)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("fiber shutdown error", "error", err)
	}

	logger.Info("server exiting")
	return nil
}

func openPostgres(cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime.Duration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
