package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"compass_sync/internal/config"
	"compass_sync/internal/publisher"
	"compass_sync/internal/scheduler"
	"compass_sync/internal/service"
	"compass_sync/internal/source/compass"
	"compass_sync/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	lookupTopic := flag.String("lookup", "", "look up a single topic, print the cached answer and exit")
	removeTopic := flag.String("remove", "", "remove a topic from the cache and exit")
	list := flag.Bool("list", false, "print every cached answer and exit")
	once := flag.Bool("once", false, "run a single backfill sweep and exit")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	var changes service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		changes = rabbitMQ
	}

	// Initialize stores
	answerStore := postgres.NewAnswerStore(db)
	financialStore := postgres.NewFinancialStore(db)
	txManager := postgres.NewTransactionManager(db)

	compassSource := compass.New(compass.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		MaxAttempts:    cfg.API.Retry.MaxAttempts,
		InitialBackoff: cfg.API.Retry.InitialBackoff,
		MaxBackoff:     cfg.API.Retry.MaxBackoff,
		UserAgent:      cfg.API.UserAgent,
	}, logger)

	reconciler := service.NewReconciler(answerStore, financialStore, txManager, changes, logger, cfg.Cache)
	lookup := service.NewLookupService(compassSource, reconciler, logger, cfg.Lookup.FinancialTimeout)
	sweeper := service.NewSweeper(reconciler, compassSource, logger, cfg.Sweep)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	switch {
	case *lookupTopic != "":
		res, err := lookup.Lookup(ctx, *lookupTopic)
		if err != nil {
			logger.Error("lookup failed", "topic", *lookupTopic, "error", err)
			os.Exit(1)
		}
		lookup.Wait()
		answer, err := reconciler.Get(ctx, *lookupTopic)
		if err != nil || answer == nil {
			answer = res.Answer
		}
		printJSON(logger, answer)
		return
	case *removeTopic != "":
		if err := reconciler.Remove(ctx, *removeTopic); err != nil {
			logger.Error("remove failed", "topic", *removeTopic, "error", err)
			os.Exit(1)
		}
		return
	case *list:
		answers, err := reconciler.ListAll(ctx)
		if err != nil {
			logger.Error("list failed", "error", err)
			os.Exit(1)
		}
		printJSON(logger, answers)
		return
	case *once:
		stats, err := sweeper.Sweep(ctx)
		if err != nil {
			logger.Error("sweep failed", "error", err)
			os.Exit(1)
		}
		printJSON(logger, stats)
		return
	}

	if cfg.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           metricsMux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	sched := scheduler.NewScheduler(sweeper, cfg.Sweep.Interval, cfg.Sweep.Timeout, logger)

	logger.Info("starting compass syncer",
		"source", compassSource.ID(),
		"interval", cfg.Sweep.Interval,
		"pace", cfg.Sweep.Pace,
		"orphan_ttl", cfg.Cache.OrphanTTL,
	)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func printJSON(logger *slog.Logger, v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Error("failed to write output", "error", err)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}
