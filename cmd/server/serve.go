package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/metrics"
	"github.com/mamadbah2/prodtracker/internal/repository/mongodb"
	"github.com/mamadbah2/prodtracker/internal/repository/sheets"
	"github.com/mamadbah2/prodtracker/internal/repository/sqlite"
	"github.com/mamadbah2/prodtracker/internal/scheduler"
	"github.com/mamadbah2/prodtracker/internal/server/handlers"
	"github.com/mamadbah2/prodtracker/internal/server/router"
	"github.com/mamadbah2/prodtracker/internal/service/aggregation"
	"github.com/mamadbah2/prodtracker/internal/service/auth"
	"github.com/mamadbah2/prodtracker/internal/service/catalog"
	"github.com/mamadbah2/prodtracker/internal/service/comparison"
	"github.com/mamadbah2/prodtracker/internal/service/csvio"
	"github.com/mamadbah2/prodtracker/internal/service/forecast"
	"github.com/mamadbah2/prodtracker/internal/service/ingestion"
	"github.com/mamadbah2/prodtracker/internal/service/reporting"
	"github.com/mamadbah2/prodtracker/internal/sse"
	"github.com/mamadbah2/prodtracker/pkg/clients/webhook"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server and the daily report scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	cfg, baseLogger := a.cfg, a.logger
	loc := cfg.Reporting.Location

	db, err := sqlite.Open(cfg.Database.Path, baseLogger.Named("repo.sqlite"))
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlite.Close(db); err != nil {
			baseLogger.Error("failed to close sqlite database", zap.Error(err))
		}
	}()

	entries := sqlite.NewEntryRepository(db)
	users := sqlite.NewUserRepository(db)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		return err
	}

	hub := sse.NewHub(m, baseLogger.Named("sse"))
	authSvc := auth.NewService(users, cfg.Session.Secret, cfg.Session.TTL, baseLogger.Named("svc.auth"))
	ingestSvc := ingestion.NewService(entries, hub, m, baseLogger.Named("svc.ingestion"))
	aggregationSvc := aggregation.NewService(entries, loc, baseLogger.Named("svc.aggregation"))
	comparisonSvc := comparison.NewService(entries, loc, baseLogger.Named("svc.comparison"))
	forecastSvc := forecast.NewService(entries, loc, baseLogger.Named("svc.forecast"))

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks, closeSinks, err := a.reportSinks(ctx, hub)
	if err != nil {
		closeSinks()
		return err
	}
	defer closeSinks()

	reportingSvc := reporting.NewService(entries, forecastSvc, sinks, loc, m, baseLogger.Named("svc.reporting"))
	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, reportingSvc, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(router.Handlers{
		Auth:    handlers.NewAuthHandler(authSvc, false, baseLogger.Named("handlers.auth")),
		Entry:   handlers.NewEntryHandler(ingestSvc, baseLogger.Named("handlers.entry")),
		Events:  handlers.NewEventsHandler(hub, baseLogger.Named("handlers.events")),
		Summary: handlers.NewSummaryHandler(aggregationSvc, comparisonSvc, forecastSvc, loc, m, baseLogger.Named("handlers.summary")),
		Export:  handlers.NewExportHandler(csvio.NewExporter(entries), entries, baseLogger.Named("handlers.export")),
		Users:   handlers.NewUsersHandler(users, baseLogger.Named("handlers.users")),
		Catalog: handlers.NewCatalogHandler(catalog.NewService(cfg.Server.DataDir, baseLogger.Named("svc.catalog")), baseLogger.Named("handlers.catalog")),
	}, router.Options{
		Auth:      authSvc,
		Gatherer:  registry,
		StaticDir: cfg.Server.StaticDir,
	}, baseLogger.Named("router"))

	// Live event streams hold their request open; cancelling the base context
	// on shutdown ends them so Shutdown can drain.
	streamsCtx, cancelStreams := context.WithCancel(context.Background())
	defer cancelStreams()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return streamsCtx },
	}
	srv.RegisterOnShutdown(cancelStreams)

	serveErr := make(chan error, 1)
	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		baseLogger.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			baseLogger.Error("http server crashed", zap.Error(err))
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	return nil
}

// reportSinks builds the live sink plus every configured external sink.
func (a *app) reportSinks(ctx context.Context, hub *sse.Hub) ([]reporting.Sink, func(), error) {
	cfg, baseLogger := a.cfg, a.logger
	sinks := []reporting.Sink{reporting.NewLiveSink(hub)}
	closers := []func(){}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.MongoDB.URI != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		})
		sinks = append(sinks, mongoRepo)
		baseLogger.Info("mongodb report archive enabled", zap.String("db", cfg.MongoDB.DBName))
	}

	if cfg.Sheets.Enabled() {
		sheetsClient, err := sheets.NewClient(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			return nil, closeAll, err
		}
		sinks = append(sinks, sheets.NewReportSheet(sheetsClient))
		baseLogger.Info("google sheets report sink enabled", zap.String("range", cfg.Sheets.ReportRange))
	}

	if cfg.Webhook.URL != "" {
		sinks = append(sinks, webhook.NewClient(cfg.Webhook, reporting.FormatReport))
		baseLogger.Info("report webhook enabled")
	}

	return sinks, closeAll, nil
}
