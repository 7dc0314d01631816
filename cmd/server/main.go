package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/internal/config"
	"github.com/dedik2urniawan/fct-engine/internal/repository/factors"
	"github.com/dedik2urniawan/fct-engine/internal/repository/reference"
	"github.com/dedik2urniawan/fct-engine/internal/scheduler"
	"github.com/dedik2urniawan/fct-engine/internal/server/handlers"
	"github.com/dedik2urniawan/fct-engine/internal/server/router"
	"github.com/dedik2urniawan/fct-engine/internal/service/adequacy"
	exportsvc "github.com/dedik2urniawan/fct-engine/internal/service/export"
	"github.com/dedik2urniawan/fct-engine/internal/session"
	"github.com/dedik2urniawan/fct-engine/pkg/fetch"
	"github.com/dedik2urniawan/fct-engine/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	refStore := reference.NewStore()
	factorStore := factors.NewStore()

	var sheetSource handlers.SheetLoader
	if cfg.Reference.SpreadsheetID != "" {
		src, err := reference.NewSheetSource(context.Background(), cfg.Reference, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets source", zap.Error(err))
		}
		sheetSource = src
	}

	fetcher := fetch.New()
	refHandler := handlers.NewReferenceHandler(refStore, factorStore, sheetSource, fetcher, cfg.Reference, baseLogger.Named("handlers.reference"))

	// The table can also arrive later via upload; a missing startup source
	// only delays computation, it does not prevent boot.
	if table, err := refHandler.LoadConfigured(context.Background()); err != nil {
		baseLogger.Warn("reference table not loaded at startup", zap.Error(err))
	} else {
		refStore.Swap(table)
		baseLogger.Info("reference table loaded", zap.Int("rows", table.Len()))
	}

	sessions := session.NewManager(cfg.Session.TTL, baseLogger.Named("session"))
	evaluator := adequacy.NewEvaluator(baseLogger.Named("svc.adequacy"))
	rdaRef := adequacy.DefaultReference()
	exporter := exportsvc.NewService(baseLogger.Named("svc.export"))

	sessionHandler := handlers.NewSessionHandler(sessions, baseLogger.Named("handlers.session"))
	evalHandler := handlers.NewEvaluationHandler(sessions, refStore, factorStore, evaluator, rdaRef, exporter, baseLogger.Named("handlers.evaluation"))

	engine := router.New(refHandler, sessionHandler, evalHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Session, sessions, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
