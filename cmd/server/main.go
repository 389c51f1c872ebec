package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"northpole/internal/fulfillment"
	"northpole/internal/fulfillment/pow"
	peopleservice "northpole/internal/people/service"
	peoplestore "northpole/internal/people/store"
	"northpole/internal/platform/config"
	"northpole/internal/platform/database"
	"northpole/internal/platform/health"
	"northpole/internal/platform/logger"
	"northpole/internal/platform/metrics"
	httptransport "northpole/internal/transport/http"
	wishservice "northpole/internal/wish/service"
	wishstore "northpole/internal/wish/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing northpole server", "addr", cfg.Addr)

	var (
		people peoplestore.Store
		wishes wishstore.Store
	)
	healthHandler := health.New()

	if cfg.DatabaseConfigured() {
		dbCfg := database.DefaultConfig()
		dbCfg.URL = cfg.DatabaseURL()
		pool, err := database.New(dbCfg)
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close() //nolint:errcheck // best-effort cleanup on exit

		if err := pool.Migrate(context.Background()); err != nil {
			log.Error("database migration failed", "error", err)
			os.Exit(1)
		}

		people = peoplestore.NewPostgres(pool.DB())
		wishes = wishstore.NewPostgres(pool.DB())
		healthHandler.RegisterCheck("database", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Health(ctx)
		})
		log.Info("using postgresql stores",
			"db_host", cfg.DBHost,
			"db_name", cfg.DBName,
		)
	} else {
		people = peoplestore.NewMemory()
		wishes = wishstore.NewMemory()
		log.Warn("DB_USER or DB_PASSWORD not set, falling back to in-memory stores")
	}

	m := metrics.New()
	peopleSvc := peopleservice.New(people, log, m)
	wishSvc := wishservice.New(wishes, people, log, m)
	engine := pow.NewEngine(log, m)
	fulfillSvc := fulfillment.New(wishes, people, engine, log, m)

	handler := httptransport.NewHandler(peopleSvc, wishSvc, fulfillSvc, log)
	router := httptransport.NewRouter(handler, healthHandler, m, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
