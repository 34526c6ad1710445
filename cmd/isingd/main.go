// Command isingd serves the sampler HTTP API backed by SQLite.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spinlab/internal/api"
	"spinlab/internal/logger"
	"spinlab/internal/store"
)

func main() {
	limits := api.DefaultLimits()
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "spinlab.db", "SQLite database path")
	flag.IntVar(&limits.MaxSize, "max-size", limits.MaxSize, "largest lattice side accepted")
	flag.IntVar(&limits.MaxSteps, "max-steps", limits.MaxSteps, "longest energy series accepted")
	flag.IntVar(&limits.MaxPoints, "max-points", limits.MaxPoints, "most β values per sweep")
	flag.IntVar(&limits.MaxWorkers, "max-workers", limits.MaxWorkers, "parallel chains per sweep")
	flag.DurationVar(&limits.Timeout, "timeout", limits.Timeout, "per-request timeout")
	flag.Parse()

	log := logger.New("API")

	db, err := store.NewSQLiteDB(*dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.NewServer(db, log, limits).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s (db %s)", *addr, *dbPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server: %v", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}
}
