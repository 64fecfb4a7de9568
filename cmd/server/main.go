package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/renapsi/fluigscan/internal/config"
	"github.com/renapsi/fluigscan/internal/fluig"
	"github.com/renapsi/fluigscan/internal/raster"
	"github.com/renapsi/fluigscan/internal/scan"
	"github.com/renapsi/fluigscan/pkg/logging"
	"github.com/renapsi/fluigscan/pkg/middleware"
)

type application struct {
	config *config.Config
	logger *slog.Logger
	scans  scan.System
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(&cfg.Logging)

	fetcher := fluig.NewClient(&cfg.Fluig, logger)
	rasterizer := raster.New(&cfg.Render, logger)

	app := &application{
		config: cfg,
		logger: logger,
		scans:  scan.New(fetcher, rasterizer, logger),
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.routes(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr)

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	err = <-shutdownError
	if err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	h := app.scans.Handler()
	mux.HandleFunc("GET /{$}", h.Hello)
	mux.HandleFunc("POST /buscardocumento", h.Scan)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	wrap := middleware.Chain(
		middleware.Recover(app.logger),
		middleware.RequestLogger(app.logger),
	)
	return wrap(mux)
}
