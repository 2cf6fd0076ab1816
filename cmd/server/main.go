package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpggio/noteboard/internal/app"
	"github.com/rpggio/noteboard/internal/backend"
	"github.com/rpggio/noteboard/internal/config"
	"github.com/rpggio/noteboard/internal/demobackend"
	"github.com/rpggio/noteboard/internal/domain/note"
	"github.com/rpggio/noteboard/internal/logging"
	"github.com/rpggio/noteboard/internal/web"
)

func main() {
	demo := flag.Bool("demo", false, "serve against an in-memory demo backend")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg.Log.Level, cfg.Log.Path, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	baseURL := cfg.Backend.BaseURL
	if *demo {
		demoServer := startDemoBackend()
		defer demoServer.Close()
		baseURL = demoServer.URL + "/api"
		logger.Info("demo backend started", "url", baseURL)
	}

	client, err := backend.NewClient(baseURL,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout}),
		backend.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create backend client", "error", err)
		os.Exit(1)
	}

	srv := web.NewServer(web.Config{
		Controller: app.NewController(client, logger),
		BackendURL: client.BaseURL(),
		PageTTL:    cfg.Web.PageTTL,
		NoticeTTL:  cfg.UI.NoticeTTL,
		Logger:     logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "backend", client.BaseURL())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func startDemoBackend() *httptest.Server {
	b := demobackend.NewBackend()
	stamp := time.Now().UTC().Format(time.RFC3339)
	b.Seed(
		note.Note{Title: "Welcome", Content: "This board is backed by an in-memory demo service.", Tags: "demo,start", CreatedAt: stamp, UpdatedAt: stamp},
		note.Note{Title: "Shopping", Content: "milk\neggs\nbread", Tags: "home", CreatedAt: stamp, UpdatedAt: stamp},
	)
	return httptest.NewServer(b)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
