package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rpggio/noteboard/internal/app"
	"github.com/rpggio/noteboard/internal/backend"
	"github.com/rpggio/noteboard/internal/config"
	"github.com/rpggio/noteboard/internal/logging"
	"github.com/rpggio/noteboard/internal/tui"
	"golang.org/x/term"
)

const defaultLogPath = "noteboard-tui.log"

func main() {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "noteboard-tui needs an interactive terminal")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Logs never go to the screen while the program owns it.
	logPath := cfg.Log.Path
	if logPath == "" {
		logPath = defaultLogPath
	}
	logger, logCloser, err := logging.New(cfg.Log.Level, logPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	client, err := backend.NewClient(cfg.Backend.BaseURL,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout}),
		backend.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backend error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	model := tui.New(ctx, app.NewController(client, logger), cfg.UI.NoticeTTL)
	logger.Info("starting terminal client", "backend", client.BaseURL())

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		logger.Error("terminal client error", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
