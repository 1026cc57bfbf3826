package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jask/userdesk/internal/api"
	"github.com/jask/userdesk/internal/config"
	"github.com/jask/userdesk/internal/logging"
	"github.com/jask/userdesk/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatalf("userdesk needs an interactive terminal")
	}

	logger, closeLog, err := logging.NewFileLogger(cfg.Log)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	client := api.New(cfg.API.BaseURL, api.WithLogger(logger))
	logger.WithField("base_url", client.BaseURL()).Info("starting userdesk")

	app := tui.New(ctx, client, tui.Options{
		PageSize:  cfg.UI.PageSize,
		PageSizes: cfg.UI.PageSizes,
		Timeout:   cfg.API.Timeout,
		Source:    client.BaseURL(),
		Logger:    logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
