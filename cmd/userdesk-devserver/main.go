package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jask/userdesk/internal/config"
	"github.com/jask/userdesk/internal/database"
	"github.com/jask/userdesk/internal/database/repository"
	"github.com/jask/userdesk/internal/devserver"
	"github.com/jask/userdesk/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}
	log, err := logging.NewStderrLogger(cfg.Log)
	if err != nil {
		stdlog.Fatalf("log: %v", err)
	}

	dc := cfg.DevServer
	if dir := filepath.Dir(dc.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("mkdir db dir: %v", err)
		}
	}
	db, err := database.Open(dc.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if dc.Seed {
		if err := database.SeedDemoUsers(ctx, db, dc.SeedExtra); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	app := devserver.New(repository.NewUserRepo(db), db, dc.BasePath, log)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = app.Shutdown()
	}()

	log.WithField("addr", dc.Addr).WithField("base_path", dc.BasePath).Info("dev backend listening")
	if err := app.Listen(dc.Addr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
