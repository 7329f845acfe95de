// ReklamApp - single-operator product complaint tracker
package main

import (
	"log"
	"runtime"

	"reklamapp/internal/attachments"
	"reklamapp/internal/config"
	"reklamapp/internal/deadline"
	"reklamapp/internal/notify"
	"reklamapp/internal/repository/jsonfile"
	"reklamapp/internal/server"
	"reklamapp/internal/stats"
	"reklamapp/internal/templates"
	"reklamapp/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Limit CPU usage; the app serves one operator
	runtime.GOMAXPROCS(1)

	// .env is optional, real environment wins either way
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load("config.json")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog := logger.Must(logger.New(cfg.Debug))
	defer zlog.Sync()

	zlog.Info("starting reklamapp", zap.Bool("debug", cfg.Debug))

	// Open the complaint store
	store, err := jsonfile.New(cfg.DataFilePath(), logger.Named(zlog, "store"))
	if err != nil {
		zlog.Fatal("failed to open data store", zap.Error(err))
	}
	if err := store.Load(); err != nil {
		zlog.Fatal("failed to load complaints", zap.Error(err))
	}
	zlog.Info("complaints ready", zap.Int("count", store.Len()))

	// Attachments directory
	attach, err := attachments.NewManager(cfg.AttachmentsDirPath(), logger.Named(zlog, "attachments"))
	if err != nil {
		zlog.Fatal("failed to prepare attachments directory", zap.Error(err))
	}

	// Initialize template manager
	tmpl, err := templates.NewManager("./templates", cfg.Debug)
	if err != nil {
		zlog.Fatal("failed to initialize templates", zap.Error(err))
	}
	zlog.Info("templates loaded")

	// Announce impending and expired deadlines at startup
	notifier := notify.NewLogNotifier(logger.Named(zlog, "deadlines"))
	for _, warning := range stats.Warnings(store.Snapshot(), deadline.Today()) {
		notifier.DeadlineWarning(warning)
	}

	// Create and run the server
	srv, err := server.New(cfg, store, attach, tmpl, logger.Named(zlog, "http"))
	if err != nil {
		zlog.Fatal("failed to create server", zap.Error(err))
	}

	zlog.Info("server listening", zap.String("address", cfg.Address()))

	if err := srv.Run(); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
