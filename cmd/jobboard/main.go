package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go-jobboard/internal/config"
	"go-jobboard/internal/directory"
	"go-jobboard/internal/reporter"
	"go-jobboard/internal/submission"
)

func main() {
	//load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	log.Printf("🔧 Config loaded. Job directory: %s", cfg.APIBaseURL)

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := directory.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.APITimeout}, logger)

	//telegram is optional
	var notifier submission.Notifier
	if cfg.TelegramEnabled() {
		tg, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Telegram disabled: %v", err)
		} else {
			notifier = tg
			log.Println("🤖 Telegram reporter initialized.")
		}
	}

	log.Println("🚀 Starting job board...")
	if err := newSession(dir, notifier, os.Stdin, os.Stdout, logger).run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("🏁 Bye.")
}
