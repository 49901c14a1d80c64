package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-jobboard/internal/config"
	"go-jobboard/internal/models"
	"go-jobboard/internal/reporter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if !cfg.TelegramEnabled() {
		log.Fatal("Missing TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID")
	}

	tg, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	salaryMin, salaryMax := 50000, 70000
	mockJob := models.PostJobPayload{
		Title:       "Backend Engineer (Go/PostgreSQL) [test]",
		Description: "Build robust APIs with Go and PostgreSQL.",
		Skills:      "Go, PostgreSQL, Docker",
		Location:    "Remote",
		SalaryMin:   &salaryMin,
		SalaryMax:   &salaryMax,
		CreatedAt:   time.Now().Format("2006-01-02"),
	}

	fmt.Println("📨 Sending test announcement...")
	if err := tg.JobPosted(context.Background(), mockJob); err != nil {
		log.Fatalf("❌ Failed to send message: %v", err)
	}
	log.Println("✅ Sent test job announcement to Telegram!")
}
