package main

import (
	"fmt"
	"log"

	"go-jobboard/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   API Base URL: %s\n", cfg.APIBaseURL)
	fmt.Printf("   API Timeout: %s\n", cfg.APITimeout)
	fmt.Printf("   Log Level: %s\n", cfg.LogLevel)
	fmt.Printf("   Telegram: %v (chat %d)\n", cfg.TelegramEnabled(), cfg.TelegramChatID)
	fmt.Printf("   Server Addr: %s\n", cfg.ServerAddr)
	fmt.Printf("   Database URL set: %v\n", cfg.DatabaseURL != "")
	fmt.Printf("   Database Path: %q\n", cfg.DatabasePath)
	fmt.Printf("   Seed Path: %q\n", cfg.SeedPath)
}
