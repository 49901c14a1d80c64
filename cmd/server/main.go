package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"go-jobboard/internal/config"
	"go-jobboard/internal/database"
	"go-jobboard/internal/devserver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open job store: %v", err)
	}
	defer store.Close()

	seed, err := devserver.LoadSeed(cfg.SeedPath)
	if err != nil {
		log.Fatalf("❌ Failed to load seed jobs: %v", err)
	}
	if n, err := devserver.Seed(ctx, store, seed); err != nil {
		log.Fatalf("❌ Failed to seed jobs: %v", err)
	} else if n > 0 {
		log.Printf("🌱 Seeded %d jobs from %s", n, cfg.SeedPath)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           devserver.New(store, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("⚠️ Shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 Job directory stand-in listening on %s", cfg.ServerAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
	log.Println("🏁 Server stopped.")
}

// openStore prefers PostgreSQL, then SQLite, then memory.
func openStore(ctx context.Context, cfg *config.Config) (devserver.Store, error) {
	switch {
	case cfg.DatabaseURL != "":
		repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Println("🐘 Using PostgreSQL job store.")
		return repo, nil
	case cfg.DatabasePath != "":
		sqlite, err := devserver.OpenSQLite(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		log.Printf("🗄️ Using SQLite job store at %s", cfg.DatabasePath)
		return sqlite, nil
	default:
		log.Println("🧠 Using in-memory job store.")
		return devserver.NewMemoryStore(), nil
	}
}
