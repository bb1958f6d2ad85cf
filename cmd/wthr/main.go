package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/swelljoe/wthr-dashboard/internal/config"
	"github.com/swelljoe/wthr-dashboard/internal/dashboard"
	"github.com/swelljoe/wthr-dashboard/internal/db"
	"github.com/swelljoe/wthr-dashboard/internal/handlers"
	"github.com/swelljoe/wthr-dashboard/internal/recent"
	"github.com/swelljoe/wthr-dashboard/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize database connection
	var health handlers.Database
	var kvFor func(sessionID string) recent.KV
	database, err := db.NewDB(cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		log.Printf("Warning: Database connection failed: %v", err)
		log.Println("Continuing with in-memory recent searches...")
		kvFor = func(string) recent.KV { return recent.NewMemoryKV() }
	} else {
		defer database.Close()
		log.Println("Database connected successfully")
		health = database
		kvFor = func(id string) recent.KV { return database.Scope(id) }
	}

	client := weather.NewClient(cfg.APIKey, cfg.BaseURL, cfg.HTTPTimeout)
	provider := weather.NewRateLimited(client, cfg.RequestsPerSecond, cfg.Burst)

	sessions := dashboard.NewSessions(func(ctx context.Context, id string) *dashboard.Controller {
		return dashboard.NewController(ctx, provider, recent.NewStore(kvFor(id)))
	})
	go pruneSessions(ctx, sessions, cfg.SessionIdle)

	// Setup routes
	mux := http.NewServeMux()

	// Serve static files
	fs := http.FileServer(http.Dir("static"))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	// Setup handlers
	h := handlers.New(health, sessions)
	h.Register(mux)

	log.Printf("Server starting on http://localhost%s", cfg.ListenAddr())
	if err := run(ctx, cfg.ListenAddr(), mux); err != nil {
		log.Fatal(err)
	}
}

// run serves until ctx is canceled, then shuts down gracefully.
func run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func pruneSessions(ctx context.Context, sessions *dashboard.Sessions, maxIdle time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := sessions.Prune(maxIdle); n > 0 {
				log.Printf("Pruned %d idle sessions, %d active", n, sessions.Len())
			}
		case <-ctx.Done():
			return
		}
	}
}
