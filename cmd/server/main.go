package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	app "padlink/internal/app"
	"padlink/internal/audit"
	"padlink/internal/gen"
	httpx "padlink/internal/http"
	store "padlink/internal/store"
	ws "padlink/internal/ws"
)

func main() {
	// Load local .env (dev only)
	_ = godotenv.Load()

	cfg := app.LoadConfig()
	logger := app.NewLogger(cfg.Env)

	// Cancel on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Prompt template is required at startup
	tmpl, err := gen.LoadTemplate(cfg.PromptPath)
	if err != nil {
		logger.Error("prompt.load", "path", cfg.PromptPath, "err", err)
		log.Fatal(err)
	}

	// Generation provider; an unknown name degrades to per-request 400s
	prov, err := gen.New(cfg)
	if err != nil {
		logger.Warn("provider.config", "provider", cfg.Provider, "err", err)
	}

	// Optional history store + migrations
	var db *store.Postgres
	if cfg.PGURL != "" {
		db, err = store.NewPostgres(ctx, cfg, logger)
		if err != nil {
			logger.Error("postgres.connect", "err", err)
			log.Fatal(err)
		}
		defer db.Close()
		if err := store.RunMigrations(ctx, db, logger); err != nil {
			logger.Error("migrations", "err", err)
			log.Fatal(err)
		}
	}

	// Optional redis bus for cross-instance relay
	var bus *ws.RedisBus
	if cfg.RedisAddr != "" {
		bus, err = ws.NewRedisBus(ctx, cfg, logger)
		if err != nil {
			logger.Error("redis.connect", "err", err)
			log.Fatal(err)
		}
		defer bus.Close()
	}

	// Optional kafka audit trail
	var sink audit.Publisher = audit.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		k := audit.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer k.Close()
		sink = k
	}

	// WebSocket hub
	hub := ws.NewHub(logger, bus, sink)
	go hub.Run(ctx)

	// HTTP + WS router
	router := httpx.NewRouter(cfg, logger, hub, prov, tmpl, db)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server.listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server.crash", "err", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	logger.Info("server.shutdown.start")

	// shutdown
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)

	logger.Info("server.shutdown.complete")
	_ = os.Stdout.Sync()
}
