package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"swingboard-backend/internal/config"
	httpdelivery "swingboard-backend/internal/delivery/http"
	"swingboard-backend/internal/delivery/websocket"
	"swingboard-backend/internal/domain"
	"swingboard-backend/internal/infrastructure/coingecko"
	"swingboard-backend/internal/infrastructure/db"
	"swingboard-backend/internal/infrastructure/fcm"
	"swingboard-backend/internal/repository"
	"swingboard-backend/internal/usecase"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage: Postgres when configured, in-memory otherwise.
	var historyCache domain.HistoryCache
	var tradeRepo domain.TradeEntryRepository
	if cfg.Database.URL != "" {
		poolCfg := db.ParsePoolConfig(
			cfg.Database.MaxConns, cfg.Database.MinConns,
			cfg.Database.MaxConnLifetime, cfg.Database.MaxConnIdleTime,
			cfg.Database.HealthCheckPeriod,
		)
		pool, err := db.NewPool(ctx, cfg.Database.URL, poolCfg)
		if err != nil {
			log.Fatalf("connect database: %v", err)
		}
		defer pool.Close()
		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatalf("migrate database: %v", err)
		}
		historyCache = repository.NewPostgresHistoryCache(pool)
		tradeRepo = repository.NewPostgresTradeRepository(pool)
		log.Println("Using Postgres persistence")
	} else {
		historyCache = repository.NewInMemoryHistoryCache()
		tradeRepo = repository.NewInMemoryTradeRepository()
		log.Println("DATABASE_URL not set, using in-memory storage")
	}

	signalRepo := repository.NewInMemorySignalRepository()
	tokenRepo := repository.NewInMemoryTokenRepository()

	fcmClient, err := fcm.NewClient()
	if err != nil {
		log.Printf("FCM init failed, alerts disabled: %v", err)
		fcmClient = nil
	}

	// One provider client per process; its pacing state is the shared
	// rate limiter for every call site.
	client := coingecko.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, coingecko.MinRequestInterval)
	segmenter := usecase.NewSegmenter(cfg.Analysis.StablecoinDenylist, cfg.Analysis.StablecoinKeywords)

	screener := usecase.NewScreenerUsecase(
		signalRepo, historyCache, client, segmenter,
		fcmClient, tokenRepo,
		cfg.Analysis.LookbackDays, cfg.Analysis.MaxCoins,
	)
	if err := screener.Start(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("schedule refresh: %v", err)
	}
	defer screener.Stop()

	signalHandler := httpdelivery.NewSignalHandler(signalRepo)
	tradeHandler := httpdelivery.NewTradeHandler(tradeRepo)
	tokenHandler := httpdelivery.NewTokenHandler(tokenRepo)
	wsHandler := websocket.NewHandler(signalRepo)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/signals", signalHandler.GetSignals)
	mux.HandleFunc("/api/signals/top", signalHandler.GetTopSignals)
	mux.HandleFunc("/api/trades", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			tradeHandler.CreateEntry(w, r)
			return
		}
		tradeHandler.GetAllEntries(w, r)
	})
	mux.HandleFunc("/api/trades/open", tradeHandler.GetOpenEntries)
	mux.HandleFunc("/api/trades/close", tradeHandler.CloseEntry)
	mux.HandleFunc("/api/trades/delete", tradeHandler.DeleteEntry)
	mux.HandleFunc("/api/trades/clear", tradeHandler.ClearAll)
	mux.HandleFunc("/api/trades/stats", tradeHandler.GetStats)
	mux.HandleFunc("/api/trades/export", tradeHandler.Export)
	mux.HandleFunc("/api/trades/import", tradeHandler.Import)
	mux.HandleFunc("/api/tokens/register", tokenHandler.Register)
	mux.HandleFunc("/api/tokens/unregister", tokenHandler.Unregister)
	mux.HandleFunc("/ws", wsHandler.Handle)

	server := &http.Server{Addr: cfg.Server.Addr, Handler: mux}
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received, stopping...")
	cancel()
	server.Shutdown(context.Background())
}
