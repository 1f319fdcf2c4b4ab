package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ChartPulse/internal/chart"
	"ChartPulse/internal/config"
	"ChartPulse/internal/fetcher"
	"ChartPulse/internal/model"
	"ChartPulse/internal/notifier"
	"ChartPulse/internal/recorder"
	"ChartPulse/internal/scheduler"
	"ChartPulse/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ChartPulse starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var f fetcher.Fetcher
	if cfg.DataSource.BaseURL != "" {
		f = fetcher.NewPriceAPIFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		f = fetcher.NewCoinGeckoFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", f.Name())

	// Init provider registry
	reg := chart.NewRegistry(f)

	// Tracked assets
	assets := make([]model.AssetQuery, len(cfg.Assets))
	for i, a := range cfg.Assets {
		assets[i] = model.AssetQuery{
			Asset:        a.Name,
			Class:        model.ParseAssetClass(a.Type),
			LookbackDays: model.DefaultLookbackDays,
		}
	}

	// Init notifier
	var n notifier.Notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if cfg.Telegram.BotToken != "" {
		n = tn
	} else {
		n = notifier.NewNoopNotifier()
		log.Println("[INFO] telegram not configured, alerts disabled")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, reg, assets, n, rec, cfg.Alert.MovePercent, f.Name())
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)

	// Init HTTP API
	api := server.NewServer(reg, assets)
	srv := &http.Server{Addr: cfg.Server.ListenAddr, Handler: api.Handler()}
	go func() {
		log.Printf("[INFO] API listening on %s", cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Optional: warm the chart cache on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing charts now")
		go sched.RunRefreshNow()
	}

	log.Println("[INFO] ChartPulse is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] ChartPulse stopped")
}
