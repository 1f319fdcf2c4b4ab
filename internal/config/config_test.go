package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  listen_addr: \":9090\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("expected listen addr from file, got %q", cfg.Server.ListenAddr)
	}
	if len(cfg.Assets) != 1 || cfg.Assets[0].Name != "btc" {
		t.Errorf("expected default asset btc, got %+v", cfg.Assets)
	}
	if cfg.Schedule.RefreshCron == "" || cfg.Database.SQLitePath == "" {
		t.Error("expected schedule and database defaults")
	}
	if cfg.Alert.MovePercent != 5.0 {
		t.Errorf("expected default move percent 5.0, got %v", cfg.Alert.MovePercent)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid defaults: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PRICEAPI_BASE_URL", "http://prices.internal")
	t.Setenv("ASSETS", "eth:crypto, eurusd:forex")
	t.Setenv("ALERT_MOVE_PERCENT", "2.5")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.BaseURL != "http://prices.internal" {
		t.Errorf("expected base url override, got %q", cfg.DataSource.BaseURL)
	}
	if len(cfg.Assets) != 2 || cfg.Assets[1].Name != "eurusd" || cfg.Assets[1].Type != "forex" {
		t.Errorf("unexpected assets: %+v", cfg.Assets)
	}
	if cfg.Alert.MovePercent != 2.5 {
		t.Errorf("expected move percent 2.5, got %v", cfg.Alert.MovePercent)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Assets: []Asset{{Name: "btc", Type: "stock"}}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown asset type")
	}

	cfg = &Config{Assets: []Asset{{Name: "btc"}}}
	cfg.Telegram.BotToken = "token"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bot token without chat id")
	}
}
