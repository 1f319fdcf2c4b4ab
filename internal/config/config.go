package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Asset is one tracked asset entry.
type Asset struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // "crypto" or "forex"
}

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Assets   []Asset `yaml:"assets"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Alert struct {
		MovePercent float64 `yaml:"move_percent"`
	} `yaml:"alert"`
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PRICEAPI_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("PRICEAPI_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("ALERT_MOVE_PERCENT"); v != "" {
		var pct float64
		if _, err := fmt.Sscanf(v, "%f", &pct); err == nil {
			cfg.Alert.MovePercent = pct
		}
	}
	if v := os.Getenv("ASSETS"); v != "" {
		// Comma-separated "name:type" pairs, e.g. "btc:crypto,eurusd:forex"
		cfg.Assets = cfg.Assets[:0]
		for _, entry := range strings.Split(v, ",") {
			name, typ, _ := strings.Cut(strings.TrimSpace(entry), ":")
			if name != "" {
				cfg.Assets = append(cfg.Assets, Asset{Name: name, Type: typ})
			}
		}
	}

	// Defaults
	if len(cfg.Assets) == 0 {
		cfg.Assets = []Asset{{Name: "btc", Type: "crypto"}}
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */15 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/chartpulse.db"
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Alert.MovePercent == 0 {
		cfg.Alert.MovePercent = 5.0
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	for i, a := range c.Assets {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("assets[%d].name is required", i)
		}
		if a.Type != "" && a.Type != "crypto" && a.Type != "forex" {
			return fmt.Errorf("assets[%d].type must be crypto or forex, got %q", i, a.Type)
		}
	}
	if c.Alert.MovePercent < 0 {
		return fmt.Errorf("alert.move_percent must not be negative")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when bot_token is set")
	}
	return nil
}
