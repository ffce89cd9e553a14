package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the watchlist server.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	API       APIConfig       `mapstructure:"api"`
	Watchlist WatchlistConfig `mapstructure:"watchlist"`
	Session   SessionConfig   `mapstructure:"session"`
	Log       LogConfig       `mapstructure:"log"`
}

type AppConfig struct {
	Addr string `mapstructure:"addr"`
	Env  string `mapstructure:"env"`
}

// APIConfig points at the quote backend serving /api/stocks.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type WatchlistConfig struct {
	Currency string `mapstructure:"currency"`
	// Recommendations are "SYMBOL:Name" pairs.
	Recommendations []string `mapstructure:"recommendations"`
}

type SessionConfig struct {
	IdleTTL time.Duration `mapstructure:"idle_ttl"`
}

type LogConfig struct {
	Level          string `mapstructure:"level"`
	Format         string `mapstructure:"format"`
	FileEnabled    bool   `mapstructure:"file_enabled"`
	FilePath       string `mapstructure:"file_path"`
	RotationSizeMB int    `mapstructure:"rotation_size_mb"`
	RetentionDays  int    `mapstructure:"retention_days"`
}

var defaultRecommendations = []string{
	"RELIANCE.NS:Reliance Industries Ltd",
	"TCS.NS:Tata Consultancy Services Ltd",
	"HDFCBANK.NS:HDFC Bank Ltd",
	"INFY.NS:Infosys Ltd",
	"WIPRO.NS:Wipro Ltd",
	"ICICIBANK.NS:ICICI Bank Ltd",
	"SBIN.NS:State Bank of India",
	"BHARTIARTL.NS:Bharti Airtel Ltd",
	"ITC.NS:ITC Ltd",
	"HINDUNILVR.NS:Hindustan Unilever Ltd",
}

// Load reads .env (if present), environment variables and defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on environment variables")
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app.addr", ":8080")
	v.SetDefault("app.env", "local")

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", 10*time.Second)

	v.SetDefault("watchlist.currency", "₹")
	v.SetDefault("watchlist.recommendations", defaultRecommendations)

	v.SetDefault("session.idle_ttl", 30*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "pretty")
	v.SetDefault("log.file_enabled", false)
	v.SetDefault("log.file_path", "logs")
	v.SetDefault("log.rotation_size_mb", 50)
	v.SetDefault("log.retention_days", 7)

	// app.addr -> APP_ADDR
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range v.AllKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Session.IdleTTL <= 0 {
		return fmt.Errorf("session.idle_ttl must be positive, got %s", c.Session.IdleTTL)
	}
	return nil
}

// Recommendation is a parsed watchlist.recommendations entry.
type Recommendation struct {
	Symbol string
	Name   string
}

// ParsedRecommendations splits "SYMBOL:Name" entries, skipping blanks.
func (c WatchlistConfig) ParsedRecommendations() []Recommendation {
	out := make([]Recommendation, 0, len(c.Recommendations))
	for _, raw := range c.Recommendations {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		symbol, name, _ := strings.Cut(raw, ":")
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			name = symbol
		}
		out = append(out, Recommendation{Symbol: symbol, Name: name})
	}
	return out
}
