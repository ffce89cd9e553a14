package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"watchlist/frontend/watchlist"
	"watchlist/infrastructure/cache"
	"watchlist/infrastructure/config"
	httpserver "watchlist/infrastructure/http"
	"watchlist/infrastructure/logger"
	"watchlist/infrastructure/stockapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if err := logger.Init(logger.Config{
		Level:         cfg.Log.Level,
		Format:        cfg.Log.Format,
		FileEnabled:   cfg.Log.FileEnabled,
		FilePath:      cfg.Log.FilePath,
		RotationSize:  cfg.Log.RotationSizeMB,
		RetentionDays: cfg.Log.RetentionDays,
		ServiceName:   "watchlist",
	}); err != nil {
		log.Fatal().Err(err).Msg("init logger")
	}

	quotes := stockapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	sessions := cache.NewPageSessionCache[*watchlist.PageSession](cfg.Session.IdleTTL)

	var recs []watchlist.Recommendation
	for _, r := range cfg.Watchlist.ParsedRecommendations() {
		recs = append(recs, watchlist.Recommendation{Symbol: r.Symbol, Name: r.Name})
	}

	server := httpserver.NewServer(cfg.App.Addr, quotes, sessions, watchlist.Options{
		Currency:        cfg.Watchlist.Currency,
		Recommendations: recs,
	})
	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("start server")
	}
	log.Info().
		Str("addr", server.ListenAddr()).
		Str("api_base_url", cfg.API.BaseURL).
		Str("env", cfg.App.Env).
		Msg("watchlist listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}
