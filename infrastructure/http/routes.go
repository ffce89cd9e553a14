package http

import (
	"github.com/go-chi/chi/v5"

	"watchlist/frontend/watchlist"
)

// RegisterWatchlistRoutes registers the page and its form actions under /watchlist.
func (s *Server) RegisterWatchlistRoutes(r chi.Router) chi.Router {
	r.Get("/", watchlist.WatchlistPageQueryHandler(s.Renderer))
	r.Get("/export.pdf", watchlist.ExportWatchlistPDFHandler())

	r.Post("/stocks", watchlist.AddStockCommandHandler())
	r.Post("/stocks/{symbol}/remove", watchlist.RemoveStockCommandHandler())
	r.Post("/refresh", watchlist.RefreshWatchlistCommandHandler())
	r.Post("/clear", watchlist.ClearWatchlistCommandHandler())
	r.Post("/recommendations/{symbol}", watchlist.AddRecommendationCommandHandler())
	return r
}
