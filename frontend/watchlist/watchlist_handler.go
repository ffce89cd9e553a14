package watchlist

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	sessioncontext "watchlist/frontend/shared/context"
	"watchlist/models"
)

const PagePath = "/watchlist"

func WatchlistPageQueryHandler(renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := pageSessionFromRequest(r)
		if !ok {
			http.Error(w, "page session missing", http.StatusInternalServerError)
			return
		}

		data := session.PageData(r.URL.Query().Get("confirm") == "clear")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := renderer.Render(r.Context(), w, data); err != nil {
			log.Error().Err(err).Str("session_id", session.ID).Msg("render watchlist page failed")
			http.Error(w, "failed to render watchlist page", http.StatusInternalServerError)
			return
		}
	}
}

func AddStockCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := pageSessionFromRequest(r)
		if !ok {
			http.Error(w, "page session missing", http.StatusInternalServerError)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid add stock form", http.StatusBadRequest)
			return
		}

		if err := session.Controller.Add(r.Context(), r.FormValue("symbol")); err != nil {
			log.Debug().Err(err).Str("session_id", session.ID).Msg("add stock rejected")
		}
		http.Redirect(w, r, PagePath, http.StatusSeeOther)
	}
}

func AddRecommendationCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := pageSessionFromRequest(r)
		if !ok {
			http.Error(w, "page session missing", http.StatusInternalServerError)
			return
		}

		if err := session.Controller.AddRecommendation(r.Context(), chi.URLParam(r, "symbol")); err != nil {
			log.Debug().Err(err).Str("session_id", session.ID).Msg("add recommendation rejected")
		}
		http.Redirect(w, r, PagePath, http.StatusSeeOther)
	}
}

func RemoveStockCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := pageSessionFromRequest(r)
		if !ok {
			http.Error(w, "page session missing", http.StatusInternalServerError)
			return
		}

		session.Controller.Remove(chi.URLParam(r, "symbol"))
		http.Redirect(w, r, PagePath, http.StatusSeeOther)
	}
}

// RefreshWatchlistCommandHandler waits for the debounced refresh that absorbs this request.
func RefreshWatchlistCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := pageSessionFromRequest(r)
		if !ok {
			http.Error(w, "page session missing", http.StatusInternalServerError)
			return
		}

		select {
		case err := <-session.Controller.Refresh():
			if err != nil {
				log.Debug().Err(err).Str("session_id", session.ID).Msg("refresh finished with error")
			}
		case <-r.Context().Done():
			return
		}
		http.Redirect(w, r, PagePath, http.StatusSeeOther)
	}
}

func ClearWatchlistCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := pageSessionFromRequest(r)
		if !ok {
			http.Error(w, "page session missing", http.StatusInternalServerError)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid clear form", http.StatusBadRequest)
			return
		}

		err := session.Controller.Clear(r.FormValue("confirm") == "yes")
		if errors.Is(err, ErrClearNotConfirmed) {
			http.Redirect(w, r, PagePath+"?confirm=clear", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, PagePath, http.StatusSeeOther)
	}
}

func ExportWatchlistPDFHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := pageSessionFromRequest(r)
		if !ok {
			http.Error(w, "page session missing", http.StatusInternalServerError)
			return
		}

		records := session.Store.Records()
		if len(records) == 0 {
			session.Notifier.Notify("Watchlist is empty", models.NotificationError)
			http.Redirect(w, r, PagePath, http.StatusSeeOther)
			return
		}

		pdf, err := renderWatchlistPDF(records, time.Now())
		if err != nil {
			log.Error().Err(err).Str("session_id", session.ID).Msg("render watchlist pdf failed")
			http.Error(w, "failed to render watchlist pdf", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="watchlist.pdf"`)
		_, _ = w.Write(pdf)
	}
}

func pageSessionFromRequest(r *http.Request) (*PageSession, bool) {
	return sessioncontext.GetSessionFromContext[*PageSession](r.Context())
}
