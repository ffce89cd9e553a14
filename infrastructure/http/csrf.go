package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"watchlist/infrastructure/session"
)

const csrfFormField = "_csrf"

// CSRFMiddleware issues the double-submit cookie and checks it on every watchlist command.
func (s *Server) CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := csrfCookieToken(r)
		if expected == "" {
			expected = session.NewCSRFToken()
			http.SetCookie(w, session.CSRFCookie(expected))
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		submitted := submittedCSRFToken(r)
		if submitted == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(submitted)) != 1 {
			log.Warn().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Bool("token_present", submitted != "").
				Msg("watchlist command rejected: csrf mismatch")
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func csrfCookieToken(r *http.Request) string {
	c, err := r.Cookie(session.CSRFCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

// submittedCSRFToken prefers the header so scripted clients need not post a form.
func submittedCSRFToken(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(session.CSRFCookieName)); v != "" {
		return v
	}
	return strings.TrimSpace(r.FormValue(csrfFormField))
}
