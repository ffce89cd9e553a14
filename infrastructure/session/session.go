package session

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const CookieName = "X-Watchlist-Session"

// NewToken returns a fresh page session token.
func NewToken() string {
	return uuid.NewString()
}

// ValidToken reports whether value looks like a token issued by NewToken.
func ValidToken(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

// SessionCookie builds the page session cookie. It has no MaxAge so it ends with the browser session.
func SessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

const CSRFCookieName = "X-Watchlist-CSRF"

// NewCSRFToken returns a double-submit token. It is readable by page script, unlike the session token.
func NewCSRFToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CSRFCookie builds the double-submit cookie for token.
func CSRFCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	}
}
