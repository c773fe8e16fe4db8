package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"storefront/api-service/internal/token"
)

const (
	authCookieName      = "auth-token"
	returnURLCookieName = "returnUrl"
	loginPath           = "/auth/login"

	authCookieMaxAge      = 7 * 24 * 60 * 60
	returnURLCookieMaxAge = 10 * 60
)

type claimsContextKey struct{}

// SessionGuard intercepts requests to the protected path prefixes. It holds
// no per-session state: every request re-verifies the token straight from the
// cookie. Anything without a valid token is redirected to the login entry
// point with the attempted path stashed in a short-lived marker cookie so the
// login flow can resume navigation.
type SessionGuard struct {
	tokens        *token.Service
	prefixes      []string
	secureCookies bool
}

func NewSessionGuard(tokens *token.Service, prefixes []string, secureCookies bool) *SessionGuard {
	return &SessionGuard{tokens: tokens, prefixes: prefixes, secureCookies: secureCookies}
}

func (g *SessionGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.isProtected(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(authCookieName)
		if err != nil || cookie.Value == "" {
			g.challenge(w, r)
			return
		}
		claims, err := g.tokens.Verify(cookie.Value)
		if err != nil {
			g.challenge(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *SessionGuard) isProtected(path string) bool {
	for _, prefix := range g.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (g *SessionGuard) challenge(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     returnURLCookieName,
		Value:    r.URL.Path,
		Path:     "/",
		MaxAge:   returnURLCookieMaxAge,
		Expires:  time.Now().Add(returnURLCookieMaxAge * time.Second),
		Secure:   g.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, loginPath, http.StatusFound)
}

// ClaimsFromContext returns the verified claims the guard attached, if any.
func ClaimsFromContext(ctx context.Context) (token.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(token.Claims)
	return claims, ok
}
