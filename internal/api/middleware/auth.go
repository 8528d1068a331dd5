package middleware

import (
	"net/http"
	"strings"

	"github.com/mcoot/raidroster/internal/api/apierr"
	"github.com/mcoot/raidroster/internal/model"
)

// TokenVerifier checks a transport bearer token
type TokenVerifier interface {
	Enabled() bool
	Verify(token string) error
}

// Auth rejects requests without a valid transport token.
// It passes everything through when the verifier is disabled.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil || !verifier.Enabled() {
				next.ServeHTTP(w, r)
				return
			}
			if err := verifier.Verify(extractToken(r)); err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="raidroster"`)
				apierr.WriteError(w, model.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
