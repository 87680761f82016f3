package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/sevigo/reply-warden/internal/core"
	"github.com/sevigo/reply-warden/internal/server/handler"
)

// requireToken rejects requests whose bearer token does not match token.
// An empty token disables the check.
func requireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), []byte(token)) != 1 {
				handler.WriteResult(w, core.NewResult(core.OutcomePermissionDenied))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
