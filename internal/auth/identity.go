package auth

import (
	"net/http"
	"strings"
)

// identityHeader carries the acting staff member's name until a real
// authentication layer is wired in front of the service.
const identityHeader = "x-staff-user"

// Identity injects the acting user into the request context. When the
// header is absent the stub actor is used so every mutation still records
// provenance.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(r.Header.Get(identityHeader))
		if username == "" {
			username = StubUsername
		}

		ctx := NewContext(r.Context(), User{Username: username})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
