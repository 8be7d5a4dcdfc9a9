package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/avelora/storefront/internal/identity"
	"github.com/avelora/storefront/pkg/auth"
)

// IdentityMiddleware validates the bearer token when one is present and
// stores the customer id for the resolver. Requests without a token (or
// with an invalid one) fall through to guest/anonymous resolution: the
// favorites endpoints are usable while browsing anonymously.
func IdentityMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := auth.ValidateToken(parts[1]); err == nil {
					ctx := identity.WithCustomerID(r.Context(), claims.CustomerID)
					r = r.WithContext(ctx)
				}
			}
		}
		next.ServeHTTP(w, r)
	}
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
