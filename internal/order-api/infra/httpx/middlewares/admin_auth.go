package middlewares

import (
	"net/http"

	"github.com/jcmexdev/restaurant-orders/internal/storefront"
)

// AdminAuth guards a route with HTTP Basic credentials.
func AdminAuth(realm, user, pass string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok || !storefront.CredentialsMatch(u, p, user, pass) {
				w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`", charset="UTF-8"`)
				http.Error(w, storefront.MsgInvalidCredentials, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
