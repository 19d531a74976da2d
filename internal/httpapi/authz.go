package httpapi

import (
	"net/http"

	"authdemo.org/internal/audit"
	"authdemo.org/internal/auth"
	"authdemo.org/internal/obs"
)

// requireAuth passes control onward only when an authenticator has already
// attached an identity to the request.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserFromContext(r.Context()); !ok {
			obs.ObserveAuth("gate", "unauthenticated")
			unauthenticated(w, "Authentication required",
				"You must be logged in to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin enforces the admin role on an already-resolved identity.
// Running it before an authenticator always denies.
func (a *API) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok || !user.IsAdmin() {
			obs.ObserveAuth("gate", "forbidden")
			_ = audit.LogEvent(r.Context(), "auth.admin.denied", nil)
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeFail(w, http.StatusForbidden, "Admin access required",
				"You must be an admin to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}
