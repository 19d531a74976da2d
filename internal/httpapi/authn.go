package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"authdemo.org/internal/audit"
	"authdemo.org/internal/auth"
	"authdemo.org/internal/obs"
)

const (
	authHeader    = "Authorization"
	bearerPrefix  = "Bearer "
	sessionCookie = "token"
)

// authenticateSecret resolves the request to an identity by matching a static
// bearer secret against the directory. The remainder after the "Bearer "
// prefix is taken verbatim: secrets are case-sensitive and never trimmed.
func (a *API) authenticateSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(authHeader)
		if !strings.HasPrefix(header, bearerPrefix) || header == bearerPrefix {
			obs.ObserveAuth("secret", "missing")
			unauthenticated(w, "Access denied. No secret provided.",
				"Provide secret in Authorization header (Bearer <secret>)")
			return
		}

		secret := header[len(bearerPrefix):]
		user, ok := a.dir.FindBySecret(secret)
		if !ok {
			obs.ObserveAuth("secret", "invalid")
			_ = audit.LogEvent(r.Context(), "auth.secret.denied", map[string]any{
				"reason": "secret not recognized",
			})
			unauthenticated(w, "Invalid secret", "Secret not recognized")
			return
		}

		ctx := auth.ContextWithUser(r.Context(), user)
		obs.ObserveAuth("secret", "granted")
		_ = audit.LogEvent(ctx, "auth.secret.granted", map[string]any{
			"strategy": "secret",
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticateSession resolves the request to an identity from a signed
// session token found in the Authorization header or, failing that, the
// token cookie. Verified claims are not trusted on their own: the subject is
// re-fetched from the directory so a removed user invalidates old tokens.
func (a *API) authenticateSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionTokenFromRequest(r)
		if token == "" {
			obs.ObserveAuth("session", "missing")
			unauthenticated(w, "Access denied. No token provided.",
				"Provide token in Authorization header (Bearer <token>) or the token cookie")
			return
		}

		claims, err := a.codec.Verify(token)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, auth.ErrTokenExpired) {
				reason = "expired"
			}
			obs.ObserveAuth("session", reason)
			_ = audit.LogEvent(r.Context(), "auth.session.denied", map[string]any{
				"reason": reason,
			})
			unauthenticated(w, "Invalid or expired token", "Session token failed verification")
			return
		}

		subjectID, err := claims.SubjectID()
		if err != nil {
			obs.ObserveAuth("session", "invalid")
			_ = audit.LogEvent(r.Context(), "auth.session.denied", map[string]any{
				"reason": "malformed subject",
			})
			unauthenticated(w, "Invalid or expired token", "Session token failed verification")
			return
		}

		user, ok := a.dir.FindByID(subjectID)
		if !ok {
			obs.ObserveAuth("session", "stale")
			_ = audit.LogEvent(r.Context(), "auth.session.denied", map[string]any{
				"reason":   "stale subject",
				"username": claims.Username,
			})
			unauthenticated(w, "User not found", "User associated with token no longer exists")
			return
		}

		// Attach the fresh directory record, not the decoded claims.
		ctx := auth.ContextWithUser(r.Context(), user)
		obs.ObserveAuth("session", "granted")
		_ = audit.LogEvent(ctx, "auth.session.granted", map[string]any{
			"strategy": "session",
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionTokenFromRequest checks the Authorization header first, then the
// cookie. First hit wins.
func sessionTokenFromRequest(r *http.Request) string {
	if h := r.Header.Get(authHeader); strings.HasPrefix(h, bearerPrefix) {
		return h[len(bearerPrefix):]
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func unauthenticated(w http.ResponseWriter, errMsg, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeFail(w, http.StatusUnauthorized, errMsg, message)
}
