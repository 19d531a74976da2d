package httpapi

import (
	"net/http"

	"authdemo.org/internal/audit"
	"authdemo.org/internal/auth"
	"authdemo.org/internal/directory"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginData struct {
	Token string         `json:"token"`
	User  directory.User `json:"user"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		writeFail(w, http.StatusBadRequest, "Validation failed",
			"Username and password are required")
		return
	}

	// Plaintext comparison against demo records; this service teaches the
	// middleware flow, not credential storage.
	user, ok := a.dir.FindByUsername(req.Username)
	if !ok || user.Password != req.Password {
		_ = audit.LogEvent(r.Context(), "auth.login.denied", map[string]any{
			"attempted_username": req.Username,
		})
		unauthenticated(w, "Authentication failed", "Invalid username or password")
		return
	}

	token, _, err := a.codec.Issue(user)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Token issuance failed",
			"Could not create a session token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.codec.TTL().Seconds()),
		HttpOnly: true,
		Secure:   a.cfg.Production(),
		SameSite: http.SameSiteStrictMode,
	})

	_ = audit.LogEvent(auth.ContextWithUser(r.Context(), user), "auth.login.granted", nil)

	writeData(w, http.StatusOK, loginData{Token: token, User: user}, "Login successful")
}

func (a *API) handlePublic(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "This is public information",
	})
}

func (a *API) handleProtected(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	writeData(w, http.StatusOK, map[string]any{
		"message":    "only admin should be able to see this",
		"user":       user.Username,
		"role":       user.Role,
		"secretData": "this is confidential admin information",
	}, "Only admin should be able to see this")
}

func (a *API) handleSecret(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	writeData(w, http.StatusOK, map[string]any{
		"message": "authenticated with a static secret",
		"user":    user.Username,
		"role":    user.Role,
	}, "Secret authentication successful")
}
