package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"authdemo.org/api/spec"
	"authdemo.org/internal/auth"
	"authdemo.org/internal/config"
	"authdemo.org/internal/directory"
	"authdemo.org/internal/obs"
)

// API is the HTTP layer. It owns the route table and holds the collaborators
// the authenticators need: the user directory and the session token codec.
type API struct {
	mux     *http.ServeMux
	dir     *directory.Directory
	codec   *auth.Codec
	cfg     config.Config
	version string
	started time.Time
}

// New wires the route table.
func New(dir *directory.Directory, codec *auth.Codec, cfg config.Config, version string) *API {
	a := &API{
		mux:     http.NewServeMux(),
		dir:     dir,
		codec:   codec,
		cfg:     cfg,
		version: version,
		started: time.Now(),
	}

	a.mux.HandleFunc("/login", a.handleLogin)
	a.mux.HandleFunc("/public", a.handlePublic)
	a.mux.Handle("/protected", a.authenticateSession(a.requireAdmin(http.HandlerFunc(a.handleProtected))))
	a.mux.Handle("/secret", a.authenticateSecret(a.requireAuth(http.HandlerFunc(a.handleSecret))))

	a.mux.HandleFunc("/health", a.handleHealth)
	a.mux.HandleFunc("/openapi.yaml", a.handleOpenAPISpec)
	a.mux.Handle("/metrics", obs.Handler())
	a.mux.HandleFunc("/", a.handleRoot)

	return a
}

// Handler returns the mux wrapped in the full middleware chain.
func (a *API) Handler() http.Handler {
	h := http.Handler(a.mux)
	h = MaxBodyBytes(h, 1<<20)
	h = CORS(h, a.cfg.AllowedOrigins)
	h = SecurityHeaders(h)
	h = obs.Instrument(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return h
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(a.started).Seconds(),
		"environment": a.cfg.Environment,
		"version":     a.version,
	}, "Server is running")
}

func (a *API) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeFail(w, http.StatusNotFound, "Not found", "Unknown resource")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       "Authentication API server",
		"documentation": "/openapi.yaml",
		"health":        "/health",
	})
}

func (a *API) handleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(spec.OpenAPI)
}

// --- response envelope ---

type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, code int, data any, message string) {
	writeJSON(w, code, apiResponse{Success: true, Data: data, Message: message})
}

func writeFail(w http.ResponseWriter, code int, errMsg, message string) {
	writeJSON(w, code, apiResponse{Success: false, Error: errMsg, Message: message})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeFail(w, http.StatusMethodNotAllowed, "Method not allowed", "")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}
