package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/dashboard"
	"github.com/portfolio/backend/pkg/auth"
)

// AdminConfig configures the dashboard gate over HTTP.
type AdminConfig struct {
	Password      string
	SessionSecret []byte
	CookieSecure  bool
}

// AdminHandler exposes the dashboard gate: session check, login and logout.
// The persisted flag is a signed cookie, so each request gets its own gate.
type AdminHandler struct {
	cfg AdminConfig
}

func NewAdminHandler(cfg AdminConfig) *AdminHandler {
	return &AdminHandler{cfg: cfg}
}

func (h *AdminHandler) gate(w http.ResponseWriter, r *http.Request) *dashboard.Gate {
	flag := auth.NewCookieFlag(w, r, h.cfg.SessionSecret, h.cfg.CookieSecure)
	return dashboard.NewGate(h.cfg.Password, flag)
}

// RequirePassword closes the gated routes while no dashboard password is configured.
func (h *AdminHandler) RequirePassword(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.Password == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_configured"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type sessionResponse struct {
	Authed bool `json:"authed"`
}

// Session handles GET /api/admin/session.
func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request) {
	state := h.gate(w, r).Mount()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sessionResponse{Authed: state == dashboard.Authed})
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	err := h.gate(w, r).Login(req.Password)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, dashboard.ErrNotConfigured):
		slog.Warn("dashboard login attempted without a configured password")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "not_configured",
			"message": dashboard.LoginMessage(err),
		})
	case errors.Is(err, dashboard.ErrIncorrectPassword):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "incorrect_password",
			"message": dashboard.LoginMessage(err),
		})
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "login_failed"})
	}
}

// Logout handles POST /api/admin/logout.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.gate(w, r).Logout(); err != nil {
		slog.Warn("dashboard logout", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}
