package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const dashboardKey contextKey = "dashboard_authed"

// withDashboard marks the context as carrying a verified dashboard flag.
func withDashboard(ctx context.Context) context.Context {
	return context.WithValue(ctx, dashboardKey, true)
}

// dashboardFromContext reports whether RequireDashboard admitted the request.
func dashboardFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(dashboardKey).(bool)
	return v
}

// RequireDashboard rejects requests without a valid dashboard cookie.
func RequireDashboard(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := r.Cookie(DashboardCookieName); err != nil {
				writeUnauthorized(w, "unauthorized")
				return
			}
			if !DashboardAuthed(r, secret) {
				writeUnauthorized(w, "invalid_session")
				return
			}
			next.ServeHTTP(w, r.WithContext(withDashboard(r.Context())))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
