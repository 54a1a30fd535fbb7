package auth

import (
	"net/http"
	"time"
)

// DashboardCookieName is the cookie holding the signed dashboard flag.
const DashboardCookieName = "msg-dashboard-authed"

const (
	dashboardFlagValue = "true"
	dashboardCookieTTL = 365 * 24 * time.Hour
)

// CookieFlag persists the dashboard "logged in" flag in a signed cookie.
// It is bound to one request/response pair.
type CookieFlag struct {
	w      http.ResponseWriter
	r      *http.Request
	secret []byte
	secure bool
}

func NewCookieFlag(w http.ResponseWriter, r *http.Request, secret []byte, secure bool) *CookieFlag {
	return &CookieFlag{w: w, r: r, secret: secret, secure: secure}
}

// Load reports whether the request carries a valid flag.
func (f *CookieFlag) Load() bool {
	return DashboardAuthed(f.r, f.secret)
}

func (f *CookieFlag) Grant() error {
	http.SetCookie(f.w, &http.Cookie{
		Name:     DashboardCookieName,
		Value:    CreateSessionToken(dashboardFlagValue, f.secret),
		Path:     "/",
		MaxAge:   int(dashboardCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (f *CookieFlag) Revoke() error {
	http.SetCookie(f.w, &http.Cookie{
		Name:     DashboardCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// DashboardAuthed verifies the dashboard cookie on r.
func DashboardAuthed(r *http.Request, secret []byte) bool {
	cookie, err := r.Cookie(DashboardCookieName)
	if err != nil {
		return false
	}
	payload, err := VerifySessionToken(cookie.Value, secret)
	return err == nil && payload == dashboardFlagValue
}
