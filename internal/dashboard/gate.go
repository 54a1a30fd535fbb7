// Package dashboard implements the message dashboard: a shared-password gate
// and a locally filtered view over the contacts collection.
package dashboard

import (
	"crypto/subtle"
	"errors"
	"log/slog"
)

// State of the dashboard gate.
type State int

const (
	CheckingAuth State = iota
	Authed
	Unauthed
)

func (s State) String() string {
	switch s {
	case CheckingAuth:
		return "checking"
	case Authed:
		return "authed"
	case Unauthed:
		return "unauthed"
	default:
		return "unknown"
	}
}

var (
	// ErrNotConfigured is returned by Login when no shared password is set.
	ErrNotConfigured = errors.New("dashboard: password not configured")
	// ErrIncorrectPassword is returned by Login on a mismatch.
	ErrIncorrectPassword = errors.New("dashboard: incorrect password")
)

// User-facing messages shown next to the control that failed.
const (
	MsgNotConfigured     = "Dashboard password is not configured."
	MsgIncorrectPassword = "Incorrect password."
	MsgLoadFailed        = "Failed to load messages."
	MsgDeleteFailed      = "Failed to delete message."
)

// LoginMessage maps a Login error to its user-facing text.
func LoginMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return MsgNotConfigured
	case errors.Is(err, ErrIncorrectPassword):
		return MsgIncorrectPassword
	default:
		return err.Error()
	}
}

// SessionFlag is the persisted "already logged in" marker.
// Load is synchronous and never touches the network.
type SessionFlag interface {
	Load() bool
	Grant() error
	Revoke() error
}

// Gate guards the dashboard with one shared password. It is an access
// convenience, not a security boundary.
type Gate struct {
	secret string
	flag   SessionFlag
	state  State
}

// NewGate returns a gate in the CheckingAuth state.
func NewGate(secret string, flag SessionFlag) *Gate {
	return &Gate{secret: secret, flag: flag, state: CheckingAuth}
}

func (g *Gate) State() State { return g.state }

// Mount resolves CheckingAuth from the persisted flag.
func (g *Gate) Mount() State {
	if g.flag.Load() {
		g.state = Authed
	} else {
		g.state = Unauthed
	}
	return g.state
}

// Login compares password with the shared secret. On a match the gate becomes
// Authed and the flag is persisted; a flag write failure is logged and the
// session continues unpersisted.
func (g *Gate) Login(password string) error {
	if g.state == CheckingAuth {
		g.Mount()
	}
	if g.state == Authed {
		return nil
	}
	if g.secret == "" {
		return ErrNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.secret)) != 1 {
		return ErrIncorrectPassword
	}
	g.state = Authed
	if err := g.flag.Grant(); err != nil {
		slog.Warn("dashboard session flag not persisted", "error", err)
	}
	return nil
}

// Logout clears the flag and returns to Unauthed.
func (g *Gate) Logout() error {
	g.state = Unauthed
	return g.flag.Revoke()
}
