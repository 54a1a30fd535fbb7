package dashboard

import (
	"errors"
	"path/filepath"
	"testing"
)

// memFlag is an in-memory SessionFlag.
type memFlag struct {
	set       bool
	grantErr  error
	revokeErr error
}

func (f *memFlag) Load() bool { return f.set }

func (f *memFlag) Grant() error {
	if f.grantErr != nil {
		return f.grantErr
	}
	f.set = true
	return nil
}

func (f *memFlag) Revoke() error {
	f.set = false
	return f.revokeErr
}

func TestGate_InitialStateIsChecking(t *testing.T) {
	g := NewGate("pw", &memFlag{})
	if g.State() != CheckingAuth {
		t.Errorf("expected CheckingAuth, got %v", g.State())
	}
}

func TestGate_Mount(t *testing.T) {
	if s := NewGate("pw", &memFlag{set: true}).Mount(); s != Authed {
		t.Errorf("expected Authed with flag set, got %v", s)
	}
	if s := NewGate("pw", &memFlag{}).Mount(); s != Unauthed {
		t.Errorf("expected Unauthed without flag, got %v", s)
	}
}

func TestGate_Login_CorrectPasswordPersistsAcrossMounts(t *testing.T) {
	flag := &memFlag{}
	g := NewGate("s3cret", flag)
	g.Mount()

	if err := g.Login("s3cret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.State() != Authed {
		t.Errorf("expected Authed, got %v", g.State())
	}

	remount := NewGate("s3cret", flag)
	if s := remount.Mount(); s != Authed {
		t.Errorf("expected next mount to start Authed, got %v", s)
	}

	if err := remount.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if remount.State() != Unauthed {
		t.Errorf("expected Unauthed after logout, got %v", remount.State())
	}
	if s := NewGate("s3cret", flag).Mount(); s != Unauthed {
		t.Errorf("expected next mount after logout to start Unauthed, got %v", s)
	}
}

func TestGate_Login_IncorrectPassword(t *testing.T) {
	flag := &memFlag{}
	g := NewGate("s3cret", flag)
	g.Mount()

	err := g.Login("S3CRET")
	if !errors.Is(err, ErrIncorrectPassword) {
		t.Errorf("expected ErrIncorrectPassword, got %v", err)
	}
	if LoginMessage(err) != "Incorrect password." {
		t.Errorf("unexpected message %q", LoginMessage(err))
	}
	if g.State() != Unauthed || flag.set {
		t.Error("gate must stay Unauthed without persisting the flag")
	}
}

func TestGate_Login_NotConfiguredRejectsEverything(t *testing.T) {
	g := NewGate("", &memFlag{})
	g.Mount()

	for _, pw := range []string{"", "anything"} {
		err := g.Login(pw)
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("password %q: expected ErrNotConfigured, got %v", pw, err)
		}
	}
	if LoginMessage(ErrNotConfigured) != "Dashboard password is not configured." {
		t.Errorf("unexpected message %q", LoginMessage(ErrNotConfigured))
	}
	if g.State() != Unauthed {
		t.Errorf("expected Unauthed, got %v", g.State())
	}
}

func TestGate_Login_MountsImplicitly(t *testing.T) {
	g := NewGate("pw", &memFlag{})
	if err := g.Login("pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.State() != Authed {
		t.Errorf("expected Authed, got %v", g.State())
	}
}

func TestGate_Login_FlagWriteFailureStillAuthed(t *testing.T) {
	g := NewGate("pw", &memFlag{grantErr: errors.New("read-only")})
	g.Mount()

	if err := g.Login("pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.State() != Authed {
		t.Errorf("expected Authed, got %v", g.State())
	}
}

func TestLoginMessage_Nil(t *testing.T) {
	if LoginMessage(nil) != "" {
		t.Error("expected empty message for nil error")
	}
}

func TestState_String(t *testing.T) {
	if Authed.String() != "authed" || Unauthed.String() != "unauthed" || CheckingAuth.String() != "checking" {
		t.Error("unexpected state names")
	}
}

func TestFileFlag_Lifecycle(t *testing.T) {
	flag := FileFlag{Path: filepath.Join(t.TempDir(), "nested", "flag")}

	if flag.Load() {
		t.Error("expected false before Grant")
	}
	if err := flag.Grant(); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if !flag.Load() {
		t.Error("expected true after Grant")
	}
	if err := flag.Revoke(); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if flag.Load() {
		t.Error("expected false after Revoke")
	}
	if err := flag.Revoke(); err != nil {
		t.Errorf("Revoke on missing file should succeed, got %v", err)
	}
}

func TestFileFlag_WithGate(t *testing.T) {
	flag := FileFlag{Path: filepath.Join(t.TempDir(), "flag")}
	g := NewGate("pw", flag)
	g.Mount()
	if err := g.Login("pw"); err != nil {
		t.Fatal(err)
	}
	if s := NewGate("pw", FileFlag{Path: flag.Path}).Mount(); s != Authed {
		t.Errorf("expected Authed from file flag, got %v", s)
	}
}
