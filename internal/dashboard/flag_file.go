package dashboard

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileFlag persists the session flag as a small file holding "true".
type FileFlag struct {
	Path string
}

var _ SessionFlag = FileFlag{}

// DefaultFlagPath returns the per-user location of the flag file.
func DefaultFlagPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "msgdash", "msg-dashboard-authed")
}

func (f FileFlag) Load() bool {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(b)) == "true"
}

func (f FileFlag) Grant() error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.Path, []byte("true"), 0o600)
}

func (f FileFlag) Revoke() error {
	err := os.Remove(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
