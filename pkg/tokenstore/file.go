package tokenstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tokenFile    = "auth_token"
	snapshotFile = "user.json"
)

// File persists the credential under a directory on disk, surviving
// process restarts the way browser local storage survives tab reloads.
// Reads degrade to "no token" when the directory is unreadable.
type File struct {
	mu  sync.Mutex
	dir string
}

// NewFile creates a file-backed store rooted at dir, creating the
// directory if needed. Files are written with 0600 permissions since
// the token is a live credential.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("tokenstore: empty directory")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("tokenstore: create %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) Token() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(f.dir, tokenFile))
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

func (f *File) SetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(filepath.Join(f.dir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("tokenstore: write token: %w", err)
	}
	return nil
}

func (f *File) Snapshot() ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(f.dir, snapshotFile))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (f *File) SetSnapshot(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(filepath.Join(f.dir, snapshotFile), data, 0o600); err != nil {
		return fmt.Errorf("tokenstore: write snapshot: %w", err)
	}
	return nil
}

// Clear removes the token and the snapshot. A missing file is not an
// error: logout must succeed even when nothing was stored.
func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for _, name := range []string{tokenFile, snapshotFile} {
		if err := os.Remove(filepath.Join(f.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ Store = (*File)(nil)
