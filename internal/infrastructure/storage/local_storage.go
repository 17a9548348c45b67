package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"furniture_estimates/internal/usecase/interfaces"
)

// LocalStorage writes uploads under Dir. The returned reference is the
// relative path "<base>/<name>" served by the static uploads route.
type LocalStorage struct {
	Dir string
}

var _ interfaces.IImageStorage = (*LocalStorage)(nil)

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStorage{Dir: dir}, nil
}

func (s *LocalStorage) Save(_ context.Context, filename, _ string, data []byte) (string, error) {
	name, err := RandomName(filename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path.Join(filepath.ToSlash(filepath.Base(s.Dir)), name), nil
}

// RandomName returns 32 random hex chars followed by the lower-cased
// extension of filename.
func RandomName(filename string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b) + strings.ToLower(filepath.Ext(filename)), nil
}
