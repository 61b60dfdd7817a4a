package export

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// maxSuffix bounds the search for a free file name.
const maxSuffix = 10000

// Store writes downloaded chart images into a directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a Store and ensures the directory exists.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export store: mkdir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save writes data under name, adding -1, -2, ... before the extension rather
// than overwriting an existing file. It returns the written path.
func (s *Store) Save(name string, data []byte) (string, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("export store: invalid file name %q", name)
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < maxSuffix; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		path := filepath.Join(s.dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("export store: create %s: %w", path, err)
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			if rmErr := os.Remove(path); rmErr != nil {
				slog.Debug("export cleanup failed", "path", path, "error", rmErr)
			}
			return "", fmt.Errorf("export store: write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("export store: close %s: %w", path, err)
		}
		slog.Info("chart exported", "path", path, "bytes", len(data))
		return path, nil
	}
	return "", fmt.Errorf("export store: no free name for %s in %s", name, s.dir)
}
