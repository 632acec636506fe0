package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	gap "github.com/muesli/go-app-paths"
)

// DefaultDir returns the user-scoped directory for cached results.
func DefaultDir() (string, error) {
	dir, err := gap.NewScope(gap.User, "codecomb").CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "results"), nil
}

// FileCache stores one result per file under dir. Writes go through a
// temp file and a rename so readers never see partial content.
type FileCache struct {
	dir string
}

func NewFileCache(dir string) *FileCache {
	return &FileCache{dir: dir}
}

// Fingerprints contain characters that have no business in filenames.
var keyReplacer = strings.NewReplacer(":", "-", "/", "_", string(os.PathSeparator), "_")

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, keyReplacer.Replace(key))
}

func (c *FileCache) Get(key string) (string, bool) {
	b, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false
	}
	if err != nil {
		log.Warn("cache read failed", "key", key, "error", err)
		return "", false
	}
	log.Debug("cache hit", "key", key, "size", humanize.Bytes(uint64(len(b))))
	return string(b), true
}

func (c *FileCache) Set(key, value string) {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		log.Warn("cache dir unavailable", "dir", c.dir, "error", err)
		return
	}
	tmp, err := os.CreateTemp(c.dir, "write-*")
	if err != nil {
		log.Warn("cache write failed", "key", key, "error", err)
		return
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()           //nolint:errcheck
		os.Remove(tmp.Name()) //nolint:errcheck
		log.Warn("cache write failed", "key", key, "error", err)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		log.Warn("cache write failed", "key", key, "error", err)
		return
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		log.Warn("cache write failed", "key", key, "error", err)
		return
	}
	log.Debug("cache store", "key", key, "size", humanize.Bytes(uint64(len(value))))
}
