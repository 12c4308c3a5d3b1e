package upload

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// PublicPrefix is the URL path under which uploaded files are served.
const PublicPrefix = "/uploads"

// Sink writes uploaded files into one flat directory, naming each one after
// the upload time in Unix milliseconds plus the original extension. Two
// uploads within the same millisecond with the same extension overwrite each
// other.
type Sink struct {
	dir string
	now func() time.Time
}

func NewSink(dir string) *Sink {
	return &Sink{dir: dir, now: time.Now}
}

// WithClock replaces the time source.
func (s *Sink) WithClock(now func() time.Time) *Sink {
	s.now = now
	return s
}

// Save stores r and returns the public path of the new file.
func (s *Sink) Save(originalName string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("upload: create dir: %w", err)
	}

	name := strconv.FormatInt(s.now().UnixMilli(), 10) + filepath.Ext(originalName)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("upload: create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("upload: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("upload: close %s: %w", name, err)
	}
	return PublicPath(name), nil
}

// PublicPath maps a stored image reference to the path clients fetch it
// from. Only the base name is kept; empty stays empty.
func PublicPath(stored string) string {
	if stored == "" {
		return ""
	}
	return PublicPrefix + "/" + path.Base(strings.ReplaceAll(stored, `\`, "/"))
}
