// Package outstore manages the directory of generated presentation files:
// naming, listing, serving and expiring them.
package outstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Store is a local directory holding generated .pptx files.
type Store struct {
	dir string
	log *slog.Logger
}

// FileInfo describes one stored presentation.
type FileInfo struct {
	Name    string    `json:"filename"`
	Size    int64     `json:"size_bytes"`
	ModTime time.Time `json:"created_at"`
}

// New creates the output directory if needed and returns a Store.
func New(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the output directory path.
func (s *Store) Dir() string {
	return s.dir
}

// GenerateFilename returns an unused presentation filename stamped with the
// given time. Collisions within the same second get a numeric suffix.
func (s *Store) GenerateFilename(now time.Time) string {
	base := fmt.Sprintf("presentation_%s", FormatTimestamp(now))
	name := base + ".pptx"
	for i := 2; ; i++ {
		if _, err := os.Stat(filepath.Join(s.dir, name)); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s_%d.pptx", base, i)
	}
}

// Resolve maps a client-supplied filename to a path inside the store,
// rejecting anything that would escape the directory.
func (s *Store) Resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid filename: %q", name)
	}
	if !strings.HasSuffix(name, ".pptx") {
		return "", fmt.Errorf("invalid filename: %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

// List returns stored presentations, newest first.
func (s *Store) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read output dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pptx") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ModTime.After(files[j].ModTime) })
	return files, nil
}

// Open opens a stored presentation for reading.
func (s *Store) Open(name string) (*os.File, FileInfo, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return nil, FileInfo{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, FileInfo{}, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, FileInfo{}, err
	}
	return f, FileInfo{Name: name, Size: stat.Size(), ModTime: stat.ModTime()}, nil
}

// Delete removes a stored presentation.
func (s *Store) Delete(name string) error {
	path, err := s.Resolve(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// CleanupOlderThan deletes presentations older than maxAge and returns how
// many were removed.
func (s *Store) CleanupOlderThan(maxAge time.Duration) (int, error) {
	files, err := s.List()
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-maxAge)

	removed := 0
	for _, f := range files {
		if f.ModTime.After(cutoff) {
			continue
		}
		if err := s.Delete(f.Name); err != nil {
			s.log.Warn("cleanup failed", "file", f.Name, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// StartCleanup runs CleanupOlderThan on a ticker until ctx is cancelled.
func (s *Store) StartCleanup(ctx context.Context, interval, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.CleanupOlderThan(maxAge)
				if err != nil {
					s.log.Warn("output cleanup failed", "error", err)
				} else if removed > 0 {
					s.log.Info("expired presentations removed", "count", removed)
				}
			}
		}
	}()
}

// FormatTimestamp renders a time in the compact form used in filenames.
func FormatTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename strips characters that are unsafe in filenames and caps
// the length.
func SanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, " ", "_")
	if len(name) > 200 {
		name = name[:200]
	}
	return name
}
