package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LatestFile is the fixed name that mirrors the most recent snapshot
const LatestFile = "latest.md"

var fsSafe = strings.NewReplacer(":", "-", ".", "-")

// FileName builds <env>_<timestamp>_<runID>.md where the timestamp is now in
// ISO-8601 with ':' and '.' replaced by '-'. Run IDs come from the server and
// must not carry path separators.
func FileName(env string, now time.Time, runID string) (string, error) {
	if err := validateRunID(runID); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s_%s.md", env, fsSafe.Replace(FormatISO(now)), runID), nil
}

func validateRunID(runID string) error {
	if runID == "" {
		return fmt.Errorf("run ID is empty")
	}
	if strings.ContainsAny(runID, `/\`+"\x00") || runID == "." || runID == ".." {
		return fmt.Errorf("unsafe run ID for a file name: %q", runID)
	}
	return nil
}

// Store writes snapshot files into a single directory
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// LatestPath returns the path of latest.md
func (s *Store) LatestPath() string {
	return filepath.Join(s.dir, LatestFile)
}

// Write creates the directory if needed and writes content to name,
// truncating any existing file. It returns the full path.
func (s *Store) Write(name string, content []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return path, nil
}

// UpdateLatest copies the bytes of src over latest.md
func (s *Store) UpdateLatest(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer in.Close()

	dst := s.LatestPath()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", LatestFile, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("failed to copy snapshot to %s: %w", LatestFile, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", LatestFile, err)
	}
	return dst, nil
}
