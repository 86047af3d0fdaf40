package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/diag"
)

// timestampLayout is ISO-8601 in UTC with millisecond precision and the
// colons already replaced by hyphens.
const timestampLayout = "2006-01-02T15-04-05.000Z"

// fallbackName is used when a name sanitizes down to nothing.
const fallbackName = "image"

// maxCollisionSuffix bounds the numeric suffix search after a timestamp collision.
const maxCollisionSuffix = 1000

// PersistenceError reports a failure to write a file under the output directory.
type PersistenceError struct {
	// Path is the file that could not be written. Empty if the failure happened
	// before a path was chosen (for example, a base64 decode error).
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to save file: %v", e.Err)
	}
	return fmt.Sprintf("failed to save file %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Saver writes files into a single directory without ever overwriting
// existing content. It holds no mutable state and is safe for concurrent use.
type Saver struct {
	dir string
	now func() time.Time
}

// NewSaver returns a Saver rooted at dir, creating the directory (and any
// missing parents) if it does not exist yet.
func NewSaver(dir string) (*Saver, error) {
	log.Printf("File saver initialized with directory: %s", dir)

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		log.Printf("Directory does not exist, creating: %s", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &PersistenceError{Path: dir, Err: fmt.Errorf("create directory: %w", err)}
	}

	return &Saver{dir: dir, now: time.Now}, nil
}

// NewDesktopSaver returns a Saver for <home>/Desktop/<subdir>. The subdirectory
// name is sanitized, so it cannot escape the Desktop folder.
func NewDesktopSaver(subdir string) (*Saver, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	subdir = Sanitize(subdir)
	if subdir == "" {
		subdir = "generated-images"
	}

	return NewSaver(filepath.Join(home, "Desktop", subdir))
}

// Dir returns the directory this Saver writes into.
func (s *Saver) Dir() string {
	return s.dir
}

// SaveBase64 decodes standard base64 text and saves the result like Save.
func (s *Saver) SaveBase64(filename, b64 string) (string, error) {
	diag.Debugf("Saving base64 image as: %s", filename)

	content, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", &PersistenceError{Err: fmt.Errorf("decode base64: %w", err)}
	}
	return s.Save(filename, content)
}

// Save writes content to filename inside the Saver's directory and returns
// the path actually written.
//
// The name is sanitized first. If a file with that name already exists, a
// timestamped name is chosen instead; existing files are never modified.
func (s *Saver) Save(filename string, content []byte) (string, error) {
	name := Sanitize(filename)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if strings.TrimSpace(base) == "" {
		base = fallbackName
	}
	diag.Debugf("Sanitized filename: %q -> %q", filename, base+ext)

	path := filepath.Join(s.dir, base+ext)
	if exists(path) {
		stamped := base + "-" + s.now().UTC().Format(timestampLayout)
		path = filepath.Join(s.dir, stamped+ext)
		for i := 1; exists(path) && i <= maxCollisionSuffix; i++ {
			path = filepath.Join(s.dir, fmt.Sprintf("%s-%d%s", stamped, i, ext))
		}
		log.Printf("File already exists, using unique path: %s", path)
	}

	if err := writeExclusive(path, content); err != nil {
		log.Printf("Error saving file: %v", err)
		return "", &PersistenceError{Path: path, Err: err}
	}

	log.Printf("File successfully saved to: %s", path)
	return path, nil
}

// writeExclusive creates path and writes content, failing if path exists.
// A partially written file is removed.
func writeExclusive(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
