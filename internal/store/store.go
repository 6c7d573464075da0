// Package store persists the task collection as a single JSON file.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskcli/internal/logging"
	"github.com/nibzard/taskcli/internal/todo"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
	indent   = "    "
)

// Store owns the JSON file holding every task. Each Load and Save call reads
// or rewrites the whole file; nothing is cached between calls.
type Store struct {
	path   string
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report discarded file contents.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Store backed by the file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureExists creates the parent directory and an empty collection file if
// either is missing. Safe to call repeatedly.
func (s *Store) EnsureExists() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return &todo.IOError{Op: "create data dir", Path: dir, Err: err}
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return &todo.IOError{Op: "create data file", Path: s.path, Err: err}
	}
	if _, err := f.WriteString("[]"); err != nil {
		f.Close()
		return &todo.IOError{Op: "write data file", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &todo.IOError{Op: "close data file", Path: s.path, Err: err}
	}
	s.logger.Debug("created task file", "path", s.path)
	return nil
}

// Load returns every stored task in file order.
//
// Contents that cannot be decoded (invalid JSON, a non-array document, or
// any malformed record) yield an empty collection and a nil error; the
// reason is logged as a warning. The same happens if the file vanishes
// between EnsureExists and the read. Other read failures are returned.
func (s *Store) Load() ([]todo.Task, error) {
	if err := s.EnsureExists(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []todo.Task{}, nil
		}
		return nil, &todo.IOError{Op: "read data file", Path: s.path, Err: err}
	}

	tasks, err := Decode(data)
	if err != nil {
		s.logger.Warn("ignoring unreadable task file", "path", s.path, "err", err)
		return []todo.Task{}, nil
	}

	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// Save replaces the file contents with tasks.
func (s *Store) Save(tasks []todo.Task) error {
	if err := s.EnsureExists(); err != nil {
		return err
	}

	data, err := Encode(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}

	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

// NextID returns 1 for an empty collection and otherwise one more than the
// largest id present. Removing the highest-id task frees its id for reuse.
func NextID(tasks []todo.Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

// Decode parses a task file. Any problem with the document or with a single
// record fails the whole decode.
func Decode(data []byte) ([]todo.Task, error) {
	var records []todo.Record
	if err := todo.DecodeDocument(data, &records); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}

	tasks := make([]todo.Task, 0, len(records))
	for i, r := range records {
		t, err := todo.FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Encode renders tasks as an indented JSON array with a trailing newline,
// keys in the order id, title, created_at, status, priority, description,
// due, tags.
// Non-ASCII text and HTML-sensitive characters are written literally.
func Encode(tasks []todo.Task) ([]byte, error) {
	records := make([]todo.StoredTask, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, t.Stored())
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &todo.IOError{Op: "create temp file", Path: dir, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &todo.IOError{Op: "write temp file", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &todo.IOError{Op: "close temp file", Path: tmpPath, Err: err}
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		os.Remove(tmpPath)
		return &todo.IOError{Op: "chmod temp file", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &todo.IOError{Op: "replace data file", Path: path, Err: err}
	}
	return nil
}
