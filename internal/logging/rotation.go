package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const megabyte = 1 << 20

// RotationConfig bounds the size of the log on disk.
type RotationConfig struct {
	// MaxSizeMB is the size at which the log is rolled over. 0 never rolls.
	MaxSizeMB int
	// MaxBackups is how many rolled-over files are kept as name.1, name.2...
	MaxBackups int
}

// DefaultRotationConfig keeps up to 15MB of logs.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{MaxSizeMB: 5, MaxBackups: 2}
}

func (c RotationConfig) limit() int64 {
	return int64(c.MaxSizeMB) * megabyte
}

var errWriterClosed = errors.New("log file is closed")

// RotatingWriter appends to a log file and rolls it over before a write
// would take it past the configured size. It is safe for concurrent use.
type RotatingWriter struct {
	path string
	cfg  RotationConfig

	mu   sync.Mutex
	file *os.File
	size int64
}

// NewRotatingWriter opens path for appending, creating it and its parent
// directories as needed.
func NewRotatingWriter(path string, cfg RotationConfig) (*RotatingWriter, error) {
	rw := &RotatingWriter{path: path, cfg: cfg}
	if err := rw.open(); err != nil {
		return nil, err
	}
	return rw, nil
}

// open requires rw.mu or exclusive access.
func (rw *RotatingWriter) open() error {
	if err := os.MkdirAll(filepath.Dir(rw.path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(rw.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	rw.file, rw.size = f, st.Size()
	return nil
}

func (rw *RotatingWriter) full(n int) bool {
	limit := rw.cfg.limit()
	return limit > 0 && rw.size > 0 && rw.size+int64(n) > limit
}

// Write appends p, rolling the file over first when p would not fit.
func (rw *RotatingWriter) Write(p []byte) (int, error) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.file == nil {
		return 0, errWriterClosed
	}
	if rw.full(len(p)) {
		if err := rw.roll(); err != nil {
			return 0, err
		}
	}

	n, err := rw.file.Write(p)
	rw.size += int64(n)
	return n, err
}

func (rw *RotatingWriter) backup(n int) string {
	return fmt.Sprintf("%s.%d", rw.path, n)
}

// roll requires rw.mu. The live file is reopened even when renaming fails.
func (rw *RotatingWriter) roll() error {
	err := rw.file.Close()
	rw.file = nil
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}

	var moveErr error
	if rw.cfg.MaxBackups > 0 {
		rw.shiftBackups()
		if err := os.Rename(rw.path, rw.backup(1)); err != nil {
			moveErr = fmt.Errorf("failed to rename log file: %w", err)
		}
	} else if err := os.Remove(rw.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		moveErr = fmt.Errorf("failed to remove log file: %w", err)
	}

	if err := rw.open(); err != nil {
		return errors.Join(moveErr, err)
	}
	return moveErr
}

// shiftBackups drops the oldest backup and renames name.i to name.i+1.
func (rw *RotatingWriter) shiftBackups() {
	_ = os.Remove(rw.backup(rw.cfg.MaxBackups))
	for i := rw.cfg.MaxBackups - 1; i > 0; i-- {
		_ = os.Rename(rw.backup(i), rw.backup(i+1))
	}
}

// Close syncs and closes the file. Further calls do nothing.
func (rw *RotatingWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.file == nil {
		return nil
	}
	f := rw.file
	rw.file = nil
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

// CurrentSize reports the size of the live log file in bytes.
func (rw *RotatingWriter) CurrentSize() int64 {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.size
}

// FilePath returns the live log file's path.
func (rw *RotatingWriter) FilePath() string {
	return rw.path
}
