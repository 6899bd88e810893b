package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Log levels accepted in configuration.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// FileName is the log file created inside the log directory.
const FileName = "fruitfilter.log"

var slogLevels = map[string]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// sink is the destination shared by a Logger and all of its children.
type sink struct {
	mu   sync.Mutex
	file *RotatingWriter
}

func (s *sink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Logger writes JSON log lines through slog. Children made with With,
// WithView or WithCommand share the parent's destination. It is safe for
// concurrent use.
type Logger struct {
	slog *slog.Logger
	out  *sink
}

// NewLogger returns a Logger writing to dir/fruitfilter.log, rotated per
// rotation. An empty dir logs to stderr.
func NewLogger(dir string, level string, rotation RotationConfig) (*Logger, error) {
	if dir == "" {
		return newLogger(os.Stderr, &sink{}, level), nil
	}

	rw, err := NewRotatingWriter(filepath.Join(dir, FileName), rotation)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return newLogger(rw, &sink{file: rw}, level), nil
}

// NewWriterLogger returns a Logger writing to w. Closing it leaves w open.
func NewWriterLogger(w io.Writer, level string) *Logger {
	return newLogger(w, &sink{}, level)
}

// NopLogger returns a Logger that discards everything.
func NopLogger() *Logger {
	return NewWriterLogger(io.Discard, LevelError)
}

func newLogger(w io.Writer, out *sink, level string) *Logger {
	opts := &slog.HandlerOptions{Level: slogLevels[ParseLevel(level)]}
	return &Logger{slog: slog.New(slog.NewJSONHandler(w, opts)), out: out}
}

// ParseLevel normalizes level to one of the Level constants, falling back
// to LevelInfo.
func ParseLevel(level string) string {
	level = strings.ToUpper(level)
	if _, ok := slogLevels[level]; ok {
		return level
	}
	return LevelInfo
}

// ValidLevels returns the accepted level names, most verbose first.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}

// WithView tags every line with the view it concerns.
func (l *Logger) WithView(key string) *Logger {
	return l.With("view", key)
}

// WithCommand tags every line with the CLI command being run.
func (l *Logger) WithCommand(name string) *Logger {
	return l.With("command", name)
}

// With returns a child Logger carrying the given key-value pairs. Pairs
// whose key is not a string are dropped.
func (l *Logger) With(args ...any) *Logger {
	kv := pairs(args)
	if len(kv) == 0 {
		return l
	}
	return &Logger{slog: l.slog.With(kv...), out: l.out}
}

func pairs(args []any) []any {
	kv := make([]any, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			kv = append(kv, key, args[i+1])
		}
	}
	return kv
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, pairs(args)...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, pairs(args)...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, pairs(args)...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, pairs(args)...) }

// Close closes the log file, if any. It is shared with every child, so
// closing one closes them all.
func (l *Logger) Close() error {
	return l.out.close()
}
