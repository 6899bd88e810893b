package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Iron-Ham/fruitfilter/internal/fruit"
	"github.com/Iron-Ham/fruitfilter/internal/view"
)

// ValidationError is one rejected config value.
type ValidationError struct {
	Field   string // dotted key, e.g. "data.rows"
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors reports several rejected values at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err)
	}
	return sb.String()
}

// ValidLogLevels lists the accepted logging.level values.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Bounds for tui.max_cell_width.
const (
	MinCellWidth = 8
	MaxCellWidth = 200
)

const maxLogSizeMB = 1000

// problems collects validation failures in the order they are found.
type problems []ValidationError

func (p *problems) add(field string, value any, format string, args ...any) {
	*p = append(*p, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func oneOf(valid []string) string {
	return "must be one of: " + strings.Join(valid, ", ")
}

// Validate returns every invalid value in c, or nil.
func (c *Config) Validate() []ValidationError {
	var p problems
	c.checkData(&p)
	c.checkTUI(&p)
	c.checkLogging(&p)
	c.checkViews(&p)
	return p
}

func (c *Config) checkData(p *problems) {
	d := c.Data
	if d.Source != "" && !slices.Contains(fruit.ValidSources(), d.Source) {
		p.add("data.source", d.Source, "%s", oneOf(fruit.ValidSources()))
	}

	switch d.Source {
	case fruit.SourceSeeded:
		if d.Rows < 1 || d.Rows > fruit.MaxRows {
			p.add("data.rows", d.Rows, "must be between 1 and %d", fruit.MaxRows)
		}
	case fruit.SourceFile:
		if strings.TrimSpace(d.File) == "" {
			p.add("data.file", d.File, "is required when data.source is %q", fruit.SourceFile)
		}
	}
}

func (c *Config) checkTUI(p *problems) {
	t := c.TUI
	if t.MaxCellWidth < MinCellWidth || t.MaxCellWidth > MaxCellWidth {
		p.add("tui.max_cell_width", t.MaxCellWidth, "must be between %d and %d", MinCellWidth, MaxCellWidth)
	}
	if t.DateFormat != "" && !roundTrips(t.DateFormat) {
		p.add("tui.date_format", t.DateFormat, "must be a Go time layout with year, month and day")
	}
}

// roundTrips reports whether a day formatted with layout parses back to
// the same day.
func roundTrips(layout string) bool {
	day := fruit.Day(2023, time.March, 31)
	parsed, err := time.Parse(layout, day.Format(layout))
	return err == nil && parsed.Equal(day)
}

func (c *Config) checkLogging(p *problems) {
	l := c.Logging
	if l.Level != "" && !slices.Contains(ValidLogLevels(), l.Level) {
		p.add("logging.level", l.Level, "%s", oneOf(ValidLogLevels()))
	}

	switch {
	case l.MaxSizeMB <= 0:
		p.add("logging.max_size_mb", l.MaxSizeMB, "must be positive")
	case l.MaxSizeMB > maxLogSizeMB:
		p.add("logging.max_size_mb", l.MaxSizeMB, "exceeds maximum of %dMB", maxLogSizeMB)
	}

	if l.MaxBackups < 0 {
		p.add("logging.max_backups", l.MaxBackups, "must be non-negative")
	}
}

func (c *Config) checkViews(p *problems) {
	if _, err := view.Build(c.Views); err != nil {
		p.add("views", len(c.Views), "%s", err)
	}
}
