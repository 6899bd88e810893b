package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/fruitfilter/internal/errors"
	"github.com/Iron-Ham/fruitfilter/internal/tui/renderer"
	"github.com/Iron-Ham/fruitfilter/internal/view"
)

// Output formats.
const (
	formatTable = "table"
	formatYAML  = "yaml"
)

func validFormats() []string {
	return []string{formatTable, formatYAML}
}

func checkFormat(format string) error {
	if slices.Contains(validFormats(), format) {
		return nil
	}
	return errors.NewValidationError("expected one of: " + strings.Join(validFormats(), ", ")).
		WithField("format").
		WithValue(format)
}

// terminal reports whether w is a terminal and, if so, its width.
func terminal(w io.Writer) (width int, ok bool) {
	f, isFile := w.(*os.File)
	if !isFile || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, true
	}
	return width, true
}

// writeTable renders f followed by a row count. On a terminal the table is
// colored and squeezed to the terminal width when it would overflow.
func writeTable(w io.Writer, f view.Frame, maxCellWidth int) error {
	width, tty := terminal(w)
	opts := renderer.Options{MaxCellWidth: maxCellWidth, Plain: !tty}

	out := renderer.Table(f, opts)
	if width > 0 && lipgloss.Width(out) > width {
		opts.Width = width
		out = renderer.Table(f, opts)
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n", out, renderer.Count(f.Len()))
	return err
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}
