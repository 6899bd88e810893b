// Package renderer turns view frames into terminal tables. It is shared by
// the TUI and the headless query command.
package renderer

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/Iron-Ham/fruitfilter/internal/tui/styles"
	"github.com/Iron-Ham/fruitfilter/internal/util"
	"github.com/Iron-Ham/fruitfilter/internal/view"
)

// Options controls how a frame is drawn.
type Options struct {
	// MaxCellWidth truncates longer cells. Zero disables truncation.
	MaxCellWidth int
	// Width caps the table's total width. Zero leaves it unconstrained.
	Width int
	// Plain drops colors, for output that is not a terminal.
	Plain bool
	// Styles defaults to the active theme.
	Styles *styles.ThemedStyles
}

// Table renders f with a header row and a rounded border.
func Table(f view.Frame, opts Options) string {
	st := opts.Styles
	if st == nil {
		st = styles.Active()
	}

	headers := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		headers[i] = util.TruncateANSI(c, opts.MaxCellWidth)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...)

	for _, row := range f.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = util.TruncateANSI(c, opts.MaxCellWidth)
		}
		t.Row(cells...)
	}

	if opts.Width > 0 {
		t.Width(opts.Width)
	}

	pad := lipgloss.NewStyle().Padding(0, 1)
	if opts.Plain {
		t.StyleFunc(func(row, col int) lipgloss.Style { return pad })
	} else {
		t.BorderStyle(st.TableBorder)
		t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.TableHeader
			}
			return st.TableCell
		})
	}

	return t.String()
}

// Count renders a row count line such as "3 rows".
func Count(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%s rows", humanize.Comma(int64(n)))
}
