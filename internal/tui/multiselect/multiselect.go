// Package multiselect provides the checkbox list used for category
// selections in the TUI.
package multiselect

import (
	"slices"
	"strings"

	"github.com/Iron-Ham/fruitfilter/internal/tui/styles"
)

// Model is a titled list of options, each selected or not, with a cursor.
// The options keep the order they were given in.
type Model struct {
	title    string
	options  []string
	selected map[string]bool
	cursor   int
}

// New creates a Model with every option selected.
func New(title string, options []string) *Model {
	m := &Model{title: title}
	m.reset(options)
	return m
}

func (m *Model) reset(options []string) {
	m.options = slices.Clone(options)
	m.selected = make(map[string]bool, len(options))
	for _, o := range options {
		m.selected[o] = true
	}
	m.cursor = 0
}

// Title returns the list's label.
func (m *Model) Title() string { return m.title }

// Options returns the available options.
func (m *Model) Options() []string { return slices.Clone(m.options) }

// SetOptions replaces the options. When they differ from the current ones
// every new option is selected and the cursor returns to the top; it reports
// whether that reset happened.
func (m *Model) SetOptions(options []string) bool {
	if slices.Equal(m.options, options) {
		return false
	}
	m.reset(options)
	return true
}

// Selected returns the selected options in option order. It is never nil,
// so an empty selection stays distinguishable from "no constraint".
func (m *Model) Selected() []string {
	out := make([]string, 0, len(m.options))
	for _, o := range m.options {
		if m.selected[o] {
			out = append(out, o)
		}
	}
	return out
}

// IsSelected reports whether option is selected.
func (m *Model) IsSelected(option string) bool { return m.selected[option] }

// Cursor returns the index of the highlighted option.
func (m *Model) Cursor() int { return m.cursor }

// CursorUp moves the cursor up, stopping at the first option.
func (m *Model) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// CursorDown moves the cursor down, stopping at the last option.
func (m *Model) CursorDown() {
	if m.cursor < len(m.options)-1 {
		m.cursor++
	}
}

// Toggle flips the option under the cursor.
func (m *Model) Toggle() {
	if len(m.options) == 0 {
		return
	}
	o := m.options[m.cursor]
	m.selected[o] = !m.selected[o]
}

// SelectAll selects every option.
func (m *Model) SelectAll() {
	for _, o := range m.options {
		m.selected[o] = true
	}
}

// SelectNone clears the selection.
func (m *Model) SelectNone() {
	for _, o := range m.options {
		m.selected[o] = false
	}
}

// Summary describes the selection in one line, for when the list is not
// focused.
func (m *Model) Summary() string {
	sel := m.Selected()
	switch {
	case len(m.options) == 0:
		return "(no values)"
	case len(sel) == 0:
		return "(none)"
	case len(sel) == len(m.options):
		return "all: " + strings.Join(sel, ", ")
	default:
		return strings.Join(sel, ", ")
	}
}

// View renders the list. Unfocused lists collapse to the title and
// Summary; focused lists show one checkbox per option with the cursor.
func (m *Model) View(st *styles.ThemedStyles, focused bool) string {
	var sb strings.Builder

	if !focused {
		sb.WriteString(st.Label.Render(m.title + ": "))
		sb.WriteString(st.Text.Render(m.Summary()))
		return sb.String()
	}

	sb.WriteString(st.LabelFocused.Render(m.title))
	for i, o := range m.options {
		sb.WriteString("\n")
		box := st.Unchecked.Render("[ ]")
		if m.selected[o] {
			box = st.Checked.Render("[x]")
		}
		line := box + " " + o
		if i == m.cursor {
			line = st.Cursor.Render("> ") + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
	}
	if len(m.options) == 0 {
		sb.WriteString("\n  " + st.Muted.Render("(no values)"))
	}
	return sb.String()
}
