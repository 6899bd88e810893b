// Package styles holds the lipgloss palettes and styles used by the TUI and
// the table renderer of the query command.
package styles

import "github.com/charmbracelet/lipgloss"

// ThemedStyles are the lipgloss styles derived from one palette.
type ThemedStyles struct {
	Palette *ColorPalette

	// Plain foregrounds
	Primary lipgloss.Style
	Muted   lipgloss.Style
	Text    lipgloss.Style

	Title          lipgloss.Style
	Section        lipgloss.Style
	SectionFocused lipgloss.Style // section holding the focused widget
	Notice         lipgloss.Style

	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Checked      lipgloss.Style
	Unchecked    lipgloss.Style
	Cursor       lipgloss.Style

	TableBorder lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableCount  lipgloss.Style

	HelpBar lipgloss.Style
	HelpKey lipgloss.Style
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// NewThemedStyles derives every style from p.
func NewThemedStyles(p *ColorPalette) *ThemedStyles {
	accent := fg(p.Primary).Bold(true)
	cell := fg(p.Text).Padding(0, 1)

	return &ThemedStyles{
		Palette: p,

		Primary: fg(p.Primary),
		Muted:   fg(p.Muted),
		Text:    fg(p.Text),

		Title:          accent.MarginBottom(1),
		Section:        fg(p.Text).Bold(true),
		SectionFocused: accent,
		Notice:         fg(p.Warning).Italic(true),

		Label:        fg(p.Muted),
		LabelFocused: accent,
		Checked:      fg(p.Secondary),
		Unchecked:    fg(p.Muted),
		Cursor:       fg(p.Text).Bold(true).Background(p.Highlight),

		TableBorder: fg(p.Border),
		TableHeader: accent.Padding(0, 1),
		TableCell:   cell,
		TableCount:  fg(p.Muted),

		HelpBar: fg(p.Muted).MarginTop(1),
		HelpKey: fg(p.Secondary).Bold(true),
	}
}

// activeTheme is read and replaced only from the Bubble Tea event loop and
// before the program starts.
var activeTheme = NewThemedStyles(DefaultPalette())

// SetActiveTheme switches to the named theme; unknown names get the
// default palette.
func SetActiveTheme(name ThemeName) {
	activeTheme = NewThemedStyles(GetPalette(name))
}

// Active returns the styles of the current theme.
func Active() *ThemedStyles {
	return activeTheme
}
