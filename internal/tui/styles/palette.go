package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Built-in theme names.
const (
	ThemeDefault ThemeName = "default"
	ThemeCitrus  ThemeName = "citrus"
	ThemeBerry   ThemeName = "berry"
	ThemeDracula ThemeName = "dracula"
	ThemeNord    ThemeName = "nord"
	ThemeLight   ThemeName = "light"
)

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (titles, focused widgets)
	Primary lipgloss.Color
	// Secondary accent color (checked options, key hints)
	Secondary lipgloss.Color
	// Warning color (empty-result notices)
	Warning lipgloss.Color
	// Error color
	Error lipgloss.Color
	// Muted color (placeholders, unchecked options, help)
	Muted lipgloss.Color
	// Surface color (table header background)
	Surface lipgloss.Color
	// Text color (primary text)
	Text lipgloss.Color
	// Border color (table and panel borders)
	Border lipgloss.Color
	// Highlight is the background of the focused row or option
	Highlight lipgloss.Color
}

// palette builds a ColorPalette from hex strings in field order.
func palette(primary, secondary, warning, errColor, muted, surface, text, border, highlight string) *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color(primary),
		Secondary: lipgloss.Color(secondary),
		Warning:   lipgloss.Color(warning),
		Error:     lipgloss.Color(errColor),
		Muted:     lipgloss.Color(muted),
		Surface:   lipgloss.Color(surface),
		Text:      lipgloss.Color(text),
		Border:    lipgloss.Color(border),
		Highlight: lipgloss.Color(highlight),
	}
}

// DefaultPalette returns the violet and green dark palette.
func DefaultPalette() *ColorPalette {
	return palette("#A78BFA", "#10B981", "#F59E0B", "#F87171", "#9CA3AF", "#1F2937", "#F9FAFB", "#6B7280", "#374151")
}

// CitrusPalette returns a lemon and lime dark palette.
func CitrusPalette() *ColorPalette {
	return palette("#FACC15", "#84CC16", "#FB923C", "#EF4444", "#A8A29E", "#1C1917", "#FAFAF9", "#57534E", "#44403C")
}

// BerryPalette returns a raspberry and blueberry dark palette.
func BerryPalette() *ColorPalette {
	return palette("#F472B6", "#818CF8", "#FBBF24", "#E11D48", "#A1A1AA", "#18181B", "#FAFAFA", "#52525B", "#3F3F46")
}

// DraculaPalette returns the Dracula palette.
func DraculaPalette() *ColorPalette {
	return palette("#BD93F9", "#50FA7B", "#F1FA8C", "#FF5555", "#6272A4", "#282A36", "#F8F8F2", "#44475A", "#44475A")
}

// NordPalette returns the Nord palette: frost accents on polar night.
func NordPalette() *ColorPalette {
	return palette("#88C0D0", "#A3BE8C", "#EBCB8B", "#BF616A", "#4C566A", "#2E3440", "#ECEFF4", "#3B4252", "#434C5E")
}

// LightPalette returns a palette for light terminal backgrounds.
func LightPalette() *ColorPalette {
	return palette("#7C3AED", "#047857", "#B45309", "#B91C1C", "#6B7280", "#F3F4F6", "#111827", "#D1D5DB", "#E5E7EB")
}

// builtins lists the built-in themes in display order.
var builtins = []struct {
	name    ThemeName
	palette func() *ColorPalette
}{
	{ThemeDefault, DefaultPalette},
	{ThemeCitrus, CitrusPalette},
	{ThemeBerry, BerryPalette},
	{ThemeDracula, DraculaPalette},
	{ThemeNord, NordPalette},
	{ThemeLight, LightPalette},
}

// BuiltinThemes returns all built-in theme names, default first.
func BuiltinThemes() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = string(b.name)
	}
	return names
}

// ValidThemes returns all valid theme names (built-in + custom).
func ValidThemes() []string {
	return append(BuiltinThemes(), CustomThemeNames()...)
}

// IsValidTheme checks if a theme name is valid (built-in or custom).
func IsValidTheme(name string) bool {
	return IsBuiltinTheme(name) || IsCustomTheme(name)
}

// IsBuiltinTheme checks if a theme name is a built-in theme.
func IsBuiltinTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// GetPalette returns the palette for name. Custom themes win over built-in
// ones; unknown names get the default palette.
func GetPalette(name ThemeName) *ColorPalette {
	if custom := GetCustomTheme(name); custom != nil {
		return custom.ToPalette()
	}
	for _, b := range builtins {
		if b.name == name {
			return b.palette()
		}
	}
	return DefaultPalette()
}
