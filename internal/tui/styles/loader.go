package styles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// themeFileVersion is the only theme file format understood.
const themeFileVersion = "1"

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	// Name is the theme's display name
	Name string `yaml:"name"`
	// Author is the theme creator's name (optional)
	Author string `yaml:"author,omitempty"`
	// Description is a short summary of the theme (optional)
	Description string `yaml:"description,omitempty"`
	// Version is the theme file format version (currently "1")
	Version string `yaml:"version"`
	// Colors defines the color palette
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors holds a theme's colors as #RGB or #RRGGBB strings.
type ThemeColors struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Warning   string `yaml:"warning"`
	Error     string `yaml:"error"`
	Muted     string `yaml:"muted"`
	Surface   string `yaml:"surface"`
	Text      string `yaml:"text"`
	Border    string `yaml:"border"`

	// Highlight is optional and defaults to the border color
	Highlight string `yaml:"highlight,omitempty"`
}

// namedColor pairs a YAML color key with its value.
type namedColor struct {
	key   string
	value string
}

// required lists the mandatory colors in file order.
func (c ThemeColors) required() []namedColor {
	return []namedColor{
		{"primary", c.Primary},
		{"secondary", c.Secondary},
		{"warning", c.Warning},
		{"error", c.Error},
		{"muted", c.Muted},
		{"surface", c.Surface},
		{"text", c.Text},
		{"border", c.Border},
	}
}

var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

func checkColor(c namedColor) error {
	if !isValidHexColor(c.value) {
		return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.key, c.value)
	}
	return nil
}

// LoadThemeFile reads and validates a theme file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	return &theme, nil
}

// Validate reports the first problem with the theme, checking the colors in
// file order.
func (t *ThemeFile) Validate() error {
	switch {
	case t.Name == "":
		return errors.New("theme name is required")
	case t.Version == "":
		return errors.New("theme version is required")
	case t.Version != themeFileVersion:
		return fmt.Errorf("unsupported theme version: %s (supported: %s)", t.Version, themeFileVersion)
	}

	for _, c := range t.Colors.required() {
		if c.value == "" {
			return fmt.Errorf("color '%s' is required", c.key)
		}
		if err := checkColor(c); err != nil {
			return err
		}
	}

	if t.Colors.Highlight != "" {
		return checkColor(namedColor{"highlight", t.Colors.Highlight})
	}
	return nil
}

// ToPalette converts the theme file to a ColorPalette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	c := t.Colors
	highlight := c.Highlight
	if highlight == "" {
		highlight = c.Border
	}
	return palette(c.Primary, c.Secondary, c.Warning, c.Error, c.Muted, c.Surface, c.Text, c.Border, highlight)
}

// FromPalette builds a theme file holding p's colors.
func FromPalette(name, description string, p *ColorPalette) *ThemeFile {
	hex := func(c lipgloss.Color) string { return string(c) }
	return &ThemeFile{
		Name:        name,
		Description: description,
		Version:     themeFileVersion,
		Colors: ThemeColors{
			Primary:   hex(p.Primary),
			Secondary: hex(p.Secondary),
			Warning:   hex(p.Warning),
			Error:     hex(p.Error),
			Muted:     hex(p.Muted),
			Surface:   hex(p.Surface),
			Text:      hex(p.Text),
			Border:    hex(p.Border),
			Highlight: hex(p.Highlight),
		},
	}
}

// customThemes holds the themes found by DiscoverCustomThemes or registered
// directly. Like the active theme it is only touched from one goroutine.
var customThemes = make(map[ThemeName]*ThemeFile)

// RegisterCustomTheme registers a custom theme by name.
func RegisterCustomTheme(name ThemeName, theme *ThemeFile) {
	customThemes[name] = theme
}

// GetCustomTheme returns a custom theme by name, or nil if not found.
func GetCustomTheme(name ThemeName) *ThemeFile {
	return customThemes[name]
}

// IsCustomTheme checks if a theme name is a registered custom theme.
func IsCustomTheme(name string) bool {
	_, ok := customThemes[ThemeName(name)]
	return ok
}

// CustomThemeNames returns the sorted names of all registered custom themes.
func CustomThemeNames() []string {
	names := make([]string, 0, len(customThemes))
	for name := range customThemes {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// ClearCustomThemes removes all registered custom themes.
func ClearCustomThemes() {
	customThemes = make(map[ThemeName]*ThemeFile)
}

// themesDirFn returns the themes directory; tests swap it out.
var themesDirFn = func() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fruitfilter", "themes")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "fruitfilter", "themes")
	}
	return filepath.Join(".fruitfilter", "themes")
}

// ThemesDir returns the directory where custom themes are stored.
func ThemesDir() string {
	return themesDirFn()
}

// SetThemesDirFunc replaces the themes directory lookup and returns the
// previous one.
func SetThemesDirFunc(fn func() string) func() string {
	prev := themesDirFn
	themesDirFn = fn
	return prev
}

// themeNameFromFile returns the theme name for a .yaml or .yml file name.
func themeNameFromFile(file string) (string, bool) {
	for _, ext := range []string{".yaml", ".yml"} {
		if name, ok := strings.CutSuffix(file, ext); ok {
			return name, true
		}
	}
	return "", false
}

// DiscoverCustomThemes registers every valid theme file in the themes
// directory and returns their names. Each file that cannot be used is
// reported as an error prefixed with its file name. A missing directory is
// not an error.
func DiscoverCustomThemes() ([]string, []error) {
	dir := ThemesDir()

	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, []error{fmt.Errorf("reading themes directory: %w", err)}
	}

	var loaded []string
	var errs []error
	for _, entry := range entries {
		file := entry.Name()
		name, ok := themeNameFromFile(file)
		if entry.IsDir() || !ok {
			continue
		}

		if IsBuiltinTheme(name) {
			errs = append(errs, fmt.Errorf("%s: cannot override built-in theme '%s'", file, name))
			continue
		}
		theme, err := LoadThemeFile(filepath.Join(dir, file))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", file, err))
			continue
		}

		RegisterCustomTheme(ThemeName(name), theme)
		loaded = append(loaded, name)
	}

	return loaded, errs
}

// ExportTheme renders a built-in or custom theme as theme-file YAML.
func ExportTheme(name ThemeName) ([]byte, error) {
	theme := GetCustomTheme(name)
	if theme == nil {
		theme = FromPalette(string(name), fmt.Sprintf("Exported from built-in theme '%s'", name), GetPalette(name))
	}
	return yaml.Marshal(theme)
}

// SaveTheme writes theme to <themes dir>/<name>.yaml.
func SaveTheme(name string, theme *ThemeFile) error {
	dir := ThemesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating themes directory: %w", err)
	}

	data, err := yaml.Marshal(theme)
	if err != nil {
		return fmt.Errorf("marshaling theme: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name+".yaml"), data, 0o644); err != nil {
		return fmt.Errorf("writing theme file: %w", err)
	}
	return nil
}
