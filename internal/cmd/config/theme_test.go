package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/fruitfilter/internal/tui/styles"
)

// withThemes points the themes directory at a temp dir and clears any
// registered custom themes.
func withThemes(t *testing.T) string {
	t.Helper()
	styles.ClearCustomThemes()
	t.Cleanup(styles.ClearCustomThemes)

	tmpDir := t.TempDir()
	orig := styles.SetThemesDirFunc(func() string { return tmpDir })
	t.Cleanup(func() { styles.SetThemesDirFunc(orig) })
	return tmpDir
}

const orchardTheme = `name: "Orchard"
author: "Grower"
version: "1"
colors:
  primary: "#A78BFA"
  secondary: "#10B981"
  warning: "#F59E0B"
  error: "#F87171"
  muted: "#9CA3AF"
  surface: "#1F2937"
  text: "#F9FAFB"
  border: "#6B7280"
`

func TestRunThemeList(t *testing.T) {
	tmpDir := withThemes(t)

	if err := os.WriteFile(filepath.Join(tmpDir, "orchard.yaml"), []byte(orchardTheme), 0o644); err != nil {
		t.Fatalf("Failed to write test theme: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "broken.yaml"), []byte("colors: ["), 0o644); err != nil {
		t.Fatalf("Failed to write broken theme: %v", err)
	}

	out, err := capture(t, runThemeList)
	if err != nil {
		t.Fatalf("runThemeList() error = %v", err)
	}

	for _, want := range []string{"- dracula", "- orchard (by Grower)", "Warning: Some themes failed to load", "broken.yaml"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunThemeExport(t *testing.T) {
	withThemes(t)
	outputPath := filepath.Join(t.TempDir(), "exported.yaml")

	if _, err := capture(t, runThemeExport, "nord", outputPath); err != nil {
		t.Fatalf("runThemeExport() error = %v", err)
	}

	theme, err := styles.LoadThemeFile(outputPath)
	if err != nil {
		t.Fatalf("exported theme does not load: %v", err)
	}
	if diff := cmp.Diff(styles.NordPalette(), theme.ToPalette()); diff != "" {
		t.Errorf("exported palette mismatch (-want +got):\n%s", diff)
	}
}

func TestRunThemeExport_Stdout(t *testing.T) {
	withThemes(t)

	out, err := capture(t, runThemeExport, "default")
	if err != nil {
		t.Fatalf("runThemeExport() error = %v", err)
	}
	if !strings.Contains(out, "primary:") {
		t.Errorf("output missing primary color:\n%s", out)
	}
}

func TestRunThemeExport_InvalidTheme(t *testing.T) {
	withThemes(t)

	if _, err := capture(t, runThemeExport, "nonexistent"); err == nil {
		t.Error("Expected error for invalid theme, got nil")
	}
}

func TestRunThemeExport_BrokenCustomTheme(t *testing.T) {
	tmpDir := withThemes(t)
	if err := os.WriteFile(filepath.Join(tmpDir, "broken.yaml"), []byte("colors: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := capture(t, runThemeExport, "broken")
	if err == nil || !strings.Contains(err.Error(), "exists but failed to load") {
		t.Errorf("runThemeExport() error = %v, want load failure", err)
	}
}

func TestRunThemeInfo(t *testing.T) {
	tmpDir := withThemes(t)
	if err := os.WriteFile(filepath.Join(tmpDir, "orchard.yaml"), []byte(orchardTheme), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		theme string
		want  []string
	}{
		{"default", []string{"Theme: default", "Type: Built-in", "Primary:"}},
		{"orchard", []string{"Theme: orchard", "Type: Custom", "Author: Grower", "#A78BFA"}},
	}

	for _, tt := range tests {
		t.Run(tt.theme, func(t *testing.T) {
			out, err := capture(t, runThemeInfo, tt.theme)
			if err != nil {
				t.Fatalf("runThemeInfo() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRunThemeInfo_InvalidTheme(t *testing.T) {
	withThemes(t)

	if _, err := capture(t, runThemeInfo, "nonexistent"); err == nil {
		t.Error("Expected error for invalid theme, got nil")
	}
}

func TestRunThemePath(t *testing.T) {
	tmpDir := withThemes(t)

	out, err := capture(t, runThemePath)
	if err != nil {
		t.Fatalf("runThemePath() error = %v", err)
	}
	if !strings.HasPrefix(out, tmpDir) {
		t.Errorf("output = %q, want prefix %s", out, tmpDir)
	}
}

func TestRunThemeCreate(t *testing.T) {
	tmpDir := withThemes(t)

	if _, err := capture(t, runThemeCreate, "newtheme"); err != nil {
		t.Fatalf("runThemeCreate() error = %v", err)
	}

	themePath := filepath.Join(tmpDir, "newtheme.yaml")
	theme, err := styles.LoadThemeFile(themePath)
	if err != nil {
		t.Fatalf("Created theme is invalid: %v", err)
	}
	if theme.Name != "Newtheme" {
		t.Errorf("Name = %q, want Newtheme", theme.Name)
	}
	if diff := cmp.Diff(styles.DefaultPalette(), theme.ToPalette()); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
}

func TestRunThemeCreate_FromBase(t *testing.T) {
	tmpDir := withThemes(t)

	if _, err := capture(t, runThemeCreate, "cool", "nord"); err != nil {
		t.Fatalf("runThemeCreate() error = %v", err)
	}

	theme, err := styles.LoadThemeFile(filepath.Join(tmpDir, "cool.yaml"))
	if err != nil {
		t.Fatalf("Created theme is invalid: %v", err)
	}
	if diff := cmp.Diff(styles.NordPalette(), theme.ToPalette()); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
}

func TestRunThemeCreate_Errors(t *testing.T) {
	withThemes(t)

	if _, err := capture(t, runThemeCreate, "existing"); err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"empty", []string{""}},
		{"slash", []string{"my/theme"}},
		{"backslash", []string{"my\\theme"}},
		{"builtin", []string{"default"}},
		{"exists", []string{"existing"}},
		{"unknown base", []string{"fresh", "neon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := capture(t, runThemeCreate, tt.args...); err == nil {
				t.Errorf("runThemeCreate(%q) succeeded, want error", tt.args)
			}
		})
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "Hello"},
		{"HELLO", "HELLO"},
		{"h", "H"},
		{"", ""},
		{"myTheme", "MyTheme"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := capitalizeFirst(tt.input); got != tt.expected {
				t.Errorf("capitalizeFirst(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
