package util

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncateANSI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "apple", 10, "apple"},
		{"exact", "apple", 5, "apple"},
		{"truncated", "This is a delicious fruit", 10, "This is a…"},
		{"disabled", "dominican republic", 0, "dominican republic"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateANSI(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("TruncateANSI(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateANSI_Styled(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("strawberry shortcake")
	got := TruncateANSI(styled, 8)
	if w := lipgloss.Width(got); w > 8 {
		t.Errorf("visual width = %d, want <= 8 (%q)", w, got)
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"single line", "a", 2, "  a"},
		{"blank lines kept", "a\n\nb", 1, " a\n\n b"},
		{"zero", "a", 0, "a"},
		{"empty", "", 4, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Indent(tt.input, tt.n); got != tt.want {
				t.Errorf("Indent(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
		})
	}
}
