package styles

import "testing"

func TestNewThemedStyles(t *testing.T) {
	p := NordPalette()
	s := NewThemedStyles(p)

	if s.Palette != p {
		t.Error("Palette not retained")
	}
	if got := s.Title.GetForeground(); got != p.Primary {
		t.Errorf("Title foreground = %v, want %v", got, p.Primary)
	}
	if !s.Title.GetBold() {
		t.Error("Title should be bold")
	}
	if got := s.TableBorder.GetForeground(); got != p.Border {
		t.Errorf("TableBorder foreground = %v, want %v", got, p.Border)
	}
	if got := s.Cursor.GetBackground(); got != p.Highlight {
		t.Errorf("Cursor background = %v, want %v", got, p.Highlight)
	}
}

func TestSetActiveTheme(t *testing.T) {
	defer SetActiveTheme(ThemeDefault)

	SetActiveTheme(ThemeCitrus)
	if got := Active().Palette.Primary; got != CitrusPalette().Primary {
		t.Errorf("Active().Palette.Primary = %v, want citrus primary", got)
	}

	SetActiveTheme("no-such-theme")
	if got := Active().Palette.Primary; got != DefaultPalette().Primary {
		t.Errorf("unknown theme: Active().Palette.Primary = %v, want default primary", got)
	}
}
