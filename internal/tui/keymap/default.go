package keymap

import tea "github.com/charmbracelet/bubbletea"

func key(t tea.KeyType, cmd Command, desc string) KeyBinding {
	return KeyBinding{KeyType: t, Command: cmd, Description: desc}
}

func char(r rune, cmd Command, desc string) KeyBinding {
	return KeyBinding{KeyType: tea.KeyRunes, Rune: r, Command: cmd, Description: desc}
}

// toggleKeys and appKeys are shared by every mode that does not take text.
var (
	toggleKeys = []KeyBinding{
		char(' ', CmdToggle, "toggle"),
		key(tea.KeySpace, CmdToggle, "toggle"),
		key(tea.KeyEnter, CmdToggle, "toggle"),
	}
	appKeys = []KeyBinding{
		char('?', CmdToggleHelp, "help"),
		char('q', CmdQuit, "quit"),
	}
)

func concat(groups ...[]KeyBinding) []KeyBinding {
	var out []KeyBinding
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// DefaultKeymap returns the built-in bindings. Global bindings use no plain
// runes, so they never shadow typing in a text input.
func DefaultKeymap() *Keymap {
	return New(map[Mode][]KeyBinding{
		ModeGlobal: {
			key(tea.KeyTab, CmdNextSection, "next"),
			key(tea.KeyShiftTab, CmdPrevSection, "previous"),
			key(tea.KeyPgUp, CmdScrollUp, "scroll up"),
			key(tea.KeyCtrlU, CmdScrollUp, "scroll up"),
			key(tea.KeyPgDown, CmdScrollDown, "scroll down"),
			key(tea.KeyCtrlD, CmdScrollDown, "scroll down"),
			key(tea.KeyCtrlC, CmdQuit, "quit"),
		},
		ModeText: {
			key(tea.KeyEnter, CmdNextSection, "done"),
			key(tea.KeyEsc, CmdClearText, "clear"),
		},
		ModeSelect: concat(
			[]KeyBinding{
				key(tea.KeyUp, CmdCursorUp, "up"),
				char('k', CmdCursorUp, "up"),
				key(tea.KeyDown, CmdCursorDown, "down"),
				char('j', CmdCursorDown, "down"),
			},
			toggleKeys,
			[]KeyBinding{
				char('a', CmdSelectAll, "all"),
				char('n', CmdSelectNone, "none"),
			},
			appKeys,
		),
		ModeToggle: concat(
			toggleKeys,
			[]KeyBinding{
				key(tea.KeyDown, CmdNextSection, "next"),
				char('j', CmdNextSection, "next"),
				key(tea.KeyUp, CmdPrevSection, "previous"),
				char('k', CmdPrevSection, "previous"),
			},
			appKeys,
		),
		ModeDate: concat(
			[]KeyBinding{
				key(tea.KeyLeft, CmdPrevDay, "-1 day"),
				char('h', CmdPrevDay, "-1 day"),
				key(tea.KeyRight, CmdNextDay, "+1 day"),
				char('l', CmdNextDay, "+1 day"),
				key(tea.KeyDown, CmdPrevWeek, "-1 week"),
				char('j', CmdPrevWeek, "-1 week"),
				key(tea.KeyUp, CmdNextWeek, "+1 week"),
				char('k', CmdNextWeek, "+1 week"),
				key(tea.KeyHome, CmdFirstDay, "earliest"),
				key(tea.KeyEnd, CmdLastDay, "latest"),
			},
			appKeys,
		),
	})
}
