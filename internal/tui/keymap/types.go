// Package keymap maps key presses to commands for each kind of focused
// widget, so the model's Update method only acts on a Command.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the kind of widget that has focus.
type Mode string

const (
	ModeGlobal Mode = "global" // consulted after the focused widget's mode
	ModeText   Mode = "text"   // search and free-text inputs
	ModeSelect Mode = "select" // multiselect lists
	ModeToggle Mode = "toggle" // checkboxes and expander headers
	ModeDate   Mode = "date"   // day pickers
)

// Command is a named action a key can trigger.
type Command string

// Focus and application commands.
const (
	CmdNextSection Command = "next_section"
	CmdPrevSection Command = "prev_section"
	CmdScrollUp    Command = "scroll_up"
	CmdScrollDown  Command = "scroll_down"
	CmdToggleHelp  Command = "toggle_help"
	CmdQuit        Command = "quit"
)

// Widget commands.
const (
	CmdClearText  Command = "clear_text"
	CmdCursorUp   Command = "cursor_up"
	CmdCursorDown Command = "cursor_down"
	CmdToggle     Command = "toggle"
	CmdSelectAll  Command = "select_all"
	CmdSelectNone Command = "select_none"
	CmdPrevDay    Command = "prev_day"
	CmdNextDay    Command = "next_day"
	CmdPrevWeek   Command = "prev_week"
	CmdNextWeek   Command = "next_week"
	CmdFirstDay   Command = "first_day"
	CmdLastDay    Command = "last_day"
)

// KeyBinding binds one key to a Command. Rune keys use tea.KeyRunes and
// set Rune.
type KeyBinding struct {
	KeyType tea.KeyType
	Rune    rune
	Alt     bool

	Command Command
	// Description is shown in the help bar.
	Description string
}

// Matches reports whether msg is this binding's key.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	switch {
	case msg.Alt != kb.Alt:
		return false
	case kb.KeyType != tea.KeyRunes:
		return msg.Type == kb.KeyType
	default:
		return msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && msg.Runes[0] == kb.Rune
	}
}

// String renders the key the way the help bar shows it.
func (kb KeyBinding) String() string {
	var name string
	switch {
	case kb.KeyType != tea.KeyRunes:
		name = kb.KeyType.String()
	case kb.Rune == ' ':
		name = "space"
	default:
		name = string(kb.Rune)
	}
	if kb.Alt {
		return "alt+" + name
	}
	return name
}

// Keymap holds the bindings of every mode, each in priority order.
type Keymap struct {
	modes map[Mode][]KeyBinding
}

// New returns a Keymap over the given per-mode bindings.
func New(modes map[Mode][]KeyBinding) *Keymap {
	return &Keymap{modes: modes}
}

// Lookup returns the command msg triggers in mode, trying the global
// bindings when mode has none for it.
func (km *Keymap) Lookup(msg tea.KeyMsg, mode Mode) (Command, bool) {
	if cmd, ok := find(km.modes[mode], msg); ok {
		return cmd, true
	}
	if mode == ModeGlobal {
		return "", false
	}
	return find(km.modes[ModeGlobal], msg)
}

func find(bindings []KeyBinding, msg tea.KeyMsg) (Command, bool) {
	for _, b := range bindings {
		if b.Matches(msg) {
			return b.Command, true
		}
	}
	return "", false
}

// Bindings returns mode's bindings, or nil for an unknown mode.
func (km *Keymap) Bindings(mode Mode) []KeyBinding {
	return km.modes[mode]
}

// HelpLine returns a (key, description) pair per command of mode, using
// the first key bound to each.
func (km *Keymap) HelpLine(mode Mode) [][2]string {
	seen := make(map[Command]bool)
	var line [][2]string
	for _, b := range km.modes[mode] {
		if !seen[b.Command] {
			seen[b.Command] = true
			line = append(line, [2]string{b.String(), b.Description})
		}
	}
	return line
}
