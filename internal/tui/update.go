package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/fruitfilter/internal/tui/keymap"
	"github.com/Iron-Ham/fruitfilter/internal/tui/styles"
)

// themeChangedMsg is sent when the configured theme changes on disk.
type themeChangedMsg struct {
	theme string
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-helpHeight, 1)
		m.ready = true
		m.refreshViewport()
		return m, nil

	case themeChangedMsg:
		styles.SetActiveTheme(styles.ThemeName(msg.theme))
		m.logger.Info("theme changed", "theme", msg.theme)
		m.refreshViewport()
		return m, nil
	}

	return m, nil
}

// handleKeypress resolves the key against the focused widget's mode and
// re-evaluates the page afterwards.
func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mode := m.mode()
	command, ok := m.keymap.Lookup(msg, mode)
	if !ok {
		if mode != keymap.ModeText {
			return m, nil
		}
		ti := m.focusedInput()
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		m.recompute()
		return m, cmd
	}

	switch command {
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp
		return m, nil

	case keymap.CmdScrollUp:
		m.viewport.HalfViewUp()
		return m, nil

	case keymap.CmdScrollDown:
		m.viewport.HalfViewDown()
		return m, nil

	case keymap.CmdNextSection:
		m.moveFocus(1)

	case keymap.CmdPrevSection:
		m.moveFocus(-1)

	case keymap.CmdClearText:
		if ti := m.focusedInput(); ti != nil {
			ti.SetValue("")
		}

	case keymap.CmdCursorUp, keymap.CmdCursorDown, keymap.CmdSelectAll, keymap.CmdSelectNone:
		m.handleList(command)

	case keymap.CmdToggle:
		m.handleToggle()

	case keymap.CmdPrevDay, keymap.CmdNextDay, keymap.CmdPrevWeek, keymap.CmdNextWeek,
		keymap.CmdFirstDay, keymap.CmdLastDay:
		m.handleDate(command)
	}

	m.recompute()
	return m, nil
}

func (m *Model) handleList(command keymap.Command) {
	list := m.focusedList()
	if list == nil {
		return
	}
	switch command {
	case keymap.CmdCursorUp:
		list.CursorUp()
	case keymap.CmdCursorDown:
		list.CursorDown()
	case keymap.CmdSelectAll:
		list.SelectAll()
	case keymap.CmdSelectNone:
		list.SelectNone()
	}
}

// handleToggle flips the focused checkbox or expander, or the option under
// the cursor of the focused list.
func (m *Model) handleToggle() {
	if list := m.focusedList(); list != nil {
		list.Toggle()
		return
	}
	if !m.focus.isView() {
		return
	}

	vs := m.views[m.focus.index]
	switch m.focus.kind {
	case focusViewHeader:
		vs.expanded = !vs.expanded
	case focusViewSort:
		vs.sortByDate = !vs.sortByDate
	case focusViewRefine:
		vs.refineDates = !vs.refineDates
		if vs.refineDates {
			vs.from.reset(vs.bounds.From, vs.bounds.To, vs.bounds.From)
			vs.to.reset(vs.bounds.From, vs.bounds.To, vs.bounds.To)
		}
	}
}

func (m *Model) handleDate(command keymap.Command) {
	p := m.focusedPicker()
	if p == nil {
		return
	}
	switch command {
	case keymap.CmdPrevDay:
		p.shift(-1)
	case keymap.CmdNextDay:
		p.shift(1)
	case keymap.CmdPrevWeek:
		p.shift(-7)
	case keymap.CmdNextWeek:
		p.shift(7)
	case keymap.CmdFirstDay:
		p.first()
	case keymap.CmdLastDay:
		p.last()
	}
}
