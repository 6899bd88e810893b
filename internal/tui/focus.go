package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Iron-Ham/fruitfilter/internal/tui/keymap"
	"github.com/Iron-Ham/fruitfilter/internal/tui/multiselect"
)

// focusKind identifies the kind of widget that has focus.
type focusKind int

const (
	focusSearch     focusKind = iota
	focusCategory             // a "to search" multiselect
	focusRefinement           // a Refine Results multiselect
	focusViewHeader           // a view's expander
	focusViewSort             // the sort-by-date checkbox
	focusViewRefine           // the refine-by-date checkbox
	focusViewFrom             // the start date picker
	focusViewTo               // the end date picker
	focusViewText             // the view's free-text input
)

// focusTarget is one stop in the tab order. index is the multiselect index
// for category and refinement kinds and the view index for view kinds.
type focusTarget struct {
	kind  focusKind
	index int
}

func (f focusTarget) isView() bool {
	return f.kind >= focusViewHeader
}

// focusTargets lists the widgets currently on screen, in tab order.
func (m Model) focusTargets() []focusTarget {
	targets := []focusTarget{{kind: focusSearch}}
	for i := range m.categories {
		targets = append(targets, focusTarget{kind: focusCategory, index: i})
	}
	if m.outcome.Refining {
		for i := range m.refinements {
			targets = append(targets, focusTarget{kind: focusRefinement, index: i})
		}
	}
	for i, vs := range m.views {
		targets = append(targets, focusTarget{kind: focusViewHeader, index: i})
		if !vs.expanded || m.outcome.Stage2.IsEmpty() {
			continue
		}
		targets = append(targets,
			focusTarget{kind: focusViewSort, index: i},
			focusTarget{kind: focusViewRefine, index: i},
		)
		if vs.refineDates {
			targets = append(targets,
				focusTarget{kind: focusViewFrom, index: i},
				focusTarget{kind: focusViewTo, index: i},
			)
		}
		targets = append(targets, focusTarget{kind: focusViewText, index: i})
	}
	return targets
}

// moveFocus steps delta places through the tab order, wrapping around.
func (m *Model) moveFocus(delta int) {
	targets := m.focusTargets()
	idx := 0
	for i, t := range targets {
		if t == m.focus {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(targets) + len(targets)) % len(targets)
	m.setFocus(targets[idx])
}

// setFocus moves focus to f, focusing the text input it owns if any.
func (m *Model) setFocus(f focusTarget) {
	m.focus = f
	m.search.Blur()
	for _, vs := range m.views {
		vs.text.Blur()
	}
	if ti := m.focusedInput(); ti != nil {
		ti.Focus()
	}
}

// ensureFocusValid moves focus off a widget that is no longer shown: to
// its view's header for view widgets and to the search box otherwise.
func (m *Model) ensureFocusValid() {
	for _, t := range m.focusTargets() {
		if t == m.focus {
			return
		}
	}
	if m.focus.isView() && m.focus.index < len(m.views) {
		m.setFocus(focusTarget{kind: focusViewHeader, index: m.focus.index})
		return
	}
	m.setFocus(focusTarget{kind: focusSearch})
}

// mode returns the keymap mode of the focused widget.
func (m Model) mode() keymap.Mode {
	switch m.focus.kind {
	case focusSearch, focusViewText:
		return keymap.ModeText
	case focusCategory, focusRefinement:
		return keymap.ModeSelect
	case focusViewFrom, focusViewTo:
		return keymap.ModeDate
	default:
		return keymap.ModeToggle
	}
}

func (m *Model) focusedInput() *textinput.Model {
	switch m.focus.kind {
	case focusSearch:
		return &m.search
	case focusViewText:
		return &m.views[m.focus.index].text
	}
	return nil
}

func (m *Model) focusedList() *multiselect.Model {
	switch m.focus.kind {
	case focusCategory:
		return m.categories[m.focus.index]
	case focusRefinement:
		return m.refinements[m.focus.index]
	}
	return nil
}

func (m *Model) focusedPicker() *datePicker {
	switch m.focus.kind {
	case focusViewFrom:
		return &m.views[m.focus.index].from
	case focusViewTo:
		return &m.views[m.focus.index].to
	}
	return nil
}
