package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/fruitfilter/internal/fruit"
	"github.com/Iron-Ham/fruitfilter/internal/tui/keymap"
	"github.com/Iron-Ham/fruitfilter/internal/tui/multiselect"
	"github.com/Iron-Ham/fruitfilter/internal/tui/renderer"
	"github.com/Iron-Ham/fruitfilter/internal/tui/styles"
	"github.com/Iron-Ham/fruitfilter/internal/view"
)

// columnGap separates side-by-side multiselects.
const columnGap = "    "

// page accumulates rendered content and remembers the line the focused
// widget starts on.
type page struct {
	sb        strings.Builder
	focusLine int
}

func (p *page) line(s string) {
	p.sb.WriteString(s)
	p.sb.WriteString("\n")
}

func (p *page) markFocus() {
	p.focusLine = strings.Count(p.sb.String(), "\n")
}

func (p *page) String() string {
	return strings.TrimSuffix(p.sb.String(), "\n")
}

// View renders the page
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		p := m.renderPage()
		return p.String() + "\n" + m.renderHelp()
	}
	return m.viewport.View() + "\n" + m.renderHelp()
}

// refreshViewport re-renders the page into the viewport and scrolls so the
// focused widget stays visible.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	p := m.renderPage()
	m.viewport.SetContent(p.String())

	switch {
	case p.focusLine < m.viewport.YOffset:
		m.viewport.SetYOffset(p.focusLine)
	case p.focusLine >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(p.focusLine - m.viewport.Height + 1)
	}
}

func (m Model) renderPage() *page {
	st := styles.Active()
	p := &page{}

	p.line(st.Title.Render(PageTitle))
	m.renderSearch(p, st)
	p.line("")
	m.renderLists(p, st, focusCategory, m.categories)
	p.line("")
	m.renderResults(p, st)
	if m.outcome.Refining {
		p.line("")
		m.renderRefine(p, st)
	}
	for i := range m.views {
		p.line("")
		m.renderView(p, st, i)
	}
	return p
}

func (m Model) renderSearch(p *page, st *styles.ThemedStyles) {
	focused := m.focus.kind == focusSearch
	if focused {
		p.markFocus()
		p.line(st.LabelFocused.Render(SearchPrompt))
	} else {
		p.line(st.Label.Render(SearchPrompt))
	}
	p.line(m.search.View())
}

// renderLists draws a row of multiselects side by side.
func (m Model) renderLists(p *page, st *styles.ThemedStyles, kind focusKind, lists []*multiselect.Model) {
	cols := make([]string, 0, len(lists)*2)
	for i, list := range lists {
		focused := m.focus == focusTarget{kind: kind, index: i}
		if focused {
			p.markFocus()
		}
		if i > 0 {
			cols = append(cols, columnGap)
		}
		cols = append(cols, list.View(st, focused))
	}
	p.line(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
}

func (m Model) renderResults(p *page, st *styles.ThemedStyles) {
	if !m.outcome.Searched {
		p.line(st.Section.Render("▸ " + NoSearchHeader))
		p.line(st.Notice.Render(NoSearchNotice))
		return
	}
	p.line(st.Section.Render(fmt.Sprintf(`▾ Full Results Searching For "%s"`, m.outcome.Search)))
	m.renderTable(p, st, view.Project(m.outcome.Stage1, nil))
}

func (m Model) renderRefine(p *page, st *styles.ThemedStyles) {
	header := st.Section
	if m.focus.kind == focusRefinement {
		header = st.SectionFocused
	}
	p.line(header.Render("▾ " + RefineHeader))
	m.renderLists(p, st, focusRefinement, m.refinements)
	m.renderTable(p, st, view.Project(m.outcome.Stage2, nil))
}

func (m Model) renderView(p *page, st *styles.ThemedStyles, i int) {
	vs := m.views[i]
	at := func(kind focusKind) bool {
		focused := m.focus == focusTarget{kind: kind, index: i}
		if focused {
			p.markFocus()
		}
		return focused
	}

	arrow := "▸ "
	if vs.expanded {
		arrow = "▾ "
	}
	at(focusViewHeader)
	header := st.Section
	if m.focus.isView() && m.focus.index == i {
		header = st.SectionFocused
	}
	p.line(header.Render(arrow + vs.view.Title))
	if !vs.expanded {
		return
	}

	if m.outcome.Stage2.IsEmpty() {
		p.line(st.Notice.Render(EmptyViewNotice))
		return
	}

	col := string(vs.view.DateColumn)
	p.line(checkbox(st, at(focusViewSort), vs.sortByDate, fmt.Sprintf("Sort by %s date", col)))
	p.line(checkbox(st, at(focusViewRefine), vs.refineDates, fmt.Sprintf("Refine by %s date", col)))
	if vs.refineDates {
		p.line("  " + vs.from.view(st, at(focusViewFrom), m.dateFormat))
		p.line("  " + vs.to.view(st, at(focusViewTo), m.dateFormat))
	}
	at(focusViewText)
	p.line(vs.text.View())

	vo, _ := m.outcome.View(vs.view.Key)
	m.renderTable(p, st, vs.view.Project(orEmpty(vo.Table)))
}

func (m Model) renderTable(p *page, st *styles.ThemedStyles, f view.Frame) {
	p.line(renderer.Table(f, renderer.Options{
		MaxCellWidth: m.maxCellWidth,
		Styles:       st,
	}))
	p.line(st.TableCount.Render(renderer.Count(f.Len())))
}

func checkbox(st *styles.ThemedStyles, focused, checked bool, text string) string {
	box := st.Unchecked.Render("[ ]")
	if checked {
		box = st.Checked.Render("[x]")
	}
	label := st.Text.Render(text)
	if focused {
		label = st.LabelFocused.Render(text)
	}
	return box + " " + label
}

func orEmpty(t *fruit.Table) *fruit.Table {
	if t == nil {
		return fruit.Empty()
	}
	return t
}

// renderHelp draws the key hints for the focused widget, plus the global
// bindings when help is toggled on. Text inputs cannot toggle help,
// so they always show both.
func (m Model) renderHelp() string {
	st := styles.Active()
	mode := m.mode()
	pairs := m.keymap.HelpLine(mode)
	if m.showHelp || mode == keymap.ModeText {
		pairs = append(pairs, m.keymap.HelpLine(keymap.ModeGlobal)...)
	}

	parts := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		parts = append(parts, st.HelpKey.Render("["+kv[0]+"]")+" "+kv[1])
	}
	return st.HelpBar.Render(strings.Join(parts, "  "))
}
