package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/fruitfilter/internal/engine"
	"github.com/Iron-Ham/fruitfilter/internal/fruit"
	"github.com/Iron-Ham/fruitfilter/internal/logging"
	"github.com/Iron-Ham/fruitfilter/internal/tui/keymap"
	"github.com/Iron-Ham/fruitfilter/internal/tui/multiselect"
	"github.com/Iron-Ham/fruitfilter/internal/view"
)

// Page text.
const (
	PageTitle       = "Interactive Filter Test With Fruit"
	SearchPrompt    = "Type at least one character to search the fruit database"
	NoSearchHeader  = "Enter a character in the search field above"
	NoSearchNotice  = "Nothing to see here until you search for text."
	RefineHeader    = "Refine Results"
	EmptyViewNotice = "Nothing to show here.  Try a different search and/or remove some filters."
)

// Labels of the category multiselects, by column.
var (
	searchLabels = map[fruit.Column]string{
		fruit.ColColour:   "Colours to search",
		fruit.ColHardness: "Hardness to search",
	}
	refineLabels = map[fruit.Column]string{
		fruit.ColColour:   "Colour",
		fruit.ColHardness: "Hardness",
	}
)

// maxSyncPasses bounds the evaluate/sync loop in recompute. A domain change
// resets the refinements, which can move the view bounds, which resets the
// pickers; after that the outcome is stable.
const maxSyncPasses = 3

// helpHeight is the number of lines below the viewport.
const helpHeight = 2

// Options configures a Model.
type Options struct {
	// Base is the table every interaction is evaluated against.
	Base *fruit.Table
	// Views are the detail sections, in display order.
	Views []view.View
	// Keymap defaults to keymap.DefaultKeymap.
	Keymap *keymap.Keymap
	// Logger defaults to logging.NopLogger.
	Logger *logging.Logger
	// MaxCellWidth truncates table cells; zero disables truncation.
	MaxCellWidth int
	// DateFormat is the layout of the date pickers; defaults to fruit.DateLayout.
	DateFormat string
}

// viewState holds the widgets of one detail section.
type viewState struct {
	view        view.View
	expanded    bool
	sortByDate  bool
	refineDates bool
	from        datePicker
	to          datePicker
	text        textinput.Model
	// bounds is the date span of the view's column in the last stage-2
	// result; the pickers are reset whenever it moves.
	bounds    engine.DateRange
	hasBounds bool
}

// Model is the Bubbletea model for the filter page.
type Model struct {
	base   *fruit.Table
	keymap *keymap.Keymap
	logger *logging.Logger

	search      textinput.Model
	categories  []*multiselect.Model // indexed like engine.CategoryColumns
	refinements []*multiselect.Model // indexed like engine.CategoryColumns
	views       []*viewState

	focus   focusTarget
	outcome engine.Outcome

	viewport     viewport.Model
	width        int
	height       int
	ready        bool
	showHelp     bool
	quitting     bool
	maxCellWidth int
	dateFormat   string
}

// NewModel creates the page model with every category selected, nothing
// searched and the search box focused.
func NewModel(opts Options) Model {
	if opts.Keymap == nil {
		opts.Keymap = keymap.DefaultKeymap()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.Base == nil {
		opts.Base = fruit.Empty()
	}
	if opts.DateFormat == "" {
		opts.DateFormat = fruit.DateLayout
	}

	m := Model{
		base:         opts.Base,
		keymap:       opts.Keymap,
		logger:       opts.Logger,
		search:       newTextInput("search"),
		maxCellWidth: opts.MaxCellWidth,
		dateFormat:   opts.DateFormat,
	}

	for _, col := range engine.CategoryColumns {
		m.categories = append(m.categories, multiselect.New(label(searchLabels, col, " to search"), opts.Base.Distinct(col)))
		m.refinements = append(m.refinements, multiselect.New(label(refineLabels, col, ""), nil))
	}

	for _, v := range opts.Views {
		m.views = append(m.views, &viewState{
			view: v,
			from: newDatePicker("Start Date"),
			to:   newDatePicker("End Date"),
			text: newTextInput("text in any column"),
		})
	}

	m.setFocus(focusTarget{kind: focusSearch})
	m.recompute()
	return m
}

func label(labels map[fruit.Column]string, col fruit.Column, suffix string) string {
	if l, ok := labels[col]; ok {
		return l
	}
	return col.Label() + suffix
}

func newTextInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Outcome returns the result of the last evaluation.
func (m Model) Outcome() engine.Outcome {
	return m.outcome
}

// input gathers the widget state into an engine input.
func (m Model) input() engine.Input {
	in := engine.Input{
		Search:      m.search.Value(),
		Categories:  make(map[fruit.Column]engine.Selection, len(engine.CategoryColumns)),
		Refinements: make(map[fruit.Column]engine.Selection, len(engine.CategoryColumns)),
		Views:       make([]engine.ViewInput, 0, len(m.views)),
	}
	for i, col := range engine.CategoryColumns {
		in.Categories[col] = engine.Selection(m.categories[i].Selected())
		in.Refinements[col] = engine.Selection(m.refinements[i].Selected())
	}
	for _, vs := range m.views {
		crit := engine.ViewCriteria{
			DateColumn: vs.view.DateColumn,
			Text:       vs.text.Value(),
			SortByDate: vs.sortByDate,
		}
		if vs.refineDates && vs.hasBounds {
			crit.Range = &engine.DateRange{From: vs.from.value, To: vs.to.value}
		}
		in.Views = append(in.Views, engine.ViewInput{Key: vs.view.Key, Criteria: crit})
	}
	return in
}

// recompute re-evaluates the cascade and brings the dependent widgets in
// line with the new outcome.
func (m *Model) recompute() {
	for pass := 0; pass < maxSyncPasses; pass++ {
		m.outcome = engine.Evaluate(m.base, m.input())
		if !m.sync() {
			break
		}
	}

	m.logger.Debug("recomputed",
		"search", m.outcome.Search,
		"stage1_rows", m.outcome.Stage1.Len(),
		"stage2_rows", m.outcome.Stage2.Len(),
		"refining", m.outcome.Refining,
	)

	m.ensureFocusValid()
	m.refreshViewport()
}

// sync updates the refinement lists and date pickers from the outcome and
// reports whether that changed the engine input.
func (m *Model) sync() bool {
	changed := false

	for i, col := range engine.CategoryColumns {
		var options []string
		if m.outcome.Refining {
			options = m.outcome.Domain[col]
		}
		if m.refinements[i].SetOptions(options) && m.outcome.Refining {
			changed = true
		}
	}

	for i, vo := range m.outcome.Views {
		vs := m.views[i]
		if vo.HasBounds == vs.hasBounds &&
			vo.Bounds.From.Equal(vs.bounds.From) &&
			vo.Bounds.To.Equal(vs.bounds.To) {
			continue
		}
		vs.hasBounds = vo.HasBounds
		vs.bounds = vo.Bounds
		vs.from.reset(vo.Bounds.From, vo.Bounds.To, vo.Bounds.From)
		vs.to.reset(vo.Bounds.From, vo.Bounds.To, vo.Bounds.To)
		m.logger.WithView(vs.view.Key).Debug("date bounds moved",
			"from", vo.Bounds.From.Format(fruit.DateLayout),
			"to", vo.Bounds.To.Format(fruit.DateLayout),
		)
		if vs.refineDates {
			changed = true
		}
	}

	return changed
}
