package tui

import (
	"time"

	"github.com/Iron-Ham/fruitfilter/internal/tui/styles"
)

// datePicker selects one calendar day within [min, max].
type datePicker struct {
	label string
	value time.Time
	min   time.Time
	max   time.Time
}

func newDatePicker(label string) datePicker {
	return datePicker{label: label}
}

// reset moves the bounds and selects value, clamped to them.
func (p *datePicker) reset(lo, hi, value time.Time) {
	p.min, p.max = lo, hi
	p.set(value)
}

func (p *datePicker) set(t time.Time) {
	switch {
	case t.Before(p.min):
		p.value = p.min
	case t.After(p.max):
		p.value = p.max
	default:
		p.value = t
	}
}

func (p *datePicker) shift(days int) {
	p.set(p.value.AddDate(0, 0, days))
}

func (p *datePicker) first() { p.value = p.min }
func (p *datePicker) last()  { p.value = p.max }

func (p datePicker) atMin() bool { return !p.value.After(p.min) }
func (p datePicker) atMax() bool { return !p.value.Before(p.max) }

// view renders "Label: < day >", dimming an arrow once its bound is reached.
func (p datePicker) view(st *styles.ThemedStyles, focused bool, layout string) string {
	label := st.Label.Render(p.label + ": ")
	if focused {
		label = st.LabelFocused.Render(p.label + ": ")
	}

	left, right := st.Primary.Render("<"), st.Primary.Render(">")
	if p.atMin() {
		left = st.Muted.Render("<")
	}
	if p.atMax() {
		right = st.Muted.Render(">")
	}

	day := st.Text.Render(p.value.Format(layout))
	if focused {
		day = st.Cursor.Render(p.value.Format(layout))
	}
	return label + left + " " + day + " " + right
}
