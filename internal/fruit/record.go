// Package fruit holds the record schema, the immutable table type the
// filter engine operates on, and the providers that build the base table.
package fruit

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Iron-Ham/fruitfilter/internal/errors"
)

// DateLayout is the calendar-day layout used to render and parse dates.
const DateLayout = "2006-01-02"

// Kind classifies what a column holds.
type Kind int

const (
	KindText Kind = iota
	KindCategory
	KindNumber
	KindDate
)

// Column names one field of a Record.
type Column string

const (
	ColFruit       Column = "fruit"
	ColColour      Column = "colour"
	ColHardness    Column = "hardness"
	ColWeight      Column = "weight"
	ColExpiry      Column = "expiry"
	ColDescription Column = "description"
	ColOrigin      Column = "origin"
	ColShipper     Column = "shipper"
	ColShipped     Column = "shipped"
)

var columnKinds = map[Column]Kind{
	ColFruit:       KindText,
	ColColour:      KindCategory,
	ColHardness:    KindCategory,
	ColWeight:      KindNumber,
	ColExpiry:      KindDate,
	ColDescription: KindText,
	ColOrigin:      KindCategory,
	ColShipper:     KindCategory,
	ColShipped:     KindDate,
}

// Columns returns every column in schema order.
func Columns() []Column {
	return []Column{
		ColFruit, ColColour, ColHardness, ColWeight, ColExpiry,
		ColDescription, ColOrigin, ColShipper, ColShipped,
	}
}

// ParseColumn resolves a column name, ignoring case and surrounding space.
func ParseColumn(name string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := columnKinds[c]; !ok {
		return "", errors.NewNotFoundError("column", name).WithCause(errors.ErrUnknownColumn)
	}
	return c, nil
}

// Kind returns the column's kind. Unknown columns report KindText.
func (c Column) Kind() Kind {
	return columnKinds[c]
}

// Valid reports whether c is part of the schema.
func (c Column) Valid() bool {
	_, ok := columnKinds[c]
	return ok
}

// Label is the column name with its first letter upper-cased, for headers.
func (c Column) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Record is one row of the fruit table. Every field is always populated.
type Record struct {
	Fruit       string
	Colour      string
	Hardness    string
	Weight      float64
	Expiry      time.Time
	Description string
	Origin      string
	Shipper     string
	Shipped     time.Time
}

// Value renders the named field as a string. Dates use DateLayout and
// weights drop trailing zeros (250, 15.5).
func (r Record) Value(c Column) string {
	switch c {
	case ColFruit:
		return r.Fruit
	case ColColour:
		return r.Colour
	case ColHardness:
		return r.Hardness
	case ColWeight:
		return humanize.Ftoa(r.Weight)
	case ColExpiry:
		return r.Expiry.Format(DateLayout)
	case ColDescription:
		return r.Description
	case ColOrigin:
		return r.Origin
	case ColShipper:
		return r.Shipper
	case ColShipped:
		return r.Shipped.Format(DateLayout)
	default:
		return ""
	}
}

// Date returns the value of a date column. ok is false for other columns.
func (r Record) Date(c Column) (t time.Time, ok bool) {
	switch c {
	case ColExpiry:
		return r.Expiry, true
	case ColShipped:
		return r.Shipped, true
	default:
		return time.Time{}, false
	}
}

// Fields renders every field in schema order.
func (r Record) Fields() []string {
	cols := Columns()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = r.Value(c)
	}
	return out
}

// validate checks the no-empty-field invariant.
func (r Record) validate() error {
	for _, c := range Columns() {
		if c.Kind() == KindNumber {
			continue
		}
		if c.Kind() == KindDate {
			if d, _ := r.Date(c); d.IsZero() {
				return fmt.Errorf("%w: %s has no %s", errors.ErrInvalidRecord, r.Fruit, c)
			}
			continue
		}
		if r.Value(c) == "" {
			return fmt.Errorf("%w: record %q has no %s", errors.ErrInvalidRecord, r.Fruit, c)
		}
	}
	return nil
}

// Day returns midnight UTC on the given calendar day.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a DateLayout string into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.NewValidationError("expected a date like 2023-03-31").WithValue(s).WithCause(err)
	}
	return t, nil
}

// Truncate drops the time of day, keeping the calendar day in UTC.
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return Day(y, m, d)
}
