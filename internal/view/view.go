// Package view defines the named detail sections shown below the refined
// results and projects tables into named-column frames for renderers.
package view

import (
	"fmt"

	"github.com/Iron-Ham/fruitfilter/internal/errors"
	"github.com/Iron-Ham/fruitfilter/internal/fruit"
)

// Default view keys.
const (
	KeyDescriptions = "descriptions"
	KeyLogistics    = "logistics"
)

// View is one detail section: a title, the date column its range and sort
// apply to, and the columns it displays.
type View struct {
	Key        string
	Title      string
	DateColumn fruit.Column
	Columns    []fruit.Column
}

// Defaults returns the built-in views in display order.
func Defaults() []View {
	return []View{
		{
			Key:        KeyDescriptions,
			Title:      "Descriptions",
			DateColumn: fruit.ColExpiry,
			Columns:    []fruit.Column{fruit.ColFruit, fruit.ColExpiry, fruit.ColDescription},
		},
		{
			Key:        KeyLogistics,
			Title:      "Logistics",
			DateColumn: fruit.ColShipped,
			Columns:    []fruit.Column{fruit.ColFruit, fruit.ColShipped, fruit.ColOrigin, fruit.ColShipper, fruit.ColWeight},
		},
	}
}

// Spec is the config form of a View: column names rather than typed columns.
type Spec struct {
	Key        string   `mapstructure:"key" yaml:"key"`
	Title      string   `mapstructure:"title" yaml:"title"`
	DateColumn string   `mapstructure:"date_column" yaml:"date_column"`
	Columns    []string `mapstructure:"columns" yaml:"columns"`
}

// DefaultSpecs returns Defaults in config form.
func DefaultSpecs() []Spec {
	defaults := Defaults()
	specs := make([]Spec, len(defaults))
	for i, v := range defaults {
		specs[i] = v.Spec()
	}
	return specs
}

// Spec converts v back to its config form.
func (v View) Spec() Spec {
	cols := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		cols[i] = string(c)
	}
	return Spec{Key: v.Key, Title: v.Title, DateColumn: string(v.DateColumn), Columns: cols}
}

// Build validates specs and returns the views they describe. An empty list
// yields Defaults. Keys must be unique, the date column must be a date, and
// every display column must exist.
func Build(specs []Spec) ([]View, error) {
	if len(specs) == 0 {
		return Defaults(), nil
	}

	views := make([]View, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	for i, s := range specs {
		v, err := s.build()
		if err != nil {
			return nil, errors.Wrapf(err, "views[%d]", i)
		}
		if seen[v.Key] {
			return nil, errors.NewValidationError("duplicate view key").
				WithField(fmt.Sprintf("views[%d].key", i)).WithValue(v.Key)
		}
		seen[v.Key] = true
		views = append(views, v)
	}
	return views, nil
}

func (s Spec) build() (View, error) {
	if s.Key == "" {
		return View{}, errors.NewValidationError("view key is required").WithField("key")
	}

	dateCol, err := fruit.ParseColumn(s.DateColumn)
	if err != nil {
		return View{}, err
	}
	if dateCol.Kind() != fruit.KindDate {
		return View{}, errors.NewValidationError("not a date column").
			WithField("date_column").WithValue(s.DateColumn)
	}

	if len(s.Columns) == 0 {
		return View{}, errors.NewValidationError("at least one column is required").WithField("columns")
	}
	cols := make([]fruit.Column, 0, len(s.Columns))
	for _, name := range s.Columns {
		c, err := fruit.ParseColumn(name)
		if err != nil {
			return View{}, err
		}
		cols = append(cols, c)
	}

	title := s.Title
	if title == "" {
		title = s.Key
	}
	return View{Key: s.Key, Title: title, DateColumn: dateCol, Columns: cols}, nil
}

// Find returns the view with the given key.
func Find(views []View, key string) (View, error) {
	for _, v := range views {
		if v.Key == key {
			return v, nil
		}
	}
	return View{}, errors.NewNotFoundError("view", key).WithCause(errors.ErrUnknownView)
}
