package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/fruitfilter/internal/engine"
	"github.com/Iron-Ham/fruitfilter/internal/errors"
	"github.com/Iron-Ham/fruitfilter/internal/fruit"
	"github.com/Iron-Ham/fruitfilter/internal/tui"
	"github.com/Iron-Ham/fruitfilter/internal/view"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run one search without the interactive page",
	Long: `Run the search, refinement and view stages once and print the result.

Without --view the refined results are printed with every column. With
--view the named view's columns are printed, after its date range, text
and sort options are applied.

Category flags left unset select every value: --colour and --hardness
default to the whole table, --refine-colour and --refine-hardness to
whatever the search left.

Examples:
  fruitfilter query --search berry
  fruitfilter query --search e --colour red --colour yellow
  fruitfilter query --search e --view logistics --sort
  fruitfilter query --search e --view descriptions --from 2023-03-05 --format yaml`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	f := queryCmd.Flags()
	f.StringP("search", "s", "", "text the fruit name must contain (case-sensitive)")
	f.StringSlice("colour", nil, "colours to search (repeatable; default all)")
	f.StringSlice("hardness", nil, "hardness values to search (repeatable; default all)")
	f.StringSlice("refine-colour", nil, "colours to keep from the search results (default all)")
	f.StringSlice("refine-hardness", nil, "hardness values to keep from the search results (default all)")
	f.String("view", "", "view to print (see views in config)")
	f.String("from", "", "first day of the view's date range, YYYY-MM-DD")
	f.String("to", "", "last day of the view's date range, YYYY-MM-DD")
	f.String("text", "", "text that must appear in some column of the view")
	f.Bool("sort", false, "sort the view by its date column")
	f.StringP("format", "f", formatTable, "output format: table or yaml")
	rootCmd.AddCommand(queryCmd)
}

// queryOptions are the parsed query flags.
type queryOptions struct {
	Search         string
	Colours        []string
	Hardness       []string
	RefineColours  []string
	RefineHardness []string
	// The refine flags only constrain when given, so unset and empty
	// differ.
	HasColours        bool
	HasHardness       bool
	HasRefineColours  bool
	HasRefineHardness bool

	View   string
	From   *time.Time
	To     *time.Time
	Text   string
	Sort   bool
	Format string
}

// queryResult is the yaml form of a query.
type queryResult struct {
	Search   string     `yaml:"search"`
	Searched bool       `yaml:"searched"`
	View     string     `yaml:"view,omitempty"`
	Count    int        `yaml:"count"`
	Columns  []string   `yaml:"columns"`
	Rows     [][]string `yaml:"rows"`
}

func parseQueryFlags(cmd *cobra.Command) (queryOptions, error) {
	f := cmd.Flags()
	var opts queryOptions

	opts.Search, _ = f.GetString("search")
	opts.Colours, _ = f.GetStringSlice("colour")
	opts.Hardness, _ = f.GetStringSlice("hardness")
	opts.RefineColours, _ = f.GetStringSlice("refine-colour")
	opts.RefineHardness, _ = f.GetStringSlice("refine-hardness")
	opts.HasColours = f.Changed("colour")
	opts.HasHardness = f.Changed("hardness")
	opts.HasRefineColours = f.Changed("refine-colour")
	opts.HasRefineHardness = f.Changed("refine-hardness")
	opts.View, _ = f.GetString("view")
	opts.Text, _ = f.GetString("text")
	opts.Sort, _ = f.GetBool("sort")
	opts.Format, _ = f.GetString("format")

	if err := checkFormat(opts.Format); err != nil {
		return opts, err
	}

	for _, d := range []struct {
		flag string
		dst  **time.Time
	}{{"from", &opts.From}, {"to", &opts.To}} {
		s, _ := f.GetString(d.flag)
		if s == "" {
			continue
		}
		t, err := fruit.ParseDate(s)
		if err != nil {
			return opts, errors.NewValidationError("expected YYYY-MM-DD").
				WithField(d.flag).
				WithValue(s).
				WithCause(err)
		}
		*d.dst = &t
	}

	if opts.View == "" && (opts.From != nil || opts.To != nil || opts.Text != "" || opts.Sort) {
		return opts, errors.NewValidationError("--from, --to, --text and --sort need --view").WithField("view")
	}

	return opts, nil
}

// input builds the engine input. The chosen view, if any, is evaluated
// without a date range; the range is applied afterwards, once the view's
// bounds are known.
func (o queryOptions) input(base *fruit.Table, v *view.View) engine.Input {
	in := engine.Input{
		Search:      o.Search,
		Categories:  engine.SelectAll(base),
		Refinements: make(map[fruit.Column]engine.Selection),
	}
	if o.HasColours {
		in.Categories[fruit.ColColour] = engine.Selection(o.Colours)
	}
	if o.HasHardness {
		in.Categories[fruit.ColHardness] = engine.Selection(o.Hardness)
	}
	if o.HasRefineColours {
		in.Refinements[fruit.ColColour] = engine.Selection(o.RefineColours)
	}
	if o.HasRefineHardness {
		in.Refinements[fruit.ColHardness] = engine.Selection(o.RefineHardness)
	}
	if v != nil {
		in.Views = []engine.ViewInput{{
			Key: v.Key,
			Criteria: engine.ViewCriteria{
				DateColumn: v.DateColumn,
				Text:       o.Text,
				SortByDate: o.Sort,
			},
		}}
	}
	return in
}

// dateRange fills unset ends from the view's bounds.
func (o queryOptions) dateRange(bounds engine.DateRange) *engine.DateRange {
	if o.From == nil && o.To == nil {
		return nil
	}
	r := bounds
	if o.From != nil {
		r.From = *o.From
	}
	if o.To != nil {
		r.To = *o.To
	}
	return &r
}

func runQuery(cmd *cobra.Command, args []string) error {
	opts, err := parseQueryFlags(cmd)
	if err != nil {
		return err
	}

	env, err := loadEnvironment("query")
	if err != nil {
		return err
	}
	defer env.Close()

	var selected *view.View
	if opts.View != "" {
		v, err := view.Find(env.views, opts.View)
		if err != nil {
			return err
		}
		selected = &v
	}

	in := opts.input(env.base, selected)
	out := engine.Evaluate(env.base, in)

	result := queryResult{Search: out.Search, Searched: out.Searched}
	var frame view.Frame
	notice := ""

	switch {
	case !out.Searched:
		notice = tui.NoSearchNotice
		frame = view.Project(fruit.Empty(), nil)
	case selected == nil:
		frame = view.Project(out.Stage2, nil)
	default:
		result.View = selected.Key
		vo, _ := out.View(selected.Key)
		table := vo.Table
		if r := opts.dateRange(vo.Bounds); r != nil && vo.HasBounds {
			crit := in.Views[0].Criteria
			crit.Range = r
			table = engine.RefineView(out.Stage2, crit)
		}
		if out.Stage2.IsEmpty() {
			notice = tui.EmptyViewNotice
		}
		frame = selected.Project(table)
	}

	env.logger.Info("query evaluated",
		"search", out.Search,
		"stage1_rows", out.Stage1.Len(),
		"stage2_rows", out.Stage2.Len(),
		"view", result.View,
		"rows", frame.Len(),
	)

	if notice != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), notice)
	}

	if opts.Format == formatYAML {
		result.Count = frame.Len()
		result.Columns = frame.Columns
		result.Rows = frame.Rows
		return writeYAML(cmd.OutOrStdout(), result)
	}
	if !out.Searched {
		return nil
	}
	return writeTable(cmd.OutOrStdout(), frame, env.cfg.TUI.MaxCellWidth)
}
