package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/itinerary/internal/cli/formatter"
	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const defaultTime = "19:00"

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func newPlansCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plans",
		Aliases: []string{"plan"},
		Short:   "Manage trip plans",
	}

	cmd.AddCommand(
		newPlansListCmd(app),
		newPlansShowCmd(app),
		newPlansAddCmd(app),
		newPlansEditCmd(app),
		newPlansDeleteCmd(app),
		newPlansSummaryCmd(app),
		newPlansImportCmd(app),
	)

	return cmd
}

// planRecord is the json and yaml shape of a listed plan.
type planRecord struct {
	Index    int    `json:"index" yaml:"index"`
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Date     string `json:"date" yaml:"date"`
	Time     string `json:"time" yaml:"time"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Category string `json:"category" yaml:"category"`
	Budget   string `json:"budget,omitempty" yaml:"budget,omitempty"`
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Created  string `json:"created,omitempty" yaml:"created,omitempty"`
}

func toRecord(r formatter.PlanRow) planRecord {
	p := r.Plan
	rec := planRecord{
		Index:    r.Index,
		ID:       p.ID,
		Title:    p.Title,
		Date:     p.Date.Format(domain.DateLayout),
		Time:     p.Time.String(),
		Location: p.Location,
		Category: string(p.Category),
		Priority: string(p.Priority),
		Notes:    p.Notes,
	}
	if p.Budget.Valid {
		rec.Budget = p.Budget.Decimal.StringFixed(2)
	}
	if !p.Created.IsZero() {
		rec.Created = p.Created.Format(domain.CreatedLayout)
	}
	return rec
}

func writeRecords(w io.Writer, format string, rows []formatter.PlanRow) error {
	records := make([]planRecord, len(rows))
	for i, r := range rows {
		records[i] = toRecord(r)
	}
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", format)
	}
}

func newPlansListCmd(app *App) *cobra.Command {
	var category, output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans by date and time",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.plans()
			if err != nil {
				return err
			}
			all, err := plans.List(cmd.Context())
			if err != nil {
				return err
			}

			index := make(map[*domain.Plan]int, len(all))
			for i, p := range all {
				index[p] = i
			}
			filtered := service.Filter(all, domain.Category(category))
			rows := make([]formatter.PlanRow, len(filtered))
			for i, p := range filtered {
				rows[i] = formatter.PlanRow{Index: index[p], Plan: p}
			}

			out := cmd.OutOrStdout()
			if output != outputTable {
				return writeRecords(out, output, rows)
			}
			if len(all) == 0 {
				fmt.Fprintln(out, "No plans added yet. Use 'itinerary plans add' to create your first plan!")
				return nil
			}
			if len(rows) == 0 {
				fmt.Fprintf(out, "No %s plans.\n", category)
				return nil
			}
			fmt.Fprintln(out, formatter.FormatPlanList(rows, app.Categories))
			fmt.Fprintln(out, formatter.FormatSummary(service.Summarize(all, plans.Trip())))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show this category")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")

	return cmd
}

func newPlansShowCmd(app *App) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "show [ID]",
		Short: "Show one plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.plans()
			if err != nil {
				return err
			}
			p, err := resolvePlan(cmd.Context(), plans, targetFrom(cmd, args, index))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanDetail(p, app.Categories))
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "Display index from 'plans list'")

	return cmd
}

func newPlansAddCmd(app *App) *cobra.Command {
	var f planFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a plan (opens a form when --title is omitted in a terminal)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.plans()
			if err != nil {
				return err
			}
			if f.Title == "" && app.interactive() {
				if f.Date == "" {
					f.Date = plans.Trip().Start.Format(domain.DateLayout)
				}
				if f.Category == "" {
					f.Category = string(app.Categories.Default())
				}
				if err := wizardPlan(&f, app.Categories, plans.Trip()).RunWithContext(cmd.Context()); err != nil {
					return err
				}
			}

			p, err := f.toPlan(app.Categories.Default())
			if err != nil {
				return err
			}
			if err := plans.Create(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s [%s]\n", p.Label(), p.DisplayID())
			return nil
		},
	}

	bindPlanFlags(cmd.Flags(), &f, defaultTime)

	return cmd
}

func newPlansEditCmd(app *App) *cobra.Command {
	var (
		f     planFields
		index int
	)

	cmd := &cobra.Command{
		Use:   "edit [ID]",
		Short: "Change a plan; unset flags keep their current values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.plans()
			if err != nil {
				return err
			}
			target := targetFrom(cmd, args, index)
			current, err := resolvePlan(cmd.Context(), plans, target)
			if err != nil {
				return err
			}

			fields := fieldsFromPlan(current)
			if !overlayChanged(cmd.Flags(), &fields, f) {
				if !app.interactive() {
					return fmt.Errorf("nothing to change: pass at least one of --title, --date, --time, --location, --category, --budget, --priority, --notes")
				}
				if err := wizardPlan(&fields, app.Categories, plans.Trip()).RunWithContext(cmd.Context()); err != nil {
					return err
				}
			}

			p, err := fields.toPlan(app.Categories.Default())
			if err != nil {
				return err
			}
			if target.useIndex {
				err = plans.UpdateAt(cmd.Context(), target.index, p)
			} else {
				p.ID = current.ID
				err = plans.Update(cmd.Context(), p)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s [%s]\n", p.Label(), p.DisplayID())
			return nil
		},
	}

	bindPlanFlags(cmd.Flags(), &f, "")
	cmd.Flags().IntVar(&index, "index", 0, "Display index from 'plans list'")

	return cmd
}

func newPlansDeleteCmd(app *App) *cobra.Command {
	var (
		index int
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "delete [ID]",
		Short: "Delete a plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.plans()
			if err != nil {
				return err
			}
			target := targetFrom(cmd, args, index)
			p, err := resolvePlan(cmd.Context(), plans, target)
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				var confirmed bool
				if err := wizardConfirm(deletePrompt(p), &confirmed).RunWithContext(cmd.Context()); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if target.useIndex {
				err = plans.DeleteAt(cmd.Context(), target.index)
			} else {
				err = plans.Delete(cmd.Context(), p.ID)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", p.Label())
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "Display index from 'plans list'")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newPlansSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show trip statistics and plans per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.plans()
			if err != nil {
				return err
			}
			all, err := plans.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatSummary(service.Summarize(all, plans.Trip())))
			fmt.Fprintln(out)
			for _, day := range service.Timeline(all, plans.Trip(), nil) {
				label := fmt.Sprintf("Day %2d  %s", day.Number, day.Date.Format("Mon Jan 02"))
				if len(day.Plans) == 0 {
					fmt.Fprintf(out, "%s  %s\n", formatter.Dim(label), formatter.Dim("No plans for this day yet"))
					continue
				}
				for i, p := range day.Plans {
					if i > 0 {
						label = fmt.Sprintf("%*s", len(label), "")
					}
					fmt.Fprintf(out, "%s  %s %s\n", label, p.Time.String(), p.Title)
				}
			}
			return nil
		},
	}
}

// targetFrom reads the plan ID argument and --index flag.
func targetFrom(cmd *cobra.Command, args []string, index int) planTarget {
	t := planTarget{index: index, useIndex: cmd.Flags().Changed("index")}
	if len(args) == 1 {
		t.id = args[0]
	}
	return t
}

func bindPlanFlags(flags *pflag.FlagSet, f *planFields, timeDefault string) {
	flags.StringVar(&f.Title, "title", "", "Plan title")
	flags.StringVar(&f.Date, "date", "", "Date (YYYY-MM-DD)")
	flags.StringVar(&f.Time, "time", timeDefault, "Time (HH:MM)")
	flags.StringVar(&f.Location, "location", "", "Location")
	flags.StringVar(&f.Category, "category", "", "Category")
	flags.StringVar(&f.Budget, "budget", "", "Budget amount")
	flags.StringVar(&f.Priority, "priority", "", "Priority: Low, Medium or High")
	flags.StringVar(&f.Notes, "notes", "", "Notes (markdown)")
}

// overlayChanged copies the flags the user set from src into dst and
// reports whether any were set.
func overlayChanged(flags *pflag.FlagSet, dst *planFields, src planFields) bool {
	fields := []struct {
		name string
		dst  *string
		src  string
	}{
		{"title", &dst.Title, src.Title},
		{"date", &dst.Date, src.Date},
		{"time", &dst.Time, src.Time},
		{"location", &dst.Location, src.Location},
		{"category", &dst.Category, src.Category},
		{"budget", &dst.Budget, src.Budget},
		{"priority", &dst.Priority, src.Priority},
		{"notes", &dst.Notes, src.Notes},
	}
	changed := false
	for _, fl := range fields {
		if flags.Changed(fl.name) {
			*fl.dst = fl.src
			changed = true
		}
	}
	return changed
}
