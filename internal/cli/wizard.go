package cli

import (
	"fmt"

	"github.com/alexanderramin/itinerary/internal/cli/formatter"
	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func itineraryHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorAccent).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorAccent).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardPlan creates a huh form that fills f in place.
func wizardPlan(f *planFields, cats domain.CategorySet, trip domain.TripRange) *huh.Form {
	categories := make([]huh.Option[string], 0, len(cats.Entries()))
	for _, e := range cats.Entries() {
		categories = append(categories, huh.NewOption(e.Style.Icon+" "+string(e.Category), string(e.Category)))
	}
	if f.Category != "" && !cats.Known(domain.Category(f.Category)) {
		categories = append(categories, huh.NewOption(f.Category, f.Category))
	}

	priorities := []huh.Option[string]{huh.NewOption("None", "")}
	for _, p := range domain.Priorities {
		priorities = append(priorities, huh.NewOption(string(p), string(p)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Dinner at Italian restaurant").
				Value(&f.Title).
				Validate(validateRequired),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Placeholder(trip.Start.Format(domain.DateLayout)).
				Value(&f.Date).
				Validate(validateTripDate(trip)),
			huh.NewInput().
				Title("Time (HH:MM)").
				Placeholder(defaultTime).
				Value(&f.Time).
				Validate(validateOptionalTime),
			huh.NewInput().
				Title("Location").
				Placeholder("Restaurant name or address").
				Value(&f.Location),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Value(&f.Category),
			huh.NewInput().
				Title("Budget").
				Placeholder("0.00").
				Value(&f.Budget).
				Validate(validateOptionalBudget),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorities...).
				Value(&f.Priority),
			huh.NewText().
				Title("Notes").
				Placeholder("Special details or reminders...").
				Lines(4).
				Value(&f.Notes),
		),
	).WithTheme(itineraryHuhTheme()).WithShowHelp(false)
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(itineraryHuhTheme()).WithShowHelp(false)
}

func deletePrompt(p *domain.Plan) string {
	return fmt.Sprintf("Delete %q?", p.Label())
}
