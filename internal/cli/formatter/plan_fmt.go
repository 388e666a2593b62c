package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/service"
	"github.com/muesli/reflow/wordwrap"
)

const notesWidth = 60

var planColumns = []Column{
	{Title: "#"},
	{Title: "ID"},
	{Title: "DATE"},
	{Title: "TIME"},
	{Title: "TITLE", MaxWidth: 32},
	{Title: "CATEGORY"},
	{Title: "LOCATION", MaxWidth: 24},
	{Title: "BUDGET"},
	{Title: "PRIORITY"},
}

// PlanRow pairs a plan with its display index, the position accepted by
// --index.
type PlanRow struct {
	Index int
	Plan  *domain.Plan
}

// FormatPlanList renders rows in the order given.
func FormatPlanList(plans []PlanRow, cats domain.CategorySet) string {
	rows := make([][]string, 0, len(plans))
	for _, r := range plans {
		p := r.Plan
		rows = append(rows, []string{
			Dim(strconv.Itoa(r.Index)),
			TruncID(p.ID),
			p.Date.Format("Mon Jan 02"),
			p.Time.String(),
			Bold(p.Title),
			CategoryBadge(p.Category, cats.Style(p.Category)),
			OrDash(p.Location),
			Money(p.Budget),
			PriorityPill(p.Priority),
		})
	}
	return RenderBox("Plans", RenderTable(planColumns, rows))
}

// FormatPlanDetail renders one plan with its notes wrapped.
func FormatPlanDetail(p *domain.Plan, cats domain.CategorySet) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-9s", label)), value))
	}
	line("ID", p.ID)
	line("DATE", p.Date.Format("Monday, January 02, 2006"))
	line("TIME", p.Time.String())
	line("CATEGORY", CategoryBadge(p.Category, cats.Style(p.Category)))
	line("LOCATION", OrDash(p.Location))
	line("BUDGET", Money(p.Budget))
	line("PRIORITY", PriorityPill(p.Priority))
	if !p.Created.IsZero() {
		line("CREATED", Dim(p.Created.Format(domain.CreatedLayout)))
	}
	if strings.TrimSpace(p.Notes) != "" {
		b.WriteString("\n")
		b.WriteString(wordwrap.String(p.Notes, notesWidth))
		b.WriteString("\n")
	}
	return RenderBox(p.Title, strings.TrimRight(b.String(), "\n"))
}

// FormatSummary renders the header statistics.
func FormatSummary(sum service.Summary) string {
	parts := []string{
		fmt.Sprintf("%s %s", Bold(strconv.Itoa(sum.TotalPlans)), Dim("plans")),
		fmt.Sprintf("%s %s", Bold(strconv.Itoa(sum.TripDays)), Dim("days together")),
		StyleGreen.Render(fmt.Sprintf("%d/%d", sum.DaysPlanned, sum.TripDays)) + " " + Dim("days planned"),
	}
	if !sum.TotalBudget.IsZero() {
		parts = append(parts, fmt.Sprintf("%s %s", Bold("$"+sum.TotalBudget.StringFixed(2)), Dim("budget")))
	}
	return strings.Join(parts, Dim("  ·  "))
}
