package web

import (
	"fmt"
	"html/template"
	"time"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/service"
	"github.com/shopspring/decimal"
)

const (
	tabTimeline = "timeline"
	tabList     = "list"
	tabManage   = "manage"
)

var tabs = map[string]bool{tabTimeline: true, tabList: true, tabManage: true}

type cardView struct {
	ID        string
	Title     string
	Date      string
	Time      string
	Location  string
	Category  string
	Color     string
	Icon      string
	Budget    string
	Priority  string
	NotesHTML template.HTML
}

type dayView struct {
	Heading string
	Number  int
	Today   bool
	Cards   []cardView
}

type categoryOption struct {
	Name     string
	Color    string
	Icon     string
	Selected bool
}

type statsView struct {
	TotalPlans  int
	TripDays    int
	DaysPlanned int
	TotalBudget string
	HasBudget   bool
}

type formView struct {
	Action   string
	Submit   string
	ID       string
	Title    string
	Date     string
	Time     string
	Location string
	Category string
	Budget   string
	Priority string
	Notes    string
}

type editOption struct {
	ID       string
	Label    string
	Selected bool
}

type pageData struct {
	Title    string
	Subtitle string
	Tab      string
	Notice   string
	Error    string

	TripStart  string
	TripEnd    string
	Stats      statsView
	Categories []categoryOption
	Priorities []string

	Timeline     []dayView
	List         []cardView
	ListCategory string
	HasPlans     bool

	Add         formView
	EditOptions []editOption
	Edit        *formView
}

type setupData struct {
	Title    string
	Subtitle string
	Problem  string
	Quota    bool
	Account  string
	Detail   string
}

func (s *Server) card(p *domain.Plan) cardView {
	style := s.cfg.Categories.Style(p.Category)
	return cardView{
		ID:        p.ID,
		Title:     p.Title,
		Date:      p.Date.Format("Jan 02, 2006"),
		Time:      p.Time.String(),
		Location:  p.Location,
		Category:  string(p.Category),
		Color:     style.Color,
		Icon:      style.Icon,
		Budget:    formatBudget(p.Budget),
		Priority:  string(p.Priority),
		NotesHTML: s.notes.render(p.Notes),
	}
}

func formatBudget(b decimal.NullDecimal) string {
	if !b.Valid {
		return ""
	}
	return b.Decimal.StringFixed(2)
}

func (s *Server) timelineView(days []service.DayPlans, today time.Time) []dayView {
	out := make([]dayView, len(days))
	for i, d := range days {
		cards := make([]cardView, len(d.Plans))
		for j, p := range d.Plans {
			cards[j] = s.card(p)
		}
		out[i] = dayView{
			Heading: d.Date.Format("Monday, January 02, 2006"),
			Number:  d.Number,
			Today:   d.Date.Equal(today),
			Cards:   cards,
		}
	}
	return out
}

func (s *Server) statsView(sum service.Summary) statsView {
	return statsView{
		TotalPlans:  sum.TotalPlans,
		TripDays:    sum.TripDays,
		DaysPlanned: sum.DaysPlanned,
		TotalBudget: sum.TotalBudget.StringFixed(2),
		HasBudget:   !sum.TotalBudget.IsZero(),
	}
}

func (s *Server) categoryOptions(selected []domain.Category) []categoryOption {
	pick := make(map[domain.Category]bool, len(selected))
	for _, c := range selected {
		pick[c] = true
	}
	entries := s.cfg.Categories.Entries()
	out := make([]categoryOption, len(entries))
	for i, e := range entries {
		out[i] = categoryOption{
			Name:     string(e.Category),
			Color:    e.Style.Color,
			Icon:     e.Style.Icon,
			Selected: len(pick) == 0 || pick[e.Category],
		}
	}
	return out
}

func priorityNames() []string {
	out := make([]string, len(domain.Priorities))
	for i, p := range domain.Priorities {
		out[i] = string(p)
	}
	return out
}

func formFromPlan(p *domain.Plan) formView {
	f := formView{
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
		f.Budget = p.Budget.Decimal.String()
	}
	return f
}

// dict builds a map from alternating keys and values so a nested template
// can receive more than one argument.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}
