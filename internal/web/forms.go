package web

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/shopspring/decimal"
)

const defaultTime = "19:00"

// planForm is the add/edit form as submitted.
type planForm struct {
	Title    string `form:"title"`
	Date     string `form:"date"`
	Time     string `form:"time"`
	Location string `form:"location"`
	Category string `form:"category"`
	Budget   string `form:"budget"`
	Priority string `form:"priority"`
	Notes    string `form:"notes"`
}

// inputError is a problem with submitted values rather than the store.
type inputError struct{ msg string }

func (e inputError) Error() string { return e.msg }

func inputErrorf(format string, args ...any) error {
	return inputError{msg: fmt.Sprintf(format, args...)}
}

var errMissingRequired = inputError{msg: "Please fill in Title and Date"}

// toPlan converts the form. An empty category becomes fallback; an empty
// time is midnight.
func (f planForm) toPlan(fallback domain.Category) (*domain.Plan, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" || strings.TrimSpace(f.Date) == "" {
		return nil, errMissingRequired
	}
	date, err := domain.ParseDate(strings.TrimSpace(f.Date))
	if err != nil {
		return nil, inputErrorf("invalid date %q (use YYYY-MM-DD)", f.Date)
	}
	p := &domain.Plan{
		Title:    title,
		Date:     date,
		Location: strings.TrimSpace(f.Location),
		Category: domain.CategoryOr(f.Category, fallback),
		Priority: domain.Priority(strings.TrimSpace(f.Priority)),
		Notes:    strings.TrimSpace(f.Notes),
	}
	if t := strings.TrimSpace(f.Time); t != "" {
		if p.Time, err = domain.ParseTimeOfDay(t); err != nil {
			return nil, inputError{msg: err.Error()}
		}
	}
	if b := strings.TrimSpace(f.Budget); b != "" {
		d, err := decimal.NewFromString(b)
		if err != nil {
			return nil, inputErrorf("invalid budget %q", b)
		}
		p.Budget = decimal.NewNullDecimal(d)
	}
	return p, nil
}

func (f planForm) view(action, submit, id string) formView {
	return formView{
		Action:   action,
		Submit:   submit,
		ID:       id,
		Title:    f.Title,
		Date:     f.Date,
		Time:     f.Time,
		Location: f.Location,
		Category: f.Category,
		Budget:   f.Budget,
		Priority: f.Priority,
		Notes:    f.Notes,
	}
}
