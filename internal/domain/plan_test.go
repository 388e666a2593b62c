package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTrip(t *testing.T) TripRange {
	t.Helper()
	r, err := ParseTripRange("2025-12-17", "2026-01-01")
	require.NoError(t, err)
	return r
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestPlanValidate_OK(t *testing.T) {
	p := &Plan{Title: "Dinner", Date: date(t, "2025-12-20"), Category: CategoryDining}
	assert.NoError(t, p.Validate(testTrip(t)))
}

func TestPlanValidate_TitleRequired(t *testing.T) {
	p := &Plan{Title: "   ", Date: date(t, "2025-12-20")}
	assert.ErrorIs(t, p.Validate(testTrip(t)), ErrTitleRequired)
}

func TestPlanValidate_DateRequired(t *testing.T) {
	p := &Plan{Title: "Dinner"}
	assert.ErrorIs(t, p.Validate(testTrip(t)), ErrDateRequired)
}

func TestPlanValidate_DateOutsideTrip(t *testing.T) {
	for _, d := range []string{"2025-12-16", "2026-01-02"} {
		p := &Plan{Title: "Dinner", Date: date(t, d)}
		assert.ErrorIs(t, p.Validate(testTrip(t)), ErrDateOutOfRange, d)
	}
}

func TestPlanValidate_RangeEndsInclusive(t *testing.T) {
	for _, d := range []string{"2025-12-17", "2026-01-01"} {
		p := &Plan{Title: "Dinner", Date: date(t, d)}
		assert.NoError(t, p.Validate(testTrip(t)), d)
	}
}

func TestPlanValidate_NegativeBudget(t *testing.T) {
	p := &Plan{
		Title:  "Dinner",
		Date:   date(t, "2025-12-20"),
		Budget: decimal.NewNullDecimal(decimal.NewFromFloat(-1)),
	}
	assert.ErrorIs(t, p.Validate(testTrip(t)), ErrNegativeBudget)
}

func TestPlanValidate_UnknownPriority(t *testing.T) {
	p := &Plan{Title: "Dinner", Date: date(t, "2025-12-20"), Priority: "Urgent"}
	assert.ErrorIs(t, p.Validate(testTrip(t)), ErrInvalidPriority)
}

func TestPlanValidate_UnknownCategoryAllowed(t *testing.T) {
	p := &Plan{Title: "Dinner", Date: date(t, "2025-12-20"), Category: "Karaoke"}
	assert.NoError(t, p.Validate(testTrip(t)))
}

func TestPlanLabel(t *testing.T) {
	p := &Plan{Title: "Dinner", Date: date(t, "2025-12-20")}
	assert.Equal(t, "Dinner - Dec 20", p.Label())
}

func TestSortPlans_DateThenTime(t *testing.T) {
	a := &Plan{Title: "a", Date: date(t, "2025-12-21"), Time: TimeOfDay{Hour: 9}}
	b := &Plan{Title: "b", Date: date(t, "2025-12-20"), Time: TimeOfDay{Hour: 19}}
	c := &Plan{Title: "c", Date: date(t, "2025-12-20"), Time: TimeOfDay{Hour: 8, Minute: 30}}
	d := &Plan{Title: "d", Date: date(t, "2025-12-20"), Time: TimeOfDay{Hour: 8, Minute: 30}}

	plans := []*Plan{a, b, c, d}
	SortPlans(plans)

	var titles []string
	for _, p := range plans {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"c", "d", "b", "a"}, titles)
}
