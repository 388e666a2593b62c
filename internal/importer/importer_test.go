package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_YAMLMapping(t *testing.T) {
	path := writeFile(t, "plans.yaml", `
plans:
  - title: Dinner
    date: 2025-12-20
    time: "20:30"
    budget: 45.5
    category: Dining
  - title: Museum
    date: "2025-12-21"
    budget: "12"
`)
	f, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, f.Plans, 2)
	assert.Equal(t, "2025-12-20", f.Plans[0].Date)
	assert.Equal(t, Amount("45.5"), f.Plans[0].Budget)
	assert.Equal(t, Amount("12"), f.Plans[1].Budget)
}

func TestLoadFile_YAMLList(t *testing.T) {
	path := writeFile(t, "plans.yml", `
- index: 3
  id: 0192c1de-aaaa-7000-8000-000000000000
  title: Market
  date: "2025-12-19"
  created: "2025-12-01 09:00:00"
`)
	f, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, f.Plans, 1)
	assert.Equal(t, "Market", f.Plans[0].Title)
}

func TestLoadFile_JSON(t *testing.T) {
	list := writeFile(t, "list.json", `[{"title":"Dinner","date":"2025-12-20","budget":30}]`)
	f, err := LoadFile(list)
	require.NoError(t, err)
	require.Len(t, f.Plans, 1)
	assert.Equal(t, Amount("30"), f.Plans[0].Budget)

	obj := writeFile(t, "obj.json", `{"plans":[{"title":"Dinner","date":"2025-12-20","budget":"30.25"}]}`)
	f, err = LoadFile(obj)
	require.NoError(t, err)
	require.Len(t, f.Plans, 1)
	assert.Equal(t, Amount("30.25"), f.Plans[0].Budget)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, "bad.json", `{"plans": [`))
	assert.ErrorContains(t, err, "parsing import file")

	_, err = LoadFile(writeFile(t, "bad.yaml", "plans: [a, b"))
	assert.ErrorContains(t, err, "parsing import file")
}

func TestValidate(t *testing.T) {
	trip := testutil.Trip()

	assert.Empty(t, Validate(&ImportFile{Plans: []PlanImport{{Title: "Dinner", Date: "2025-12-20"}}}, trip))
	assert.NotEmpty(t, Validate(&ImportFile{}, trip))

	errs := Validate(&ImportFile{Plans: []PlanImport{
		{Title: "ok", Date: "2025-12-20"},
		{Title: "", Date: "2026-02-01", Time: "7pm", Budget: "-3", Priority: "Urgent"},
		{Title: "x", Date: "20.12.2025", Budget: "lots"},
	}}, trip)

	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	joined := strings.Join(msgs, "\n")
	assert.Len(t, errs, 7)
	assert.Contains(t, joined, "plans[1].title is required")
	assert.Contains(t, joined, "plans[1].date 2026-02-01 is outside the trip")
	assert.Contains(t, joined, "plans[1].time")
	assert.Contains(t, joined, "plans[1].budget must not be negative")
	assert.Contains(t, joined, "plans[1].priority")
	assert.Contains(t, joined, "plans[2].date: invalid date format")
	assert.Contains(t, joined, "plans[2].budget: invalid amount")
	assert.NotContains(t, joined, "plans[0]")
}

func TestConvert(t *testing.T) {
	f := &ImportFile{Plans: []PlanImport{
		{Title: " Dinner ", Date: "2025-12-20", Budget: "45.5", Priority: "High"},
		{Title: "Flight", Date: "2025-12-17", Time: "06:10", Category: "Travel"},
	}}
	plans, err := Convert(f, domain.CategoryDining)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	assert.Equal(t, "Dinner", plans[0].Title)
	assert.Equal(t, "19:00", plans[0].Time.String())
	assert.Equal(t, domain.CategoryDining, plans[0].Category)
	assert.Equal(t, "45.5", plans[0].Budget.Decimal.String())
	assert.Equal(t, domain.PriorityHigh, plans[0].Priority)

	assert.Equal(t, "06:10", plans[1].Time.String())
	assert.Equal(t, domain.CategoryTravel, plans[1].Category)
	assert.False(t, plans[1].Budget.Valid)
	for _, p := range plans {
		assert.NoError(t, p.Validate(testutil.Trip()))
	}
}
