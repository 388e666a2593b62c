package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/repository"
	"github.com/alexanderramin/itinerary/internal/service"
	"github.com/alexanderramin/itinerary/internal/sheet"
	"github.com/alexanderramin/itinerary/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// testApp wires an App backed by an in-memory SQLite book.
func testApp(t *testing.T) *App {
	t.Helper()
	return testAppOn(t, testutil.NewTestDB(t))
}

func testAppOn(t *testing.T, database *sql.DB) *App {
	t.Helper()
	repo := repository.NewSheetPlanRepo(sheet.NewSQLiteClient(database), sheet.BookRef{Title: "Trip Planner"}, "Trips", testutil.Trip())
	return &App{
		Plans:  service.NewPlanService(repo, testutil.Trip()),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// seedPlans creates plans through the service and returns them in store
// order.
func seedPlans(t *testing.T, app *App, plans ...*domain.Plan) []*domain.Plan {
	t.Helper()
	for _, p := range plans {
		require.NoError(t, app.Plans.Create(context.Background(), p))
	}
	return plans
}

func listPlans(t *testing.T, app *App) []*domain.Plan {
	t.Helper()
	plans, err := app.Plans.List(context.Background())
	require.NoError(t, err)
	return plans
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestPlansAdd_Flags(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plans", "add",
		"--title", "Dinner",
		"--date", "2025-12-20",
		"--category", "Dining",
		"--budget", "$80",
		"--priority", "high",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Added Dinner - Dec 20")

	plans := listPlans(t, app)
	require.Len(t, plans, 1)
	p := plans[0]
	assert.Equal(t, "19:00", p.Time.String())
	assert.Equal(t, domain.PriorityHigh, p.Priority)
	assert.Equal(t, "80", p.Budget.Decimal.String())
}

func TestPlansAdd_DefaultsCategory(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plans", "add", "--title", "Walk", "--date", "2025-12-18", "--time", "08:15")
	require.NoError(t, err)

	plans := listPlans(t, app)
	require.Len(t, plans, 1)
	assert.Equal(t, domain.CategoryDining, plans[0].Category)
	assert.Equal(t, "08:15", plans[0].Time.String())
}

func TestPlansAdd_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing title", []string{"--date", "2025-12-20"}, errMissingRequired},
		{"outside trip", []string{"--title", "X", "--date", "2026-03-01"}, domain.ErrDateOutOfRange},
		{"bad priority", []string{"--title", "X", "--date", "2025-12-20", "--priority", "urgent"}, domain.ErrInvalidPriority},
		{"negative budget", []string{"--title", "X", "--date", "2025-12-20", "--budget", "-4"}, domain.ErrNegativeBudget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			_, err := executeCmd(t, app, append([]string{"plans", "add"}, tt.args...)...)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, listPlans(t, app))
		})
	}
}

func TestPlansAdd_BadTime(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plans", "add", "--title", "X", "--date", "2025-12-20", "--time", "25:99")
	assert.Error(t, err)
	assert.Empty(t, listPlans(t, app))
}

func TestPlansList_Table(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app,
		testutil.NewTestPlan("Dinner", "2025-12-22"),
		testutil.NewTestPlan("Museum", "2025-12-18", testutil.WithCategory(domain.CategoryActivity)),
	)

	out, err := executeCmd(t, app, "plans", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "PLANS")
	assert.Less(t, strings.Index(out, "Museum"), strings.Index(out, "Dinner"))
	assert.Contains(t, out, "2/16")
}

func TestPlansList_Empty(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plans", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No plans added yet")
}

func TestPlansList_JSONKeepsStoreIndex(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app,
		testutil.NewTestPlan("Dinner", "2025-12-22", testutil.WithBudget("45.5")),
		testutil.NewTestPlan("Museum", "2025-12-18", testutil.WithCategory(domain.CategoryActivity)),
	)

	out, err := executeCmd(t, app, "plans", "list", "-o", "json")
	require.NoError(t, err)

	var records []planRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Museum", records[0].Title)
	assert.Equal(t, 1, records[0].Index)
	assert.Equal(t, "Dinner", records[1].Title)
	assert.Equal(t, 0, records[1].Index)
	assert.Equal(t, "45.50", records[1].Budget)
}

func TestPlansList_YAMLFiltered(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app,
		testutil.NewTestPlan("Dinner", "2025-12-22"),
		testutil.NewTestPlan("Museum", "2025-12-18", testutil.WithCategory(domain.CategoryActivity)),
	)

	out, err := executeCmd(t, app, "plans", "list", "--category", "Activity", "--output", "yaml")
	require.NoError(t, err)

	var records []planRecord
	require.NoError(t, yaml.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Museum", records[0].Title)
	assert.Equal(t, "Activity", records[0].Category)
}

func TestPlansList_UnknownFormat(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plans", "list", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestPlansShow_ByPrefix(t *testing.T) {
	app := testApp(t)
	seeded := seedPlans(t, app, testutil.NewTestPlan("Dinner", "2025-12-20", testutil.WithNotes("Ask for the terrace")))

	out, err := executeCmd(t, app, "plans", "show", seeded[0].ID[:13])
	require.NoError(t, err)
	assert.Contains(t, out, "DINNER")
	assert.Contains(t, out, "Ask for the terrace")
}

func TestPlansEdit_ByID(t *testing.T) {
	app := testApp(t)
	seeded := seedPlans(t, app, testutil.NewTestPlan("Dinner", "2025-12-20", testutil.WithLocation("Harbour")))
	before := listPlans(t, app)[0]

	out, err := executeCmd(t, app, "plans", "edit", seeded[0].ID, "--title", "Late dinner", "--time", "21:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated Late dinner")

	got := listPlans(t, app)[0]
	assert.Equal(t, before.ID, got.ID)
	assert.Equal(t, before.Created, got.Created)
	assert.Equal(t, "Late dinner", got.Title)
	assert.Equal(t, "21:00", got.Time.String())
	assert.Equal(t, "Harbour", got.Location)
}

func TestPlansEdit_ByIndexClearsField(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app,
		testutil.NewTestPlan("Dinner", "2025-12-20"),
		testutil.NewTestPlan("Museum", "2025-12-18", testutil.WithBudget("20")),
	)
	before := listPlans(t, app)

	_, err := executeCmd(t, app, "plans", "edit", "--index", "1", "--budget", "")
	require.NoError(t, err)

	after := listPlans(t, app)
	require.Len(t, after, 2)
	assert.Equal(t, before[1].ID, after[1].ID)
	assert.False(t, after[1].Budget.Valid)
	assert.Equal(t, "Museum", after[1].Title)
	assert.Equal(t, before[0].Title, after[0].Title)
}

func TestPlansEdit_NothingToChange(t *testing.T) {
	app := testApp(t)
	seeded := seedPlans(t, app, testutil.NewTestPlan("Dinner", "2025-12-20"))

	_, err := executeCmd(t, app, "plans", "edit", seeded[0].ID)
	assert.ErrorContains(t, err, "nothing to change")
}

func TestPlansEdit_TargetErrors(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app, testutil.NewTestPlan("Dinner", "2025-12-20"))

	_, err := executeCmd(t, app, "plans", "edit", "--title", "X")
	assert.ErrorContains(t, err, "--index is required")

	_, err = executeCmd(t, app, "plans", "edit", "abc", "--index", "0", "--title", "X")
	assert.ErrorContains(t, err, "not both")

	_, err = executeCmd(t, app, "plans", "edit", "--index", "5", "--title", "X")
	assert.ErrorIs(t, err, repository.ErrPlanNotFound)

	_, err = executeCmd(t, app, "plans", "edit", "zzzz", "--title", "X")
	assert.ErrorIs(t, err, repository.ErrPlanNotFound)
}

func TestPlansDelete(t *testing.T) {
	app := testApp(t)
	seeded := seedPlans(t, app,
		testutil.NewTestPlan("Dinner", "2025-12-20"),
		testutil.NewTestPlan("Museum", "2025-12-18"),
		testutil.NewTestPlan("Market", "2025-12-19"),
	)

	out, err := executeCmd(t, app, "plans", "delete", seeded[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Dinner")

	_, err = executeCmd(t, app, "plans", "delete", "--index", "1", "--yes")
	require.NoError(t, err)

	left := listPlans(t, app)
	require.Len(t, left, 1)
	assert.Equal(t, "Museum", left[0].Title)
}

func TestPlansSummary(t *testing.T) {
	app := testApp(t)
	seedPlans(t, app,
		testutil.NewTestPlan("Dinner", "2025-12-17", testutil.WithBudget("30")),
		testutil.NewTestPlan("Brunch", "2025-12-17", testutil.WithTime(10, 0)),
	)

	out, err := executeCmd(t, app, "plans", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "1/16")
	assert.Contains(t, out, "$30.00")
	assert.Less(t, strings.Index(out, "10:00 Brunch"), strings.Index(out, "19:00 Dinner"))
	assert.Equal(t, 15, strings.Count(out, "No plans for this day yet"))
}

func TestProvision(t *testing.T) {
	database := testutil.NewTestDB(t)

	out, err := executeCmd(t, testAppOn(t, database), "provision")
	require.NoError(t, err)
	assert.Contains(t, out, "Trip Planner")
	assert.Contains(t, out, "created")
	assert.Contains(t, out, strings.Join(repository.Columns, ", "))

	out, err = executeCmd(t, testAppOn(t, database), "provision")
	require.NoError(t, err)
	assert.Contains(t, out, "existing")
	assert.NotContains(t, out, "created")
}

func TestProvision_QuotaHint(t *testing.T) {
	fake := testutil.NewFakeSheets()
	fake.CreateErr = fmt.Errorf("drive: %w", sheet.ErrQuota)
	repo := repository.NewSheetPlanRepo(fake, sheet.BookRef{Title: "Trip Planner"}, "Trips", testutil.Trip())
	app := &App{
		Plans:   service.NewPlanService(repo, testutil.Trip()),
		Account: "bot@example.iam.gserviceaccount.com",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	_, err := executeCmd(t, app, "provision")
	assert.ErrorIs(t, err, repository.ErrProvision)
	assert.ErrorContains(t, err, "bot@example.iam.gserviceaccount.com")
}

func TestUnavailableStore(t *testing.T) {
	app := &App{
		Unavailable: fmt.Errorf("%w: no credentials", repository.ErrConnection),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	_, err := executeCmd(t, app, "plans", "list")
	assert.ErrorIs(t, err, repository.ErrConnection)
}

func TestWebServer_UsesAppWiring(t *testing.T) {
	app := testApp(t)
	require.NoError(t, app.bootstrap(context.Background(), ""))
	app.Config.Web.Password = "pw"

	srv, err := app.newWebServer()
	require.NoError(t, err)
	h := srv.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlanFields_ToPlan(t *testing.T) {
	f := planFields{Title: " Dinner ", Date: "2025-12-20", Time: "", Budget: "$12.50", Priority: "medium"}
	p, err := f.toPlan(domain.CategoryCafe)
	require.NoError(t, err)
	assert.Equal(t, "Dinner", p.Title)
	assert.Equal(t, "00:00", p.Time.String())
	assert.Equal(t, domain.CategoryCafe, p.Category)
	assert.Equal(t, domain.PriorityMedium, p.Priority)
	assert.Equal(t, "12.5", p.Budget.Decimal.String())

	_, err = planFields{Title: "X", Date: "20/12/2025"}.toPlan(domain.CategoryDining)
	assert.ErrorContains(t, err, "invalid date")

	_, err = planFields{Title: "X", Date: "2025-12-20", Budget: "lots"}.toPlan(domain.CategoryDining)
	assert.ErrorContains(t, err, "invalid budget")
}

func TestFormValidators(t *testing.T) {
	trip := testutil.Trip()

	assert.NoError(t, validateTripDate(trip)("2025-12-17"))
	assert.Error(t, validateTripDate(trip)("2026-01-02"))
	assert.Error(t, validateTripDate(trip)("soon"))

	assert.NoError(t, validateOptionalTime(""))
	assert.NoError(t, validateOptionalTime("07:45"))
	assert.Error(t, validateOptionalTime("7pm"))

	assert.NoError(t, validateOptionalBudget(""))
	assert.NoError(t, validateOptionalBudget("12.30"))
	assert.Error(t, validateOptionalBudget("-1"))
	assert.Error(t, validateOptionalBudget("abc"))

	assert.Error(t, validateRequired("  "))
}

func TestWizardPlan_Builds(t *testing.T) {
	f := planFields{Category: "Picnic"}
	form := wizardPlan(&f, domain.DefaultCategories(), testutil.Trip())
	assert.NotNil(t, form)
}

func TestPlansImport(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plans:
  - title: Flight
    date: "2025-12-17"
    time: "06:10"
    category: Travel
  - title: Dinner
    date: "2025-12-17"
    budget: 60
`), 0o644))

	out, err := executeCmd(t, app, "plans", "import", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "2 plan(s) would be added")
	assert.Empty(t, listPlans(t, app))

	out, err = executeCmd(t, app, "plans", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 plan(s)")

	plans := listPlans(t, app)
	require.Len(t, plans, 2)
	assert.Equal(t, "Flight", plans[0].Title)
	assert.Equal(t, "19:00", plans[1].Time.String())
}

func TestPlansImport_RoundTripsListOutput(t *testing.T) {
	src := testApp(t)
	seedPlans(t, src,
		testutil.NewTestPlan("Dinner", "2025-12-22", testutil.WithBudget("45.5"), testutil.WithNotes("window table")),
		testutil.NewTestPlan("Museum", "2025-12-18", testutil.WithCategory(domain.CategoryActivity)),
	)
	out, err := executeCmd(t, src, "plans", "list", "-o", "json")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	dst := testApp(t)
	_, err = executeCmd(t, dst, "plans", "import", path)
	require.NoError(t, err)

	plans := listPlans(t, dst)
	require.Len(t, plans, 2)
	assert.Equal(t, "Museum", plans[0].Title)
	assert.Equal(t, "Dinner", plans[1].Title)
	assert.Equal(t, "45.5", plans[1].Budget.Decimal.String())
	assert.Equal(t, "window table", plans[1].Notes)
}

func TestPlansImport_RejectsWholeFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "plans.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"Ok","date":"2025-12-20"},{"title":"","date":"2027-01-01"}]`), 0o644))

	_, err := executeCmd(t, app, "plans", "import", path)
	assert.ErrorContains(t, err, "2 problem(s)")
	assert.ErrorContains(t, err, "plans[1].title is required")
	assert.Empty(t, listPlans(t, app))
}
