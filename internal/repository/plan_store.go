package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/sheet"
)

// Provisioned describes the worksheet plans are stored in.
type Provisioned struct {
	BookID       string
	BookTitle    string
	Table        string
	Columns      []string
	CreatedBook  bool
	CreatedTable bool
	WroteHeader  bool
}

type resolved struct {
	table  sheet.Table
	header header
	info   Provisioned
}

// SheetPlanRepo implements PlanRepo on top of a sheet.Client. The resolved
// worksheet is reused across calls; rows are read fresh every time.
type SheetPlanRepo struct {
	client    sheet.Client
	ref       sheet.BookRef
	tableName string
	trip      domain.TripRange

	mu  sync.Mutex
	res *resolved
}

// NewSheetPlanRepo creates a repo for the named worksheet of the book ref
// points at. Plans dated outside trip fail to load.
func NewSheetPlanRepo(client sheet.Client, ref sheet.BookRef, tableName string, trip domain.TripRange) *SheetPlanRepo {
	return &SheetPlanRepo{client: client, ref: ref, tableName: tableName, trip: trip}
}

func (r *SheetPlanRepo) Provision(ctx context.Context) (*Provisioned, error) {
	res, err := r.resolve(ctx)
	if err != nil {
		return nil, err
	}
	info := res.info
	return &info, nil
}

func (r *SheetPlanRepo) resolve(ctx context.Context) (*resolved, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.res != nil {
		return r.res, nil
	}

	var info Provisioned
	book, err := r.client.OpenBook(ctx, r.ref)
	switch {
	case errors.Is(err, sheet.ErrNotFound) && r.ref.ID == "":
		book, err = r.client.CreateBook(ctx, r.ref.Title)
		if err != nil {
			return nil, provisionErr(fmt.Sprintf("creating spreadsheet %q", r.ref.Title), err)
		}
		info.CreatedBook = true
	case errors.Is(err, sheet.ErrNotFound):
		return nil, fmt.Errorf("%w: spreadsheet %s not found or not shared with the service account", ErrConnection, r.ref.ID)
	case err != nil:
		return nil, provisionErr(fmt.Sprintf("opening spreadsheet %s", r.ref), err)
	}
	info.BookID = book.ID()
	info.BookTitle = book.Title()

	table, err := book.Table(ctx, r.tableName)
	if errors.Is(err, sheet.ErrNotFound) {
		table, err = book.AddTable(ctx, r.tableName)
		if err != nil {
			return nil, provisionErr(fmt.Sprintf("adding worksheet %q", r.tableName), err)
		}
		info.CreatedTable = true
	} else if err != nil {
		return nil, provisionErr(fmt.Sprintf("opening worksheet %q", r.tableName), err)
	}
	info.Table = table.Name()

	rows, err := table.Rows(ctx)
	if err != nil {
		return nil, provisionErr(fmt.Sprintf("reading worksheet %q", r.tableName), err)
	}
	var h header
	if len(rows) > 0 {
		h = headerFromRow(rows[0])
	}
	if h.empty() {
		if len(rows) == 0 {
			err = table.Append(ctx, headerRow(Columns))
		} else {
			err = table.Update(ctx, sheet.HeaderRow, headerRow(Columns))
		}
		if err != nil {
			return nil, provisionErr("writing header row", err)
		}
		h = newHeader(Columns)
		info.WroteHeader = true
	}
	info.Columns = h.names

	r.res = &resolved{table: table, header: h, info: info}
	return r.res, nil
}

// provisionErr maps quota failures to ErrProvision and everything else to
// ErrConnection.
func provisionErr(op string, err error) error {
	if errors.Is(err, sheet.ErrQuota) {
		return fmt.Errorf("%w: %s: %w", ErrProvision, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrConnection, op, err)
}

// LoadAll returns every plan in row order. One bad row fails the load.
func (r *SheetPlanRepo) LoadAll(ctx context.Context) ([]*domain.Plan, error) {
	res, err := r.resolve(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := res.table.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if len(rows) == 0 {
		return []*domain.Plan{}, nil
	}
	h := headerFromRow(rows[0])
	plans := make([]*domain.Plan, 0, len(rows)-1)
	for i, row := range rows[1:] {
		p, err := r.decode(h, row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrLoad, i+sheet.HeaderRow+1, err)
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func (r *SheetPlanRepo) decode(h header, row []any) (*domain.Plan, error) {
	if blankRow(row) {
		return nil, errors.New("empty row")
	}
	p := &domain.Plan{
		ID:       cellString(h.get(row, ColID)),
		Title:    cellString(h.get(row, ColTitle)),
		Location: cellString(h.get(row, ColLocation)),
		Category: domain.Category(cellString(h.get(row, ColCategory))),
		Notes:    cellString(h.get(row, ColNotes)),
		Priority: domain.Priority(cellString(h.get(row, ColPriority))),
	}
	var err error
	if p.Date, err = cellDate(h.get(row, ColDate)); err != nil {
		return nil, err
	}
	if !r.trip.Contains(p.Date) {
		return nil, fmt.Errorf("%w: %s", domain.ErrDateOutOfRange, p.Date.Format(domain.DateLayout))
	}
	if p.Time, err = cellTime(h.get(row, ColTime)); err != nil {
		return nil, err
	}
	if p.Budget, err = cellBudget(h.get(row, ColBudget)); err != nil {
		return nil, err
	}
	if p.Created, err = cellCreated(h.get(row, ColCreated)); err != nil {
		return nil, err
	}
	return p, nil
}

// encode lays p out under h. Columns h does not name are dropped; columns
// this package does not know are written empty.
func encode(h header, p *domain.Plan) []any {
	values := map[string]any{
		ColID:       p.ID,
		ColTitle:    p.Title,
		ColDate:     p.Date.Format(domain.DateLayout),
		ColTime:     p.Time,
		ColLocation: p.Location,
		ColCategory: string(p.Category),
		ColBudget:   p.Budget,
		ColNotes:    p.Notes,
		ColPriority: string(p.Priority),
		ColCreated:  p.Created,
	}
	row := make([]any, len(h.names))
	for name, v := range values {
		if i, ok := h.col(name); ok {
			row[i] = v
		}
	}
	return CoerceRow(row)
}

func (r *SheetPlanRepo) Append(ctx context.Context, p *domain.Plan) error {
	res, err := r.resolve(ctx)
	if err != nil {
		return err
	}
	if err := res.table.Append(ctx, encode(res.header, p)); err != nil {
		return fmt.Errorf("%w: appending %q: %w", ErrWrite, p.Title, err)
	}
	return nil
}

// storeRow converts a zero-based display index to a 1-based store row.
func storeRow(index int) int { return index + sheet.HeaderRow + 1 }

// checkIndex reads the table so an out-of-range index fails instead of
// writing past the last row.
func (r *SheetPlanRepo) checkIndex(ctx context.Context, res *resolved, index int) error {
	rows, err := res.table.Rows(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if index < 0 || storeRow(index) > len(rows) {
		return fmt.Errorf("%w: plan index %d out of range (have %d)", ErrWrite, index, max(len(rows)-1, 0))
	}
	return nil
}

// UpdateAt overwrites every column of the plan at a zero-based display index.
func (r *SheetPlanRepo) UpdateAt(ctx context.Context, index int, p *domain.Plan) error {
	res, err := r.resolve(ctx)
	if err != nil {
		return err
	}
	if err := r.checkIndex(ctx, res, index); err != nil {
		return err
	}
	if err := res.table.Update(ctx, storeRow(index), encode(res.header, p)); err != nil {
		return fmt.Errorf("%w: updating row %d: %w", ErrWrite, storeRow(index), err)
	}
	return nil
}

// DeleteAt removes the plan at a zero-based display index. Later plans
// move up by one.
func (r *SheetPlanRepo) DeleteAt(ctx context.Context, index int) error {
	res, err := r.resolve(ctx)
	if err != nil {
		return err
	}
	if err := r.checkIndex(ctx, res, index); err != nil {
		return err
	}
	if err := res.table.Delete(ctx, storeRow(index)); err != nil {
		return fmt.Errorf("%w: deleting row %d: %w", ErrWrite, storeRow(index), err)
	}
	return nil
}

// locate finds the store row holding id.
func (r *SheetPlanRepo) locate(ctx context.Context, res *resolved, id string) (int, []any, header, error) {
	rows, err := res.table.Rows(ctx)
	if err != nil {
		return 0, nil, header{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if len(rows) == 0 || id == "" {
		return 0, nil, header{}, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	h := headerFromRow(rows[0])
	for i, row := range rows[1:] {
		if cellString(h.get(row, ColID)) == id {
			return storeRow(i), row, h, nil
		}
	}
	return 0, nil, header{}, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
}

func (r *SheetPlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	res, err := r.resolve(ctx)
	if err != nil {
		return nil, err
	}
	_, row, h, err := r.locate(ctx, res, id)
	if err != nil {
		return nil, err
	}
	p, err := r.decode(h, row)
	if err != nil {
		return nil, fmt.Errorf("%w: plan %s: %w", ErrLoad, id, err)
	}
	return p, nil
}

// UpdateByID overwrites the row whose ID matches p.ID.
func (r *SheetPlanRepo) UpdateByID(ctx context.Context, p *domain.Plan) error {
	res, err := r.resolve(ctx)
	if err != nil {
		return err
	}
	row, _, _, err := r.locate(ctx, res, p.ID)
	if err != nil {
		return err
	}
	if err := res.table.Update(ctx, row, encode(res.header, p)); err != nil {
		return fmt.Errorf("%w: updating %s: %w", ErrWrite, p.ID, err)
	}
	return nil
}

func (r *SheetPlanRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.resolve(ctx)
	if err != nil {
		return err
	}
	row, _, _, err := r.locate(ctx, res, id)
	if err != nil {
		return err
	}
	if err := res.table.Delete(ctx, row); err != nil {
		return fmt.Errorf("%w: deleting %s: %w", ErrWrite, id, err)
	}
	return nil
}
