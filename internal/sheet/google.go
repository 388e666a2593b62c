package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleScopes are the OAuth scopes the service account needs.
var GoogleScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// GoogleClient talks to Google Sheets with a service account.
type GoogleClient struct {
	sheets *sheets.Service
	drive  *drive.Service
	email  string
}

// NewGoogleClient parses a service-account JSON key and builds API
// clients. A malformed key is reported as ErrAuth; a key the server later
// rejects surfaces as ErrAuth from the first call that uses it.
func NewGoogleClient(ctx context.Context, credentialsJSON []byte, opts ...option.ClientOption) (*GoogleClient, error) {
	account, err := ParseServiceAccount(credentialsJSON)
	if err != nil {
		return nil, err
	}
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, GoogleScopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing service account key: %v", ErrAuth, err)
	}
	opts = append([]option.ClientOption{option.WithCredentials(creds)}, opts...)

	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating drive client: %w", err)
	}
	return &GoogleClient{sheets: sheetsSvc, drive: driveSvc, email: account.ClientEmail}, nil
}

// Email is the service account address sheets must be shared with.
func (c *GoogleClient) Email() string { return c.email }

func (c *GoogleClient) OpenBook(ctx context.Context, ref BookRef) (Book, error) {
	id := ref.ID
	if id == "" {
		q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
			strings.ReplaceAll(ref.Title, "'", `\'`), spreadsheetMimeType)
		list, err := c.drive.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
		if err != nil {
			return nil, classify(fmt.Sprintf("searching for %q", ref.Title), err)
		}
		if len(list.Files) == 0 {
			return nil, fmt.Errorf("spreadsheet %q: %w", ref.Title, ErrNotFound)
		}
		id = list.Files[0].Id
	}
	return c.load(ctx, id)
}

func (c *GoogleClient) load(ctx context.Context, id string) (*googleBook, error) {
	ss, err := c.sheets.Spreadsheets.Get(id).Fields("spreadsheetId", "properties.title", "sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, classify(fmt.Sprintf("opening spreadsheet %s", id), err)
	}
	b := &googleBook{c: c, id: ss.SpreadsheetId, tabs: make(map[string]int64)}
	if ss.Properties != nil {
		b.title = ss.Properties.Title
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			b.tabs[s.Properties.Title] = s.Properties.SheetId
		}
	}
	return b, nil
}

func (c *GoogleClient) CreateBook(ctx context.Context, title string) (Book, error) {
	ss, err := c.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return nil, classify(fmt.Sprintf("creating spreadsheet %q", title), err)
	}
	return c.load(ctx, ss.SpreadsheetId)
}

type googleBook struct {
	c     *GoogleClient
	id    string
	title string
	tabs  map[string]int64
}

func (b *googleBook) ID() string    { return b.id }
func (b *googleBook) Title() string { return b.title }

func (b *googleBook) Table(ctx context.Context, name string) (Table, error) {
	sheetID, ok := b.tabs[name]
	if !ok {
		return nil, fmt.Errorf("worksheet %q: %w", name, ErrNotFound)
	}
	return &googleTable{b: b, name: name, sheetID: sheetID}, nil
}

func (b *googleBook) AddTable(ctx context.Context, name string) (Table, error) {
	resp, err := b.c.sheets.Spreadsheets.BatchUpdate(b.id, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, classify(fmt.Sprintf("adding worksheet %q", name), err)
	}
	var sheetID int64
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	}
	b.tabs[name] = sheetID
	return &googleTable{b: b, name: name, sheetID: sheetID}, nil
}

type googleTable struct {
	b       *googleBook
	name    string
	sheetID int64
}

func (t *googleTable) Name() string { return t.name }

func (t *googleTable) a1(suffix string) string {
	return "'" + strings.ReplaceAll(t.name, "'", "''") + "'" + suffix
}

func (t *googleTable) Rows(ctx context.Context) ([][]any, error) {
	vr, err := t.b.c.sheets.Spreadsheets.Values.Get(t.b.id, t.a1("")).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, classify(fmt.Sprintf("reading worksheet %q", t.name), err)
	}
	out := make([][]any, len(vr.Values))
	for i, r := range vr.Values {
		out[i] = r
	}
	return out, nil
}

func (t *googleTable) Append(ctx context.Context, values []any) error {
	_, err := t.b.c.sheets.Spreadsheets.Values.Append(t.b.id, t.a1("!A1"), &sheets.ValueRange{
		Values: [][]interface{}{values},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return classify("appending row", err)
	}
	return nil
}

func (t *googleTable) Update(ctx context.Context, row int, values []any) error {
	_, err := t.b.c.sheets.Spreadsheets.Values.Update(t.b.id, t.a1(fmt.Sprintf("!A%d", row)), &sheets.ValueRange{
		Values: [][]interface{}{values},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return classify(fmt.Sprintf("updating row %d", row), err)
	}
	return nil
}

func (t *googleTable) Delete(ctx context.Context, row int) error {
	_, err := t.b.c.sheets.Spreadsheets.BatchUpdate(t.b.id, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    t.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return classify(fmt.Sprintf("deleting row %d", row), err)
	}
	return nil
}

var quotaReasons = map[string]bool{
	"storageQuotaExceeded":  true,
	"quotaExceeded":         true,
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"dailyLimitExceeded":    true,
}

// ServiceAccount is the subset of a service-account key we check before
// handing it to the OAuth library.
type ServiceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// ParseServiceAccount rejects empty, non-JSON or incomplete keys with ErrAuth.
func ParseServiceAccount(data []byte) (ServiceAccount, error) {
	var sa ServiceAccount
	if len(strings.TrimSpace(string(data))) == 0 {
		return sa, fmt.Errorf("%w: no service account key configured", ErrAuth)
	}
	if err := json.Unmarshal(data, &sa); err != nil {
		return sa, fmt.Errorf("%w: service account key is not valid JSON: %v", ErrAuth, err)
	}
	var missing []string
	if sa.Type != "service_account" {
		missing = append(missing, `type "service_account"`)
	}
	if sa.ClientEmail == "" {
		missing = append(missing, "client_email")
	}
	if sa.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if len(missing) > 0 {
		return sa, fmt.Errorf("%w: service account key lacks %s", ErrAuth, strings.Join(missing, ", "))
	}
	return sa, nil
}

// classify maps Google API failures onto the package sentinels.
func classify(op string, err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return fmt.Errorf("%s: %w: %v", op, ErrAuth, err)
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch {
	case gerr.Code == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w: %v", op, ErrAuth, err)
	case gerr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w: %v", op, ErrQuota, err)
	case gerr.Code == http.StatusNotFound:
		return fmt.Errorf("%s: %w: %v", op, ErrNotFound, err)
	case gerr.Code == http.StatusForbidden:
		for _, item := range gerr.Errors {
			if quotaReasons[item.Reason] {
				return fmt.Errorf("%s: %w: %v", op, ErrQuota, err)
			}
		}
		if strings.Contains(strings.ToLower(gerr.Message), "quota") {
			return fmt.Errorf("%s: %w: %v", op, ErrQuota, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
