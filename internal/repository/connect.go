package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/itinerary/internal/db"
	"github.com/alexanderramin/itinerary/internal/sheet"
	"google.golang.org/api/option"
)

type Backend string

const (
	BackendGoogle Backend = "google"
	BackendXLSX   Backend = "xlsx"
	BackendSQLite Backend = "sqlite"
)

var Backends = []Backend{BackendGoogle, BackendXLSX, BackendSQLite}

type ConnectConfig struct {
	Backend Backend
	// Credentials is a service-account JSON key (google).
	Credentials []byte
	// WorkbookDir holds one .xlsx file per book (xlsx).
	WorkbookDir string
	// SQLitePath is the database file (sqlite).
	SQLitePath string
	// GoogleOptions are passed to the API clients, e.g. a test endpoint.
	GoogleOptions []option.ClientOption
}

// Connection is an open sheet client plus whatever it holds open.
type Connection struct {
	Client sheet.Client
	// Account is the identity books must be shared with, when the backend
	// has one.
	Account string
	closers []func() error
}

func (c *Connection) Close() error {
	var first error
	for _, fn := range c.closers {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Connect builds the client for cfg.Backend. Any failure is ErrConnection.
func Connect(ctx context.Context, cfg ConnectConfig) (*Connection, error) {
	switch cfg.Backend {
	case BackendGoogle:
		c, err := sheet.NewGoogleClient(ctx, cfg.Credentials, cfg.GoogleOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConnection, err)
		}
		return &Connection{Client: c, Account: c.Email()}, nil

	case BackendXLSX:
		c, err := sheet.NewWorkbookClient(cfg.WorkbookDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConnection, err)
		}
		return &Connection{Client: c, closers: []func() error{c.Close}}, nil

	case BackendSQLite:
		database, err := db.OpenDB(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConnection, err)
		}
		return NewSQLiteConnection(database), nil

	default:
		return nil, fmt.Errorf("%w: unknown store backend %q (want google, xlsx or sqlite)", ErrConnection, cfg.Backend)
	}
}

// NewSQLiteConnection wraps an already open database. Closing the
// connection closes the database.
func NewSQLiteConnection(database *sql.DB) *Connection {
	return &Connection{
		Client:  sheet.NewSQLiteClient(database),
		closers: []func() error{database.Close},
	}
}
