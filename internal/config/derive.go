package config

import (
	"fmt"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/repository"
	"github.com/alexanderramin/itinerary/internal/sheet"
)

// TripRange parses the configured trip dates.
func (c Config) TripRange() (domain.TripRange, error) {
	r, err := domain.ParseTripRange(c.Trip.Start, c.Trip.End)
	if err != nil {
		return domain.TripRange{}, fmt.Errorf("trip dates: %w", err)
	}
	return r, nil
}

// BookRef identifies the spreadsheet plans live in. A spreadsheet ID wins
// over the title.
func (c Config) BookRef() sheet.BookRef {
	return sheet.BookRef{ID: c.Store.SpreadsheetID, Title: c.Store.Spreadsheet}
}

// ConnectConfig selects and configures the store backend.
func (c Config) ConnectConfig() repository.ConnectConfig {
	return repository.ConnectConfig{
		Backend:     repository.Backend(c.Store.Backend),
		Credentials: c.Credentials,
		WorkbookDir: c.Store.WorkbookDir,
		SQLitePath:  c.Store.SQLitePath,
	}
}
