package cli

import (
	"context"
	"os"

	"github.com/alexanderramin/itinerary/internal/config"
	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/logging"
	"github.com/alexanderramin/itinerary/internal/repository"
	"github.com/alexanderramin/itinerary/internal/service"
)

// bootstrap loads configuration and connects to the store. A failed
// connection is recorded in Unavailable rather than returned so serve can
// still explain how to fix it.
func (a *App) bootstrap(ctx context.Context, configPath string) error {
	if len(a.Categories.Entries()) == 0 {
		a.Categories = domain.DefaultCategories()
	}
	if a.Plans != nil || a.Unavailable != nil {
		if a.Config == nil {
			cfg := config.DefaultConfig()
			a.Config = &cfg
		}
		if a.Logger == nil {
			a.Logger = logging.New(os.Stderr, logging.ParseLevel(a.Config.Log.Level), a.Config.Log.Format)
		}
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a.Config = &cfg
	a.Logger = logging.Setup(os.Stderr, logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	trip, err := cfg.TripRange()
	if err != nil {
		return err
	}

	conn, err := repository.Connect(ctx, cfg.ConnectConfig())
	if err != nil {
		a.Logger.Warn("store unavailable", "backend", cfg.Store.Backend, "error", err)
		a.Unavailable = err
		return nil
	}
	a.conn = conn
	a.Account = conn.Account

	repo := repository.NewSheetPlanRepo(conn.Client, cfg.BookRef(), cfg.Store.Worksheet, trip)
	a.Plans = service.NewPlanService(repo, trip, service.NewSlogUseCaseObserver(a.Logger))
	a.Logger.Debug("store connected", "backend", cfg.Store.Backend, "book", cfg.BookRef().String())
	return nil
}

// Close releases the store connection.
func (a *App) Close() error {
	if a.conn == nil {
		return nil
	}
	err := a.conn.Close()
	a.conn = nil
	return err
}
