package cli

import (
	"fmt"
	"log/slog"

	"github.com/alexanderramin/itinerary/internal/config"
	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/repository"
	"github.com/alexanderramin/itinerary/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to everything the commands use. Fields left nil are
// wired from the configuration before a command runs.
type App struct {
	Plans      service.PlanService
	Categories domain.CategorySet
	Config     *config.Config
	Logger     *slog.Logger

	// Unavailable is the store connection error. serve still starts and
	// shows setup guidance; the other commands fail with it.
	Unavailable error
	// Account is the service account address books must be shared with.
	Account string

	// IsInteractive reports whether stdin is a terminal. Forms are only
	// offered when it returns true.
	IsInteractive func() bool

	conn *repository.Connection
}

// NewRootCmd creates the top-level "itinerary" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "itinerary",
		Short:         "Trip itinerary planner backed by a spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.bootstrap(cmd.Context(), configPath)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/itinerary/config.toml)")

	root.AddCommand(
		newServeCmd(app),
		newProvisionCmd(app),
		newPlansCmd(app),
	)

	return root
}

// plans returns the plan service, or the connection error when the store
// could not be reached.
func (a *App) plans() (service.PlanService, error) {
	if a.Plans == nil {
		if a.Unavailable != nil {
			return nil, a.Unavailable
		}
		return nil, fmt.Errorf("%w: no store configured", repository.ErrConnection)
	}
	return a.Plans, nil
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
