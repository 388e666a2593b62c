package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/itinerary/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the itinerary web app",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Config.Web.Addr
			}
			if app.Logger.Enabled(cmd.Context(), slog.LevelDebug) {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}

			srv, err := app.newWebServer()
			if err != nil {
				return err
			}
			if app.Plans != nil {
				// Resolve the worksheet up front so setup problems show in the
				// log. Failures are retried on the first request.
				if info, err := app.Plans.Provision(cmd.Context()); err != nil {
					app.Logger.Warn("worksheet not ready", "error", err)
				} else {
					app.Logger.Info("worksheet ready", "book", info.BookTitle, "table", info.Table)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errc := make(chan error, 1)
			go func() { errc <- httpSrv.ListenAndServe() }()

			app.Logger.Info("listening", "addr", addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s\n", app.Config.Trip.Title, addr)

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			app.Logger.Info("shutting down")
			return httpSrv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")

	return cmd
}

func (a *App) newWebServer() (*web.Server, error) {
	loc, err := a.Config.Location()
	if err != nil {
		return nil, err
	}
	return web.NewServer(a.Plans, web.Config{
		Title:       a.Config.Trip.Title,
		Subtitle:    a.Config.Trip.Subtitle,
		Categories:  a.Categories,
		User:        a.Config.Web.User,
		Password:    a.Config.Web.Password,
		CORSOrigins: a.Config.Web.CORSOrigins,
		Location:    loc,
		Account:     a.Account,
		Unavailable: a.Unavailable,
	}, a.Logger)
}
