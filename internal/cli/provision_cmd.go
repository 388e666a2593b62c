package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/itinerary/internal/cli/formatter"
	"github.com/alexanderramin/itinerary/internal/repository"
	"github.com/spf13/cobra"
)

func newProvisionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Find or create the spreadsheet and worksheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.plans()
			if err != nil {
				return err
			}
			info, err := plans.Provision(cmd.Context())
			if err != nil {
				if errors.Is(err, repository.ErrProvision) && app.Account != "" {
					return fmt.Errorf("%w\nshare an existing spreadsheet with %s and set store.spreadsheet_id", err, app.Account)
				}
				return err
			}

			status := func(created bool) string {
				if created {
					return formatter.StyleGreen.Render("created")
				}
				return formatter.Dim("existing")
			}
			var b strings.Builder
			b.WriteString(fmt.Sprintf("%s  %s (%s)\n", formatter.Dim("BOOK   "), formatter.Bold(info.BookTitle), status(info.CreatedBook)))
			b.WriteString(fmt.Sprintf("%s  %s\n", formatter.Dim("ID     "), info.BookID))
			b.WriteString(fmt.Sprintf("%s  %s (%s)\n", formatter.Dim("TABLE  "), formatter.Bold(info.Table), status(info.CreatedTable)))
			header := strings.Join(info.Columns, ", ")
			if info.WroteHeader {
				header += " " + formatter.StyleGreen.Render("(written)")
			}
			b.WriteString(fmt.Sprintf("%s  %s", formatter.Dim("COLUMNS"), header))
			if app.Account != "" {
				b.WriteString(fmt.Sprintf("\n%s  %s", formatter.Dim("SHARE  "), app.Account))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Store", b.String()))
			return nil
		},
	}
}
