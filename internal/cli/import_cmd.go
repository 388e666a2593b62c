package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/itinerary/internal/importer"
	"github.com/spf13/cobra"
)

func newPlansImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add plans from a JSON or YAML file",
		Long: `Add every plan in FILE. The file is either a list of plans or a mapping
with a "plans" list; the output of "plans list -o json|yaml" is accepted.
Nothing is written unless every plan is valid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.plans()
			if err != nil {
				return err
			}
			file, err := importer.LoadFile(args[0])
			if err != nil {
				return err
			}
			if errs := importer.Validate(file, plans.Trip()); len(errs) > 0 {
				return fmt.Errorf("%s has %d problem(s):\n%w", args[0], len(errs), errors.Join(errs...))
			}
			batch, err := importer.Convert(file, app.Categories.Default())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "%d plan(s) would be added.\n", len(batch))
				return nil
			}
			for i, p := range batch {
				if err := plans.Create(cmd.Context(), p); err != nil {
					return fmt.Errorf("adding plan %d of %d (%s): %w", i+1, len(batch), p.Label(), err)
				}
				fmt.Fprintf(out, "Added %s [%s]\n", p.Label(), p.DisplayID())
			}
			fmt.Fprintf(out, "Imported %d plan(s).\n", len(batch))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without writing")

	return cmd
}
