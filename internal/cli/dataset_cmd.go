package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/cli/formatter"
)

func newDatasetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect and validate the checklist and activity dataset",
	}
	cmd.AddCommand(newDatasetValidateCmd(app))
	return cmd
}

func newDatasetValidateCmd(app *App) *cobra.Command {
	var (
		dir   string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a dataset directory (default: the active dataset)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if dir == "" {
				dir = app.DatasetDir
			}
			source := dir
			if source == "" {
				source = "embedded"
			}

			ds, err := checklist.Load(ctx, dir)
			if err != nil {
				fmt.Fprint(out, formatter.FormatDatasetError(err))
				if !watch {
					return fmt.Errorf("dataset %s is invalid", source)
				}
			} else {
				fmt.Fprint(out, formatter.FormatDatasetOK(source, ds))
			}
			if !watch {
				return nil
			}
			if dir == "" {
				return fmt.Errorf("--watch needs a dataset directory (--dir)")
			}

			w, err := checklist.NewWatcher(dir, checklist.DefaultDebounce, func(ds *checklist.Dataset, err error) {
				if err != nil {
					fmt.Fprint(out, formatter.FormatDatasetError(err))
					return
				}
				fmt.Fprint(out, formatter.FormatDatasetOK(source, ds))
			}, app.logger())
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := w.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.Dim("Sleduji změny v "+dir+" (Ctrl+C pro ukončení)"))
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Dataset directory with checklist and activities files")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-validate whenever a dataset file changes")
	return cmd
}
