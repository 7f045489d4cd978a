package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newMapCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "map",
		Short: "Open the full-screen checklist and plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := currentWithBand(ctx, app); err != nil {
				return err
			}
			p := tea.NewProgram(newAppModel(app),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}
