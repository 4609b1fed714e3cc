package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/tui"
)

func newUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			deps, cleanup, err := openDeps(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(ctx, tui.Deps{
				Client:  deps.client,
				Session: deps.session,
				History: deps.history,
			}, cmd.OutOrStdout())
		},
	}

	return cmd
}
