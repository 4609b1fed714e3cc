package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

func newLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			deps, cleanup, err := openDeps(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			deps.session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Logged out."))
			return nil
		},
	}

	return cmd
}
