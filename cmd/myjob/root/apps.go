package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

func newAppsCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List tracked applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			deps, cleanup, err := openDeps(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := deps.requireAuth(ctx); err != nil {
				return err
			}

			apps, err := deps.client.ListApplications(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBriefcase, "Applications"))
			shown := 0
			for _, app := range apps {
				if status != "" && !strings.EqualFold(app.Status, status) {
					continue
				}
				shown++
				date := app.AppliedDate
				if len(date) > 10 {
					date = date[:10]
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %-10s %s at %s %s\n",
					ui.StatusText(app.Status), app.Role, ui.Key.Render(app.Company), ui.Muted.Render(date))
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No applications yet."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (Applied|Interview|Offer|Rejected|Ghosted)")

	return cmd
}
