package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/store"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: fmt.Sprintf("Show the last %d captured postings", store.HistoryCap),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			deps, cleanup, err := openDeps(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			jobs, err := deps.history.List(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconLink, "Capture history"))
			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Empty. Try: myjob capture <url>"))
				return nil
			}
			for _, j := range jobs {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s at %s %s\n",
					ui.Muted.Render(j.SavedAt.Format("2006-01-02")), j.Role, ui.Key.Render(j.Company), ui.Dim.Render(j.URL))
			}
			return nil
		},
	}

	return cmd
}
