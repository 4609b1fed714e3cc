package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/gamify"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show account, level, XP and badges",
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
			user := deps.session.User()

			level := gamify.LevelForXP(user.XP)
			have, need := gamify.Progress(user.XP)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBriefcase, "MyJob Status"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Account", fmt.Sprintf("%s <%s>", user.Name, user.Email)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", level))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("XP", fmt.Sprintf("%d %s %d/%d to next level", user.XP, ui.ProgressBar(have, need, 20), have, need)))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconTrophy+" Badges"))
			if len(user.Badges) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("- none yet (log your first application!)"))
			}
			for _, code := range user.Badges {
				meta := gamify.BadgeMeta(code)
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", meta.Icon, meta.Label, ui.Muted.Render(meta.Desc))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			analytics, err := deps.client.GetAnalytics(ctx)
			if err != nil {
				// Stats are a bonus on this screen; the card above already
				// rendered from the session.
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" analytics unavailable: "+err.Error()))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconChart+" Pipeline"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Applications", analytics.TotalApplications))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Response rate", fmt.Sprintf("%.1f%%", analytics.ResponseRate)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Interview rate", fmt.Sprintf("%.1f%%", analytics.InterviewRate)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Offer rate", fmt.Sprintf("%.1f%%", analytics.OfferRate)))
			if analytics.FollowupPending > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d application(s) waiting on a follow-up\n", ui.Warn.Render(ui.IconMail), analytics.FollowupPending)
			}
			return nil
		},
	}

	return cmd
}
