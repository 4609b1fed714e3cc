package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/gamify"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

func newCaptureCmd() *cobra.Command {
	var yes bool
	var pdfPath string

	cmd := &cobra.Command{
		Use:   "capture [url]",
		Short: "Capture a job posting (URL scrape or PDF) into the tracker",
		Long: `Capture extracts a job posting's fields through the backend, shows them for
review, and saves the posting as a new Applied application. Every capture is
also kept in a local history (newest 20).`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one url")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if len(args) == 0 && pdfPath == "" {
				return errors.New("a url or --pdf is required")
			}
			deps, cleanup, err := openDeps(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := deps.requireAuth(ctx); err != nil {
				return err
			}

			var scraped *api.ScrapedJob
			if pdfPath != "" {
				content, err := os.ReadFile(pdfPath)
				if err != nil {
					return fmt.Errorf("read pdf: %w", err)
				}
				scraped, err = deps.client.ParsePDF(ctx, filepath.Base(pdfPath), content)
				if err != nil {
					return err
				}
			} else {
				scraped, err = deps.client.ScrapeJob(ctx, args[0])
				if err != nil {
					return err
				}
				if scraped.URL == "" {
					scraped.URL = args[0]
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconLink, "Captured posting"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Company", scraped.Company))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Role", scraped.Role))
			if scraped.Location != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Location", scraped.Location))
			}
			if scraped.SalaryRange != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Salary", scraped.SalaryRange))
			}
			if len(scraped.TechStack) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Tech", strings.Join(scraped.TechStack, ", ")))
			}

			if !yes {
				answer, err := promptLine(cmd, "Save to tracker? [Y/n] ")
				if err != nil {
					return err
				}
				if answer != "" && !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Discarded."))
					return nil
				}
			}

			input := api.ApplicationInput{
				Company:     scraped.Company,
				Role:        scraped.Role,
				Status:      api.StatusApplied,
				Location:    scraped.Location,
				SalaryRange: scraped.SalaryRange,
				URL:         scraped.URL,
				Notes:       scraped.Notes,
				AppliedDate: time.Now().Format("2006-01-02"),
				TechStack:   scraped.TechStack,
			}
			app, err := deps.client.CreateApplication(ctx, input)
			if err != nil {
				return err
			}
			if err := deps.history.Add(ctx, app.Company, app.Role, app.URL); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s at %s\n",
				ui.Good.Render(ui.IconDone+" Saved"), app.Role, ui.Key.Render(app.Company))
			if earned, err := deps.session.RefreshUser(ctx); err == nil {
				for _, code := range earned {
					meta := gamifyBadgeLine(code)
					fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(meta))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Save without confirmation")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Capture from a job-posting PDF instead of a url")

	return cmd
}

func gamifyBadgeLine(code string) string {
	meta := gamify.BadgeMeta(code)
	return fmt.Sprintf("%s Badge earned: %s", meta.Icon, meta.Label)
}
