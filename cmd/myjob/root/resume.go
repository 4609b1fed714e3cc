package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

func newResumeCmd() *cobra.Command {
	var jobDesc string
	var jobFile string

	cmd := &cobra.Command{
		Use:   "resume <pdf>",
		Short: "Score a resume PDF against a job description",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("resume pdf path is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if jobDesc == "" && jobFile == "" {
				return errors.New("a job description is required (--job or --job-file)")
			}
			if jobFile != "" {
				data, err := os.ReadFile(jobFile)
				if err != nil {
					return fmt.Errorf("read job description: %w", err)
				}
				jobDesc = string(data)
			}

			deps, cleanup, err := openDeps(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := deps.requireAuth(ctx); err != nil {
				return err
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read resume: %w", err)
			}
			result, err := deps.client.AnalyzeResume(ctx, filepath.Base(args[0]), content, jobDesc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconDoc, "Resume analysis"))
			fmt.Fprintln(out, ui.LabelValue("ATS score", ui.ScoreText(result.ATSScore)+"  "+result.ScoreLabel))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Matching keywords"))
			fmt.Fprintln(out, ui.Good.Render(strings.Join(result.MatchingKeywords, ", ")))
			fmt.Fprintln(out, ui.H2.Render("Missing keywords"))
			fmt.Fprintln(out, ui.Warn.Render(strings.Join(result.MissingKeywords, ", ")))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Strengths"))
			for _, s := range result.Strengths {
				fmt.Fprintln(out, "- "+s)
			}
			fmt.Fprintln(out, ui.H2.Render("Improvements"))
			for _, s := range result.Improvements {
				fmt.Fprintln(out, "- "+s)
			}
			if result.TailoredSummary != "" {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render("Tailored summary"))
				fmt.Fprintln(out, result.TailoredSummary)
			}
			if result.OverallAssessment != "" {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Muted.Render(result.OverallAssessment))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobDesc, "job", "j", "", "Job description text")
	cmd.Flags().StringVar(&jobFile, "job-file", "", "Read the job description from a file")

	return cmd
}
