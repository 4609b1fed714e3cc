package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

const Version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "myjob",
	Short:         "MyJob — AI-assisted job application tracker",
	Long:          "MyJob is a CLI/TUI client for the MyJob career copilot backend: track applications, capture postings, score resumes, and draft follow-ups.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.myjob.yaml)")

	rootCmd.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newUICmd(),
		newAppsCmd(),
		newCaptureCmd(),
		newHistoryCmd(),
		newResumeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
