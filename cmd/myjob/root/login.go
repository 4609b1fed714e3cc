package root

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

func newLoginCmd() *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			deps, cleanup, err := openDeps(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if email == "" {
				email, err = promptLine(cmd, "Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = promptLine(cmd, "Password: ")
				if err != nil {
					return err
				}
			}
			if email == "" || password == "" {
				return errors.New("email and password are required")
			}

			user, err := deps.session.Login(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Logged in as "+user.Name))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Level %d · %d XP", user.Level, user.XP)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted if omitted)")

	return cmd
}

func promptLine(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
