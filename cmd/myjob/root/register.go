package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

func newRegisterCmd() *cobra.Command {
	var name string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			deps, cleanup, err := openDeps(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if name == "" {
				name, err = promptLine(cmd, "Name: ")
				if err != nil {
					return err
				}
			}
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
			if name == "" || email == "" || password == "" {
				return errors.New("name, email and password are required")
			}

			user, err := deps.session.Register(ctx, name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSparkle+" Welcome, "+user.Name+"!"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted if omitted)")

	return cmd
}
