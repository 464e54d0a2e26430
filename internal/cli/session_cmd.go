package cli

import (
	"context"
	"fmt"

	"github.com/PicoEvanZhu/workdeck/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var organization, pat string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate the relay session with an organization and PAT",
		RunE: func(cmd *cobra.Command, args []string) error {
			if organization == "" {
				return fmt.Errorf("--org is required")
			}
			if pat == "" {
				if !app.IsInteractive() {
					return fmt.Errorf("--pat is required when stdin is not a terminal")
				}
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("Personal Access Token").
							EchoMode(huh.EchoModePassword).
							Value(&pat).
							Validate(validateRequired),
					),
				).WithTheme(workdeckHuhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
			}

			if err := app.Directory.Login(context.Background(), organization, pat); err != nil {
				return err
			}
			fmt.Printf("Logged in to %s\n", formatter.Bold(organization))
			return nil
		},
	}

	cmd.Flags().StringVar(&organization, "org", "", "Azure DevOps organization")
	cmd.Flags().StringVar(&pat, "pat", "", "Personal access token (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the relay session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Directory.Logout(context.Background()); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newSessionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the current relay session",
		RunE: func(cmd *cobra.Command, args []string) error {
			authenticated, organization, err := app.Directory.Session(context.Background())
			if err != nil {
				return err
			}
			if !authenticated {
				fmt.Println(formatter.Dim("Not logged in."))
				return nil
			}
			fmt.Printf("Logged in to %s\n", formatter.Bold(organization))
			return nil
		},
	}
}
