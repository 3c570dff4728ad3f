package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/evalio-app/evalio-cli/internal/domain"
	"github.com/evalio-app/evalio-cli/internal/ui"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "sign in to the interview platform",
	Long: `Authenticate against the Evalio backend and store the session locally.

The session token is kept in the local state store and attached automatically
to every subsequent command until you log out.`,
	Example: `  # Sign in (prompts for email and password)
  $ evalio login

  # Sign in with the email on the command line
  $ evalio login -e eva@example.com`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.SilenceUsage = true
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		ui.PrintError("no se pudo iniciar: %v", err)
		return fmt.Errorf("startup failed")
	}
	defer app.Close()

	if loginEmail == "" {
		prompt := &survey.Input{Message: "Email:"}
		if err := survey.AskOne(prompt, &loginEmail, survey.WithValidator(survey.Required)); err != nil {
			return fmt.Errorf("input failed")
		}
	}

	var password string
	prompt := &survey.Password{Message: "Contraseña:"}
	if err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required)); err != nil {
		return fmt.Errorf("input failed")
	}

	user, err := app.Auth.Login(ctx, loginEmail, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCredentials):
			ui.PrintError("introduce email y contraseña")
		case errors.Is(err, domain.ErrUnauthorized):
			ui.PrintError("email o contraseña incorrectos")
		default:
			ui.PrintError("no se pudo iniciar sesión: %v", err)
		}
		return fmt.Errorf("authentication failed")
	}

	ui.PrintSuccess("Sesión iniciada como %s", user.Nombre)
	fmt.Println()
	ui.PrintInfo("Ahora puedes usar:")
	ui.PrintBold("  evalio chat          # Continuar o empezar una entrevista")
	ui.PrintBold("  evalio chats list    # Ver tus conversaciones")

	return nil
}
