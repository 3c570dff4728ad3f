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

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "create an account",
	Long: `Create an account on the Evalio backend and sign in.

The password must be at least 8 characters long and contain at least one
letter and one digit. The name may only contain letters and spaces.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	registerCmd.SilenceUsage = true
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		ui.PrintError("no se pudo iniciar: %v", err)
		return fmt.Errorf("startup failed")
	}
	defer app.Close()

	answers := struct {
		Nombre string
		Email  string
	}{}
	qs := []*survey.Question{
		{
			Name:     "nombre",
			Prompt:   &survey.Input{Message: "Nombre completo:"},
			Validate: survey.Required,
		},
		{
			Name:     "email",
			Prompt:   &survey.Input{Message: "Email:"},
			Validate: survey.Required,
		},
	}
	if err := survey.Ask(qs, &answers); err != nil {
		return fmt.Errorf("input failed")
	}

	var password string
	if err := survey.AskOne(&survey.Password{Message: "Contraseña:"}, &password, survey.WithValidator(survey.Required)); err != nil {
		return fmt.Errorf("input failed")
	}
	var confirm string
	if err := survey.AskOne(&survey.Password{Message: "Repite la contraseña:"}, &confirm, survey.WithValidator(survey.Required)); err != nil {
		return fmt.Errorf("input failed")
	}
	if password != confirm {
		ui.PrintError("las contraseñas no coinciden")
		return fmt.Errorf("validation failed")
	}

	user, err := app.Auth.Register(ctx, answers.Nombre, answers.Email, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidName):
			ui.PrintError("el nombre solo puede contener letras y espacios")
		case errors.Is(err, domain.ErrWeakPassword):
			ui.PrintError("la contraseña debe tener al menos 8 caracteres, con letras y números")
		case errors.Is(err, domain.ErrEmptyCredentials):
			ui.PrintError("introduce email y contraseña")
		default:
			ui.PrintError("no se pudo crear la cuenta: %v", err)
		}
		return fmt.Errorf("registration failed")
	}

	ui.PrintSuccess("Cuenta creada. Sesión iniciada como %s", user.Nombre)
	return nil
}
