package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evalio-app/evalio-cli/internal/ui"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "sign out and clear the local session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	logoutCmd.SilenceUsage = true
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		ui.PrintError("no se pudo iniciar: %v", err)
		return fmt.Errorf("startup failed")
	}
	defer app.Close()

	if !app.Auth.SignedIn() {
		ui.PrintInfo("No hay ninguna sesión iniciada")
		return nil
	}

	if err := app.Auth.Logout(); err != nil {
		ui.PrintError("no se pudo cerrar la sesión: %v", err)
		return fmt.Errorf("logout failed")
	}

	ui.PrintSuccess("Sesión cerrada")
	return nil
}
