package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evalio-app/evalio-cli/internal/chat"
	"github.com/evalio-app/evalio-cli/internal/tui"
	"github.com/evalio-app/evalio-cli/internal/ui"
)

var (
	chatForceNew bool
	chatLoadID   int64
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "open the interview conversation",
	Long: `Open the interactive interview view.

Without flags the client resumes the conversation it was last in; if that
interview has already concluded, or there is none, a new one starts with the
AI's opening message.`,
	Example: `  # Resume (or start) the interview
  $ evalio chat

  # Discard the stored conversation and start fresh
  $ evalio chat --new

  # Open a specific conversation from your history
  $ evalio chat --chat 42

  # Keyboard controls:
  • Enter envía el mensaje
  • Ctrl+N empieza una conversación nueva
  • Esc sale de la sesión`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatForceNew, "new", false, "Start a brand-new conversation")
	chatCmd.Flags().Int64Var(&chatLoadID, "chat", 0, "Open a specific conversation id")
	chatCmd.SilenceUsage = true
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := newApp()
	if err != nil {
		ui.PrintError("no se pudo iniciar: %v", err)
		return fmt.Errorf("startup failed")
	}
	defer app.Close()

	user, err := app.Auth.RequireUser(ctx)
	if err != nil {
		ui.PrintError("no has iniciado sesión")
		fmt.Println("\nEjecuta 'evalio login' para autenticarte.")
		return fmt.Errorf("authentication required")
	}

	signal := chat.NewSignal()
	if chatForceNew {
		signal.RequestNew()
	} else if chatLoadID > 0 {
		signal.RequestLoad(chatLoadID)
	}

	events := tui.NewEvents()
	ctrl := chat.NewController(chat.Deps{
		Backend: app.API,
		Store:   app.Store,
		Signal:  signal,
		Events:  events,
		User:    user,
	})

	ui.PrintWelcomeBanner("Evalio — Entrevista con IA")

	// Activation runs before the view mounts so the completion notice can
	// block on a plain prompt.
	ctrl.Activate(ctx)

	if err := tui.Run(ctx, ctrl, signal, events); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
