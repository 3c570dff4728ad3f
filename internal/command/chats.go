package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/evalio-app/evalio-cli/internal/domain"
	"github.com/evalio-app/evalio-cli/internal/ui"
)

var deleteForce bool

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "manage your conversation history",
}

var chatsListCmd = &cobra.Command{
	Use:   "list",
	Short: "list your conversations",
	Args:  cobra.NoArgs,
	RunE:  runChatsList,
}

var chatsRenameCmd = &cobra.Command{
	Use:   "rename <chat-id> <title>",
	Short: "rename a conversation",
	Example: `  $ evalio chats rename 42 "Entrevista de marzo"`,
	Args: cobra.ExactArgs(2),
	RunE: runChatsRename,
}

var chatsDeleteCmd = &cobra.Command{
	Use:   "delete <chat-id>",
	Short: "delete a conversation and its messages",
	Example: `  # Delete with confirmation
  $ evalio chats delete 42

  # Skip the confirmation prompt
  $ evalio chats delete 42 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runChatsDelete,
}

func init() {
	chatsDeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")

	for _, c := range []*cobra.Command{chatsCmd, chatsListCmd, chatsRenameCmd, chatsDeleteCmd} {
		c.SilenceUsage = true
	}

	chatsCmd.AddCommand(chatsListCmd)
	chatsCmd.AddCommand(chatsRenameCmd)
	chatsCmd.AddCommand(chatsDeleteCmd)
}

// requireApp builds the app and checks there is a signed-in session.
func requireApp(ctx context.Context) (*App, error) {
	app, err := newApp()
	if err != nil {
		ui.PrintError("no se pudo iniciar: %v", err)
		return nil, fmt.Errorf("startup failed")
	}
	if _, err := app.Auth.RequireUser(ctx); err != nil {
		app.Close()
		ui.PrintError("no has iniciado sesión")
		fmt.Println("\nEjecuta 'evalio login' para autenticarte.")
		return nil, fmt.Errorf("authentication required")
	}
	return app, nil
}

func runChatsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := requireApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	chats, err := app.API.ListChats(ctx)
	if err != nil {
		ui.PrintError("no se pudieron cargar las conversaciones: %v", err)
		return fmt.Errorf("list failed")
	}

	if len(chats) == 0 {
		ui.PrintInfo("No tienes conversaciones todavía. Ejecuta 'evalio chat' para empezar.")
		return nil
	}

	sort.Slice(chats, func(i, j int) bool { return chats[i].CreatedAt.Before(chats[j].CreatedAt) })

	activeID, hasActive := app.Store.ActiveChatID()

	ui.PrintBold("%-6s  %-40s  %-11s  %s", "ID", "TÍTULO", "ESTADO", "CREADA")
	for _, c := range chats {
		marker := " "
		if hasActive && c.ID == activeID {
			marker = "*"
		}
		fmt.Printf("%s%-5d  %-40s  %-11s  %s\n",
			marker, c.ID, truncate(c.Title, 40), statusLabel(c.Status),
			c.CreatedAt.Format("02/01/2006 15:04"))
	}
	if hasActive {
		fmt.Println()
		ui.PrintInfo("* conversación activa")
	}
	return nil
}

func runChatsRename(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	chatID, err := parseChatID(args[0])
	if err != nil {
		return err
	}
	title := args[1]
	if title == "" {
		ui.PrintError("el título no puede estar vacío")
		return fmt.Errorf("validation failed")
	}

	app, err := requireApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.API.UpdateTitle(ctx, chatID, title); err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			ui.PrintError("la conversación %d no existe", chatID)
		} else {
			ui.PrintError("no se pudo renombrar: %v", err)
		}
		return fmt.Errorf("rename failed")
	}

	ui.PrintSuccess("Conversación %d renombrada a %q", chatID, title)
	return nil
}

func runChatsDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	chatID, err := parseChatID(args[0])
	if err != nil {
		return err
	}

	app, err := requireApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if !deleteForce {
		confirm := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("¿Eliminar la conversación %d y todos sus mensajes?", chatID),
		}
		if err := survey.AskOne(prompt, &confirm); err != nil {
			return fmt.Errorf("confirmation prompt failed: %w", err)
		}
		if !confirm {
			ui.PrintInfo("Eliminación cancelada")
			return nil
		}
	}

	if err := app.API.DeleteChat(ctx, chatID); err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			ui.PrintError("la conversación %d no existe", chatID)
		} else {
			ui.PrintError("no se pudo eliminar: %v", err)
		}
		return fmt.Errorf("delete failed")
	}

	// Deleting the conversation the client was in also drops the pointer.
	if activeID, ok := app.Store.ActiveChatID(); ok && activeID == chatID {
		if err := app.Store.ClearActiveChat(); err != nil {
			ui.PrintWarning("no se pudo limpiar la conversación activa: %v", err)
		}
	}

	ui.PrintSuccess("Conversación %d eliminada", chatID)
	return nil
}

func parseChatID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		ui.PrintError("identificador de conversación no válido: %s", arg)
		return 0, fmt.Errorf("invalid chat id")
	}
	return id, nil
}

func statusLabel(s domain.ChatStatus) string {
	if s == domain.ChatCompleted {
		return "finalizada"
	}
	return "activa"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
