// Package command defines the CLI surface of the interview client.
package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evalio-app/evalio-cli/internal/ui"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "evalio",
	Short:   "Evalio interview client",
	Version: version,
	Long: `Terminal client for the Evalio AI interview platform. Sign in, run
interactive interview conversations, and manage your conversation history.`,
	Example: `  # Sign in
  $ evalio login

  # Resume the active interview (or start one)
  $ evalio chat

  # Force a brand-new interview
  $ evalio chat --new

  # List past conversations
  $ evalio chats list`,
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SetVersionTemplate(formatVersion())
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(chatsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(logoutCmd)

	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Styles.Bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Styles.Bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Styles.Bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Styles.Bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

func formatVersion() string {
	return fmt.Sprintf("evalio version %s\n", version)
}
