package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/evalio-app/evalio-cli/internal/config"
	"github.com/evalio-app/evalio-cli/internal/domain"
	"github.com/evalio-app/evalio-cli/internal/ui"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report <chat-id>",
	Short: "download the PDF report of a conversation",
	Example: `  # Save conversacion_42.pdf in the current directory
  $ evalio report 42

  # Choose the output file
  $ evalio report 42 -o entrevista.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output file (defaults to conversacion_<id>.pdf)")
	reportCmd.SilenceUsage = true
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.RequestTimeout)
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

	ui.PrintInfo("Generando el informe de la conversación %d...", chatID)
	start := time.Now()

	pdf, err := app.API.GenerateReport(ctx, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			ui.PrintError("la conversación %d no existe", chatID)
		} else {
			ui.PrintError("no se pudo generar el informe: %v", err)
		}
		return fmt.Errorf("report failed")
	}

	output := reportOutput
	if output == "" {
		output = fmt.Sprintf(config.ReportFilePattern, chatID)
	}
	if err := os.WriteFile(output, pdf, 0o644); err != nil {
		ui.PrintError("no se pudo guardar el informe: %v", err)
		return fmt.Errorf("write failed")
	}

	ui.PrintSuccess("Informe guardado en %s (%d bytes, %s)",
		output, len(pdf), time.Since(start).Round(time.Millisecond))
	return nil
}
