package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/evalio-app/evalio-cli/internal/command"
	"github.com/evalio-app/evalio-cli/internal/ui"
)

func main() {
	if err := command.Execute(); err != nil {
		if strings.Contains(err.Error(), "unknown command") {
			ui.PrintError("%s", err.Error())
			fmt.Println("\nRun 'evalio --help' for usage.")
		}
		os.Exit(1)
	}
}
