// Package ui holds the terminal output helpers and shared styles.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/evalio-app/evalio-cli/internal/domain"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	boldColor    = color.New(color.Bold)
)

func PrintSuccess(format string, args ...interface{}) {
	successColor.Printf("✓ %s\n", fmt.Sprintf(format, args...))
}

func PrintError(format string, args ...interface{}) {
	errorColor.Printf("✗ %s\n", fmt.Sprintf(format, args...))
}

func PrintWarning(format string, args ...interface{}) {
	warningColor.Printf("⚠ %s\n", fmt.Sprintf(format, args...))
}

func PrintInfo(format string, args ...interface{}) {
	infoColor.Printf("ℹ %s\n", fmt.Sprintf(format, args...))
}

func PrintBold(format string, args ...interface{}) {
	boldColor.Println(fmt.Sprintf(format, args...))
}

// PrintNoticeBox prints a titled notice in a bordered box.
func PrintNoticeBox(title, content string) {
	boxContent := fmt.Sprintf("%s\n\n%s", warningColor.Sprint(title), content)
	fmt.Println(Styles.NoticeBox.Render(boxContent))
}

// PrintWelcomeBanner prints the banner shown when the chat view starts.
func PrintWelcomeBanner(title string) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Align(lipgloss.Center).
		Width(60).
		MarginTop(1).
		MarginBottom(1)

	bannerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("86")).
		Padding(1, 2).
		Align(lipgloss.Center)

	fmt.Println(bannerStyle.Render(titleStyle.Render("🎙  " + title)))
}

// RenderParts renders the segments of an AI message, applying the emphasis
// style to highlighted keywords.
func RenderParts(parts []domain.MessagePart) string {
	var out string
	for _, p := range parts {
		if p.Emphasis {
			out += Styles.Emphasis.Render(p.Text)
		} else {
			out += p.Text
		}
	}
	return out
}
