// Package tui implements the interactive chat view on Bubble Tea.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/evalio-app/evalio-cli/internal/chat"
	"github.com/evalio-app/evalio-cli/internal/config"
	"github.com/evalio-app/evalio-cli/internal/domain"
	"github.com/evalio-app/evalio-cli/internal/ui"
)

const (
	defaultInputWidth     = 100
	defaultViewportWidth  = 100
	defaultViewportHeight = 30
	defaultWindowWidth    = 100
	defaultWindowHeight   = 40
	inputHeightReserved   = 2
	statusHeightReserved  = 3
	minContentHeight      = 10
)

// Run mounts the chat view over an already-activated controller and blocks
// until the user quits. Force-new requests raised inside the view are served
// by the controller's watch loop.
func Run(ctx context.Context, ctrl *chat.Controller, signal *chat.Signal, events *Events) error {
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go ctrl.Watch(watchCtx)

	program := tea.NewProgram(newChatModel(ctrl, signal, events), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type chatModel struct {
	ctrl   *chat.Controller
	signal *chat.Signal
	events *Events

	input       textinput.Model
	contentView viewport.Model

	width  int
	height int
}

func newChatModel(ctrl *chat.Controller, signal *chat.Signal, events *Events) chatModel {
	input := textinput.New()
	input.Placeholder = "Escribe tu respuesta..."
	input.Focus()
	input.CharLimit = config.MaxPromptLen
	input.Width = defaultInputWidth
	input.Prompt = ""

	contentViewport := viewport.New(defaultViewportWidth, defaultViewportHeight)

	m := chatModel{
		ctrl:        ctrl,
		signal:      signal,
		events:      events,
		input:       input,
		contentView: contentViewport,
		width:       defaultWindowWidth,
		height:      defaultWindowHeight,
	}
	m.refreshContent()
	return m
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.events))
}

type (
	changeMsg   struct{}
	sendDoneMsg struct{ err error }
)

// waitForChange blocks until the controller reports a conversation update.
func waitForChange(events *Events) tea.Cmd {
	return func() tea.Msg {
		<-events.Changes()
		return changeMsg{}
	}
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg)...)

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case changeMsg:
		m.refreshContent()
		cmds = append(cmds, waitForChange(m.events))

	case sendDoneMsg:
		m.refreshContent()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *chatModel) handleKeyPress(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		cmds = append(cmds, tea.Quit)

	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		snap := m.ctrl.Snapshot()
		if text != "" && !snap.Sending && !snap.Loading {
			m.input.Reset()
			cmds = append(cmds, m.sendCmd(text))
		}

	case tea.KeyCtrlN:
		// The watch loop picks this up and resets the conversation.
		m.signal.RequestNew()

	case tea.KeyUp:
		m.contentView.LineUp(1)

	case tea.KeyDown:
		m.contentView.LineDown(1)

	case tea.KeyPgUp:
		m.contentView.ViewUp()

	case tea.KeyPgDown:
		m.contentView.ViewDown()
	}

	return cmds
}

func (m *chatModel) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := msg.Height - inputHeightReserved - statusHeightReserved
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}

	m.contentView.Width = msg.Width
	m.contentView.Height = contentHeight
	m.input.Width = msg.Width - 3

	m.refreshContent()
}

func (m *chatModel) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		err := m.ctrl.Send(context.Background(), text)
		if errors.Is(err, domain.ErrRequestInFlight) || errors.Is(err, domain.ErrEmptyPrompt) {
			err = nil
		}
		return sendDoneMsg{err: err}
	}
}

// refreshContent rebuilds the viewport from the controller's snapshot.
func (m *chatModel) refreshContent() {
	snap := m.ctrl.Snapshot()

	var b strings.Builder
	for _, msg := range snap.Conversation {
		if msg.Sender == domain.SenderUser {
			b.WriteString(ui.Styles.UserLabel.Render("Tú"))
		} else {
			b.WriteString(ui.Styles.AILabel.Render("Evalio"))
		}
		b.WriteString("\n")
		b.WriteString(ui.RenderParts(msg.Parts))
		b.WriteString("\n\n")
	}

	if snap.Err != "" {
		b.WriteString(ui.Styles.ErrorLine.Render(snap.Err))
		b.WriteString("\n")
	}

	display := b.String()
	if m.width > 0 {
		display = wrapText(display, m.width)
	}

	m.contentView.SetContent(display)
	m.contentView.GotoBottom()
}

func (m chatModel) View() string {
	snap := m.ctrl.Snapshot()

	status := ui.Styles.Dim.Render(snap.Title)
	switch {
	case snap.Loading:
		status += ui.Styles.Dim.Render(" • cargando...")
	case snap.Sending:
		status += ui.Styles.Dim.Render(" • la IA está escribiendo...")
	case snap.Status == domain.ChatCompleted:
		status += ui.Styles.Dim.Render(" • entrevista finalizada")
	}

	content := m.contentView.View()

	var inputView string
	if snap.Sending || snap.Loading {
		inputView = ui.Styles.Dim.Render("> esperando respuesta...")
	} else {
		inputView = ui.Styles.Bold.Render("> ") + m.input.View()
	}

	help := ui.Styles.Dim.Render("Enter enviar • Ctrl+N nueva conversación • ↑↓ desplazar • Esc salir")

	return lipgloss.JoinVertical(lipgloss.Left, status, "", content, "", inputView, help)
}

// wrapText wraps rendered content to the window width, accounting for
// double-width runes.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 10 {
		return text
	}

	lines := strings.Split(text, "\n")
	var result strings.Builder

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(wrapLine(line, maxWidth))
	}

	return result.String()
}

func wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0

	for _, r := range line {
		runeW := runewidth.RuneWidth(r)
		if currentWidth+runeW > maxWidth && currentWidth > 0 {
			result.WriteString(currentLine.String())
			result.WriteString("\n")
			currentLine.Reset()
			currentWidth = 0
		}
		currentLine.WriteRune(r)
		currentWidth += runeW
	}

	if currentLine.Len() > 0 {
		result.WriteString(currentLine.String())
	}

	return result.String()
}
