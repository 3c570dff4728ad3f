package tui

import (
	"context"

	"github.com/AlecAivazis/survey/v2"

	"github.com/evalio-app/evalio-cli/internal/ui"
)

// Events bridges the controller's side effects into the terminal. The
// completion notice runs before the chat view is mounted, so it can use a
// blocking prompt; conversation changes are forwarded as non-blocking pings
// the chat view drains.
type Events struct {
	changes chan struct{}
}

func NewEvents() *Events {
	return &Events{changes: make(chan struct{}, 1)}
}

func (e *Events) CompletionNotice(ctx context.Context) {
	ui.PrintNoticeBox("Entrevista finalizada",
		"La entrevista anterior ya ha concluido.\nSe iniciará una nueva conversación.")

	var ack string
	prompt := &survey.Input{Message: "Pulsa Enter para continuar"}
	// A failed prompt (piped stdin, closed terminal) must not stall startup.
	_ = survey.AskOne(prompt, &ack)
}

func (e *Events) ConversationChanged() {
	select {
	case e.changes <- struct{}{}:
	default:
	}
}

// Changes is drained by the chat view to refresh the conversation.
func (e *Events) Changes() <-chan struct{} {
	return e.changes
}
