// Package chat owns the client-side lifecycle of an interview conversation:
// deciding how a session starts, keeping the in-memory conversation view in
// sync with the backend, and mediating every message round trip.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/evalio-app/evalio-cli/internal/api"
	"github.com/evalio-app/evalio-cli/internal/config"
	"github.com/evalio-app/evalio-cli/internal/domain"
	"github.com/evalio-app/evalio-cli/internal/store"
	"github.com/evalio-app/evalio-cli/internal/textproc"
)

// User-facing failure messages. Full detail goes to the log.
const (
	msgStartNewFailed = "No se pudo iniciar una nueva conversación con la IA."
	msgLoadFailed     = "No se pudo cargar el chat anterior. Empezando uno nuevo."
	msgSendFailed     = "Ha ocurrido un error al contactar con la IA."
)

const defaultTitle = "Nuevo Chat"

// Backend is the slice of the API client the controller depends on.
type Backend interface {
	CreateChat(ctx context.Context) (int64, error)
	GetChat(ctx context.Context, chatID int64) (*domain.Chat, error)
	ListMessages(ctx context.Context, chatID int64) ([]api.Message, error)
	InitializeChat(ctx context.Context, chatID int64) (*api.Message, error)
	Reply(ctx context.Context, chatID int64, contenido string) (*api.Message, error)
	UpdateTitle(ctx context.Context, chatID int64, title string) error
}

// Events receives the controller's UI-facing side effects.
type Events interface {
	// CompletionNotice blocks until the user has acknowledged that the
	// interview they tried to resume has already concluded.
	CompletionNotice(ctx context.Context)

	// ConversationChanged fires after the conversation view has been
	// updated, so the host can scroll to the bottom.
	ConversationChanged()
}

type nopEvents struct{}

func (nopEvents) CompletionNotice(context.Context) {}
func (nopEvents) ConversationChanged()             {}

// Snapshot is a consistent copy of the controller's visible state.
type Snapshot struct {
	ChatID       int64
	Title        string
	Status       domain.ChatStatus
	Conversation []domain.Message
	Sending      bool
	Loading      bool
	Err          string
}

// Deps contains everything needed to construct a Controller.
type Deps struct {
	Backend Backend
	Store   store.Store
	Signal  *Signal
	Events  Events
	User    *domain.User
	Now     func() time.Time
}

// Controller drives one conversation view. All mutations happen on the
// caller's goroutine in response to completed calls; state between a
// network call and the following update is last-write-wins by design.
type Controller struct {
	backend Backend
	store   store.Store
	signal  *Signal
	events  Events
	user    *domain.User
	now     func() time.Time

	mu           sync.Mutex
	conversation []domain.Message
	chatID       int64
	title        string
	status       domain.ChatStatus
	sending      bool
	loading      bool
	errMsg       string

	activationID string
}

func NewController(deps Deps) *Controller {
	c := &Controller{
		backend: deps.Backend,
		store:   deps.Store,
		signal:  deps.Signal,
		events:  deps.Events,
		user:    deps.User,
		now:     deps.Now,
		title:   defaultTitle,
	}
	if c.events == nil {
		c.events = nopEvents{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Snapshot returns a copy of the current visible state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	conv := make([]domain.Message, len(c.conversation))
	copy(conv, c.conversation)

	return Snapshot{
		ChatID:       c.chatID,
		Title:        c.title,
		Status:       c.status,
		Conversation: conv,
		Sending:      c.sending,
		Loading:      c.loading,
		Err:          c.errMsg,
	}
}

type startupBranch int

const (
	branchForcedNew startupBranch = iota
	branchExplicitID
	branchResume
	branchFresh
)

// decideStartup picks exactly one startup branch from the directive fields
// and the stored pointer, in strict priority order.
func decideStartup(forceNew bool, directiveID, storedID int64) (startupBranch, int64) {
	switch {
	case forceNew:
		return branchForcedNew, 0
	case directiveID > 0:
		return branchExplicitID, directiveID
	case storedID > 0:
		return branchResume, storedID
	}
	return branchFresh, 0
}

// Activate runs the startup decision and executes the chosen branch. The
// decision consumes the directive state it reads before any network call.
func (c *Controller) Activate(ctx context.Context) {
	c.activationID = uuid.NewString()

	forceNew := c.signal.consumeForceNew()
	directiveID, _ := c.signal.consumeLoadChat()
	storedID, _ := c.store.ActiveChatID()

	branch, chatID := decideStartup(forceNew, directiveID, storedID)
	slog.Info("chat activation",
		"activation", c.activationID,
		"branch", branch,
		"chat_id", chatID,
	)

	switch branch {
	case branchForcedNew, branchFresh:
		c.StartNew(ctx)
	case branchExplicitID, branchResume:
		c.resumeChecked(ctx, chatID)
	}
}

// resumeChecked verifies a candidate chat before loading it: a completed
// interview gets a blocking notice and a fresh chat instead, and a chat
// whose status cannot be fetched is treated as absent.
func (c *Controller) resumeChecked(ctx context.Context, chatID int64) {
	chat, err := c.backend.GetChat(ctx, chatID)
	if err != nil {
		slog.Error("check chat status, starting a new one",
			"activation", c.activationID, "chat_id", chatID, "error", err)
		c.StartNew(ctx)
		return
	}

	if chat.Status == domain.ChatCompleted {
		c.events.CompletionNotice(ctx)
		c.StartNew(ctx)
		return
	}

	c.LoadExisting(ctx, chatID)
}

// Watch reacts to force-new requests that arrive after startup, letting a
// sibling surface reset the conversation while the view is mounted. It
// blocks until ctx is done.
func (c *Controller) Watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.signal.Changes():
			if c.signal.consumeForceNew() {
				c.StartNew(ctx)
			}
		}
	}
}

// StartNew discards all local conversation state and starts a brand-new
// chat: create remotely, persist the pointer, push a default title, request
// the AI's opening message, then re-fetch status. Any failure surfaces one
// generic error and leaves the view empty; there is no partial retry.
func (c *Controller) StartNew(ctx context.Context) {
	c.mu.Lock()
	c.conversation = nil
	c.chatID = 0
	c.status = ""
	c.title = defaultTitle
	c.errMsg = ""
	c.loading = true
	c.mu.Unlock()

	if err := c.store.ClearActiveChat(); err != nil {
		slog.Error("clear active chat pointer", "activation", c.activationID, "error", err)
	}

	if err := c.startNew(ctx); err != nil {
		slog.Error("start new chat", "activation", c.activationID, "error", err)
		c.mu.Lock()
		c.conversation = nil
		c.errMsg = msgStartNewFailed
		c.loading = false
		c.mu.Unlock()
	} else {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}

	c.events.ConversationChanged()
}

func (c *Controller) startNew(ctx context.Context) error {
	chatID, err := c.backend.CreateChat(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.chatID = chatID
	c.mu.Unlock()

	if err := c.store.SetActiveChatID(chatID); err != nil {
		return fmt.Errorf("persist active chat: %w", err)
	}

	title := c.defaultChatTitle()
	if err := c.backend.UpdateTitle(ctx, chatID, title); err != nil {
		return err
	}
	c.mu.Lock()
	c.title = title
	c.mu.Unlock()

	greeting, err := c.backend.InitializeChat(ctx, chatID)
	if err != nil {
		return err
	}

	id := greeting.IDMensaje
	if id == 0 {
		id = c.localID()
	}
	c.mu.Lock()
	c.conversation = append(c.conversation, domain.Message{
		ID:     id,
		Sender: domain.SenderAI,
		Parts:  textproc.ProcessAIMessage(greeting.Contenido),
	})
	c.mu.Unlock()

	chat, err := c.backend.GetChat(ctx, chatID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.status = chat.Status
	c.mu.Unlock()

	return nil
}

// defaultChatTitle formats "<First> - dd/mm/yyyy hh:mm" from the signed-in
// user's first name and the current wall clock.
func (c *Controller) defaultChatTitle() string {
	now := c.now()
	return fmt.Sprintf("%s - %s %s",
		c.user.FirstName(),
		now.Format(config.TitleDateFormat),
		now.Format(config.TitleTimeFormat),
	)
}

// LoadExisting rebuilds the conversation view from a chat's remote state.
// Details and messages are fetched concurrently and both must succeed; on
// failure the controller surfaces an error and falls back to a new chat so
// the view is never left dead.
func (c *Controller) LoadExisting(ctx context.Context, chatID int64) {
	c.mu.Lock()
	c.conversation = nil
	c.errMsg = ""
	c.loading = true
	c.mu.Unlock()

	var (
		details *domain.Chat
		msgs    []api.Message
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = c.backend.GetChat(gctx, chatID)
		return err
	})
	g.Go(func() error {
		var err error
		msgs, err = c.backend.ListMessages(gctx, chatID)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Error("load existing chat",
			"activation", c.activationID, "chat_id", chatID, "error", err)
		c.mu.Lock()
		c.errMsg = msgLoadFailed
		c.loading = false
		c.mu.Unlock()
		c.StartNew(ctx)
		return
	}

	if err := c.store.SetActiveChatID(chatID); err != nil {
		slog.Error("persist active chat", "activation", c.activationID, "error", err)
	}

	sort.Slice(msgs, func(i, j int) bool { return msgs[i].IDMensaje < msgs[j].IDMensaje })

	conversation := make([]domain.Message, len(msgs))
	for i, m := range msgs {
		conversation[i] = toDisplayMessage(m)
	}

	c.mu.Lock()
	c.chatID = chatID
	c.title = details.Title
	c.status = details.Status
	c.conversation = conversation
	c.loading = false
	c.mu.Unlock()

	c.events.ConversationChanged()
}

func toDisplayMessage(m api.Message) domain.Message {
	msg := domain.Message{
		ID:     m.IDMensaje,
		Sender: m.Sender(),
		SentAt: m.SentAt,
	}
	if msg.Sender == domain.SenderAI {
		msg.Parts = textproc.ProcessAIMessage(m.Contenido)
	} else {
		msg.Parts = textproc.PlainMessage(m.Contenido)
	}
	return msg
}

// Send runs one user-message round trip. The send is rejected while a
// previous round trip is still in flight, and an empty prompt is a no-op.
// The user's message is appended optimistically and never rolled back.
func (c *Controller) Send(ctx context.Context, prompt string) error {
	if prompt == "" {
		return domain.ErrEmptyPrompt
	}

	c.mu.Lock()
	if c.sending || c.loading {
		c.mu.Unlock()
		return domain.ErrRequestInFlight
	}
	if c.chatID == 0 {
		c.mu.Unlock()
		return domain.ErrNoActiveChat
	}
	chatID := c.chatID
	c.sending = true
	c.errMsg = ""
	c.conversation = append(c.conversation, domain.Message{
		ID:     c.localID(),
		Sender: domain.SenderUser,
		Parts:  textproc.PlainMessage(prompt),
	})
	c.mu.Unlock()

	c.events.ConversationChanged()

	reply, err := c.backend.Reply(ctx, chatID, prompt)
	if err != nil {
		slog.Error("ai reply", "activation", c.activationID, "chat_id", chatID, "error", err)
		c.mu.Lock()
		c.errMsg = msgSendFailed
		c.sending = false
		c.mu.Unlock()
		c.events.ConversationChanged()
		return fmt.Errorf("send message: %w", err)
	}

	id := reply.IDMensaje
	if id == 0 {
		id = c.localID()
	}
	c.mu.Lock()
	c.conversation = append(c.conversation, domain.Message{
		ID:     id,
		Sender: domain.SenderAI,
		Parts:  textproc.ProcessAIMessage(reply.Contenido),
	})
	c.mu.Unlock()

	// Re-fetch status so a completed interview is discovered right away.
	// The reply stays visible even if this check fails.
	chat, err := c.backend.GetChat(ctx, chatID)
	if err != nil {
		slog.Error("refresh chat status", "activation", c.activationID, "chat_id", chatID, "error", err)
		c.mu.Lock()
		c.errMsg = msgSendFailed
		c.sending = false
		c.mu.Unlock()
		c.events.ConversationChanged()
		return fmt.Errorf("refresh status: %w", err)
	}

	c.mu.Lock()
	c.status = chat.Status
	c.sending = false
	c.mu.Unlock()

	c.events.ConversationChanged()
	return nil
}

// localID generates an id for optimistically appended messages, in the same
// spirit as the web client's Date.now().
func (c *Controller) localID() int64 {
	return c.now().UnixMilli()
}
