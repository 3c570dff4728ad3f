// Package api is the typed HTTP client for the interview backend. It is the
// only component that performs network I/O; callers receive parsed payloads
// or classified errors and never retry here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evalio-app/evalio-cli/internal/config"
	"github.com/evalio-app/evalio-cli/internal/domain"
)

// TokenSource supplies the bearer token attached to authenticated requests.
type TokenSource interface {
	Token() (string, bool)
}

type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

// Message is a chat message as the backend returns it.
type Message struct {
	IDMensaje int64     `json:"id_mensaje"`
	IDChat    int64     `json:"id_chat"`
	Emisor    string    `json:"emisor"`
	Contenido string    `json:"contenido"`
	SentAt    time.Time `json:"sent_at"`
}

// Sender maps the wire emisor (USER/IA) to the domain sender.
func (m Message) Sender() domain.Sender {
	if m.Emisor == "USER" {
		return domain.SenderUser
	}
	return domain.SenderAI
}

type chatDetails struct {
	IDChat        int64      `json:"id_chat"`
	Title         string     `json:"title"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

func (d chatDetails) toDomain() domain.Chat {
	return domain.Chat{
		ID:            d.IDChat,
		Title:         d.Title,
		Status:        domain.ChatStatus(d.Status),
		CreatedAt:     d.CreatedAt,
		LastMessageAt: d.LastMessageAt,
		CompletedAt:   d.CompletedAt,
	}
}

// do issues one request and decodes the JSON response into out (skipped when
// out is nil). Failures come back as *Error with the kind taxonomy applied.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// Register creates an account and returns the access token.
func (c *Client) Register(ctx context.Context, nombre, email, password string) (string, error) {
	payload := struct {
		Nombre   string `json:"nombre"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{nombre, email, password}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", payload, &resp); err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	return resp.AccessToken, nil
}

// Login authenticates and returns the access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", payload, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return resp.AccessToken, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &user); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &user, nil
}

// CreateChat creates a new chat server-side and returns its id.
func (c *Client) CreateChat(ctx context.Context) (int64, error) {
	var resp struct {
		IDChat int64 `json:"id_chat"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/chats", nil, &resp); err != nil {
		return 0, fmt.Errorf("create chat: %w", err)
	}
	return resp.IDChat, nil
}

// GetChat fetches title, status and timestamps for one chat.
func (c *Client) GetChat(ctx context.Context, chatID int64) (*domain.Chat, error) {
	var details chatDetails
	path := fmt.Sprintf("/api/v1/chats/%d", chatID)
	if err := c.do(ctx, http.MethodGet, path, nil, &details); err != nil {
		return nil, fmt.Errorf("fetch chat %d: %w", chatID, err)
	}
	chat := details.toDomain()
	return &chat, nil
}

// ListChats fetches the user's chat history, oldest first.
func (c *Client) ListChats(ctx context.Context) ([]domain.Chat, error) {
	var items []chatDetails
	if err := c.do(ctx, http.MethodGet, "/api/v1/chats", nil, &items); err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}

	chats := make([]domain.Chat, len(items))
	for i, it := range items {
		chats[i] = it.toDomain()
	}
	return chats, nil
}

// ListMessages fetches every message of a chat, in server order.
func (c *Client) ListMessages(ctx context.Context, chatID int64) ([]Message, error) {
	path := "/api/v1/messages?chat_id=" + url.QueryEscape(fmt.Sprint(chatID))
	var msgs []Message
	if err := c.do(ctx, http.MethodGet, path, nil, &msgs); err != nil {
		return nil, fmt.Errorf("list messages for chat %d: %w", chatID, err)
	}
	return msgs, nil
}

// InitializeChat asks the AI for its opening message in a fresh chat.
func (c *Client) InitializeChat(ctx context.Context, chatID int64) (*Message, error) {
	payload := struct {
		ChatID int64 `json:"chat_id"`
	}{chatID}

	var msg Message
	if err := c.do(ctx, http.MethodPost, "/api/v1/ai/initialize", payload, &msg); err != nil {
		return nil, fmt.Errorf("initialize chat %d: %w", chatID, err)
	}
	return &msg, nil
}

// Reply sends the user's message and returns the AI's answer.
func (c *Client) Reply(ctx context.Context, chatID int64, contenido string) (*Message, error) {
	payload := struct {
		ChatID    int64  `json:"chat_id"`
		Contenido string `json:"contenido"`
	}{chatID, contenido}

	var msg Message
	if err := c.do(ctx, http.MethodPost, "/api/v1/ai/reply", payload, &msg); err != nil {
		return nil, fmt.Errorf("ai reply for chat %d: %w", chatID, err)
	}
	return &msg, nil
}

// UpdateTitle renames a chat.
func (c *Client) UpdateTitle(ctx context.Context, chatID int64, title string) error {
	payload := struct {
		Title string `json:"title"`
	}{title}

	path := fmt.Sprintf("/api/v1/chats/%d/title", chatID)
	if err := c.do(ctx, http.MethodPut, path, payload, nil); err != nil {
		return fmt.Errorf("rename chat %d: %w", chatID, err)
	}
	return nil
}

// DeleteChat removes a chat and its messages.
func (c *Client) DeleteChat(ctx context.Context, chatID int64) error {
	path := fmt.Sprintf("/api/v1/chats/%d", chatID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete chat %d: %w", chatID, err)
	}
	return nil
}

// GenerateReport asks the backend for the interview PDF and returns its bytes.
func (c *Client) GenerateReport(ctx context.Context, chatID int64) ([]byte, error) {
	payload, err := json.Marshal(struct {
		ChatID int64 `json:"chat_id"`
	}{chatID})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/ai/generate-report", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, raw)
	}
	return raw, nil
}
