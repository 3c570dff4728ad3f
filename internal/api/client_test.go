package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalio-app/evalio-cli/internal/domain"
)

type staticToken string

func (s staticToken) Token() (string, bool) { return string(s), s != "" }

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"id_chat": 5}`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok-abc"))
	id, err := client.CreateChat(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestClientOmitsAuthWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"access_token":"t","token_type":"bearer"}`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken(""))
	token, err := client.Login(context.Background(), "a@b.es", "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, "t", token)
	assert.Empty(t, gotAuth)
}

func TestClientGetChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chats/42", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		fmt.Fprint(w, `{"id_chat":42,"id_usuario":1,"title":"Eva - 01/02/2026 10:30","status":"completed","created_at":"2026-02-01T10:30:00Z","last_message_at":null,"completed_at":null}`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"))
	chat, err := client.GetChat(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), chat.ID)
	assert.Equal(t, domain.ChatCompleted, chat.Status)
}

func TestClientListMessagesQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/messages", r.URL.Path)
		assert.Equal(t, "17", r.URL.Query().Get("chat_id"))
		fmt.Fprint(w, `[{"id_mensaje":2,"id_chat":17,"emisor":"IA","contenido":"hola","sent_at":"2026-02-01T10:30:05Z"},{"id_mensaje":1,"id_chat":17,"emisor":"USER","contenido":"buenas","sent_at":"2026-02-01T10:30:00Z"}]`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"))
	msgs, err := client.ListMessages(context.Background(), 17)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.SenderAI, msgs[0].Sender())
	assert.Equal(t, domain.SenderUser, msgs[1].Sender())
}

func TestClientNotFoundKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail":"Chat not found"}`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"))
	_, err := client.GetChat(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, domain.ErrChatNotFound)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Chat not found", apiErr.Detail)
}

func TestClientValidationDetailList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"detail":[{"msg":"La contraseña debe contener al menos un número"}]}`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken(""))
	_, err := client.Register(context.Background(), "Ana", "a@b.es", "abcdefgh")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, "La contraseña debe contener al menos un número", apiErr.Detail)
}

func TestClientNetworkKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := New(server.URL, staticToken("tok"))
	_, err := client.CreateChat(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindNetwork, apiErr.Kind)
}

func TestClientGenerateReportBytes(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/ai/generate-report", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"))
	got, err := client.GenerateReport(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestClientUpdateTitleAndDelete(t *testing.T) {
	var paths []string
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		methods = append(methods, r.Method)
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"))
	require.NoError(t, client.UpdateTitle(context.Background(), 8, "nuevo título"))
	require.NoError(t, client.DeleteChat(context.Background(), 8))

	assert.Equal(t, []string{"/api/v1/chats/8/title", "/api/v1/chats/8"}, paths)
	assert.Equal(t, []string{http.MethodPut, http.MethodDelete}, methods)
}
