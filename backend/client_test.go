package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap/zaptest"

	"github.com/spektr-org/statview/display"
	"github.com/spektr-org/statview/engine"
)

func newTestClient(t *testing.T, srv *httptest.Server, token string) *Client {
	return NewClient(Config{
		BaseURL:       srv.URL,
		ChatEndpoint:  "/api/chat/query",
		Timeout:       5 * time.Second,
		Token:         token,
		SessionPrefix: "session_",
	}, zaptest.NewLogger(t))
}

func TestAskPostsQuestionAndSession(t *testing.T) {
	var body []byte
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		auth = r.Header.Get("Authorization")
		body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"success": true,
			"response": "Voici la répartition",
			"content": {"dataTable": {"a": 5, "b": 3}},
			"metadata": {"render": "table"}
		}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "secret")
	msg, err := c.Ask(context.Background(), "  Répartition ?  ")
	require.NoError(t, err)

	req := gjson.ParseBytes(body)
	assert.Equal(t, "Répartition ?", req.Get("question").String())
	assert.Equal(t, c.SessionID(), req.Get("sessionId").String())
	assert.True(t, strings.HasPrefix(c.SessionID(), "session_"))
	assert.Equal(t, "Bearer secret", auth)

	assert.Equal(t, "Voici la répartition", msg.Text)
	require.Len(t, msg.Items, 1)
	assert.Equal(t, engine.ModeTable, msg.Items[0].SuggestedMode)
}

func TestAskWithoutTokenSendsNoAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"success": true, "response": "ok"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, "").Ask(context.Background(), "q")
	require.NoError(t, err)
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	c := NewClient(Config{}, nil)
	_, err := c.Ask(context.Background(), "   ")
	assert.True(t, errors.Is(err, ErrEmptyQuestion))
}

func TestAskHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, "").Ask(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestAskDoesNotRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, "").Ask(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestAskInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, "").Ask(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestAskHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success": true}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv, "").Ask(ctx, "q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAskOrApologize(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, nil)
	msg := AskOrApologize(context.Background(), c, "q", zaptest.NewLogger(t))

	assert.Equal(t, display.ConnectionErrorText, msg.Text)
	assert.True(t, msg.Failed)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{}, nil)
	assert.Equal(t, "http://localhost:8080/api/chat/query", c.URL())
	assert.NotEmpty(t, c.SessionID())
}

func TestURLTrimsTrailingSlash(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://example.test/", ChatEndpoint: "/q"}, nil)
	assert.Equal(t, "http://example.test/q", c.URL())
}
