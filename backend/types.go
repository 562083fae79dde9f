package backend

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spektr-org/statview/display"
)

// ============================================================================
// BACKEND — Boundary with the analytics chat service
// ============================================================================
// The client sends a question with the session id and decodes the answer
// into a display.Message. It never retries: a failed call is reported once
// and the caller decides what to show.
// ============================================================================

// Asker sends one question to the analytics service.
// Implementations: Client (HTTP), fakes in tests.
type Asker interface {
	Ask(ctx context.Context, question string) (*display.Message, error)
}

// Config holds backend client configuration.
type Config struct {
	BaseURL       string        // service root, e.g. http://localhost:8080
	ChatEndpoint  string        // path of the chat query endpoint
	Timeout       time.Duration // per-request timeout
	Token         string        // optional bearer token
	SessionPrefix string        // prefix of generated session ids
}

// DefaultConfig returns the defaults of the reference deployment.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "http://localhost:8080",
		ChatEndpoint:  "/api/chat/query",
		Timeout:       30 * time.Second,
		SessionPrefix: "session_",
	}
}

// NewSessionID returns a fresh session id carrying prefix.
func NewSessionID(prefix string) string {
	return prefix + uuid.NewString()
}

// queryRequest is the chat endpoint request body.
type queryRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"sessionId"`
}
