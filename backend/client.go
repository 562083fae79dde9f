package backend

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/spektr-org/statview/display"
)

// ErrEmptyQuestion is returned when the question is blank.
var ErrEmptyQuestion = errors.New("question is empty")

// Client implements Asker over HTTP.
type Client struct {
	config    Config
	client    *http.Client
	sessionID string
	log       *zap.Logger
}

// NewClient creates a client with a new session id. Zero config fields take
// their defaults.
func NewClient(cfg Config, log *zap.Logger) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.ChatEndpoint == "" {
		cfg.ChatEndpoint = def.ChatEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		config:    cfg,
		client:    &http.Client{Timeout: cfg.Timeout},
		sessionID: NewSessionID(cfg.SessionPrefix),
		log:       log,
	}
}

// SessionID returns the id sent with every question.
func (c *Client) SessionID() string { return c.sessionID }

// URL returns the chat endpoint address.
func (c *Client) URL() string {
	return strings.TrimRight(c.config.BaseURL, "/") + c.config.ChatEndpoint
}

// Ask posts question and decodes the answer.
func (c *Client) Ask(ctx context.Context, question string) (*display.Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	body, err := json.Marshal(queryRequest{Question: question, SessionID: c.sessionID})
	if err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	c.log.Debug("asking backend", zap.String("url", c.URL()), zap.Int("question_len", len(question)))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "post question")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("backend returned %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	msg, err := display.DecodeMessage(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode response")
	}

	c.log.Info("backend answered",
		zap.Bool("failed", msg.Failed),
		zap.Int("items", len(msg.Items)),
		zap.Int64("execution_ms", msg.ExecutionTime))
	return msg, nil
}

// AskOrApologize is Ask with transport failures turned into the
// connection-error bot message.
func AskOrApologize(ctx context.Context, a Asker, question string, log *zap.Logger) *display.Message {
	msg, err := a.Ask(ctx, question)
	if err != nil {
		if log != nil {
			log.Warn("backend call failed", zap.Error(err))
		}
		return display.ConnectionErrorMessage()
	}
	return msg
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
