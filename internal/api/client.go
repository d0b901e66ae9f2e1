package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultTimeout bounds a single round-trip at the transport level
const DefaultTimeout = 60 * time.Second

// Client maps the six remote operations onto HTTP calls. Each call is a
// single request: no retries, no caching.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the transport timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the service rooted at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service address the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login authenticates. A response without a session id, or a 401 with an
// error body, is a Rejected result rather than an error.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, "login", http.MethodPost, "/api/login", creds, &resp)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized {
			return Rejected{Reason: se.Message}, nil
		}
		return nil, err
	}
	if resp.SessionID == "" {
		return Rejected{Reason: resp.Error}, nil
	}
	return Authenticated{Token: resp.SessionID}, nil
}

// ListContexts fetches the full list of selectable contexts
func (c *Client) ListContexts(ctx context.Context) ([]UserContext, error) {
	var resp usersResponse
	if err := c.do(ctx, "users", http.MethodGet, "/api/users", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		return []UserContext{}, nil
	}
	return resp.Users, nil
}

// SelectContext binds the session to the context with the given id
func (c *Client) SelectContext(ctx context.Context, token, contextID string) (Ack, error) {
	var ack Ack
	err := c.do(ctx, "select-user", http.MethodPost, "/api/select-user", selectRequest{SessionID: token, UserID: contextID}, &ack)
	return ack, err
}

// SendMessage posts a message and returns the reply with the full conversation
func (c *Client) SendMessage(ctx context.Context, token, text string) (ChatReply, error) {
	var reply ChatReply
	if err := c.do(ctx, "chat", http.MethodPost, "/api/chat", chatRequest{SessionID: token, Message: text}, &reply); err != nil {
		return ChatReply{}, err
	}
	if reply.Conversation == nil {
		reply.Conversation = []ConversationEntry{}
	}
	return reply, nil
}

// Reset clears the server-side conversation
func (c *Client) Reset(ctx context.Context, token string) (Ack, error) {
	var ack Ack
	err := c.do(ctx, "reset", http.MethodPost, "/api/chat/reset", sessionRequest{SessionID: token}, &ack)
	return ack, err
}

// Finish terminates the session on the server
func (c *Client) Finish(ctx context.Context, token string) (Ack, error) {
	var ack Ack
	err := c.do(ctx, "finish", http.MethodPost, "/api/chat/finish", sessionRequest{SessionID: token}, &ack)
	return ack, err
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	c.logger.Debug("request", "op", op, "method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	c.logger.Debug("response", "op", op, "status", resp.StatusCode, "request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Op: op, StatusCode: resp.StatusCode}
		var apiErr errorResponse
		if json.Unmarshal(data, &apiErr) == nil {
			se.Message = apiErr.Error
		}
		return se
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
