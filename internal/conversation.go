package internal

import (
	"context"
	"sync"

	"github.com/iksnae/chat-session/internal/api"
)

// Conversation holds what the chat view shows. The server owns the history:
// every successful send or reset replaces the entries wholesale and nothing
// is ever appended locally. Concurrent sends are not ordered; whichever
// response arrives last wins.
type Conversation struct {
	gateway Gateway

	mu      sync.Mutex
	entries []api.ConversationEntry
	input   string
	reply   string
	err     error
}

// NewConversation creates an empty conversation backed by gw
func NewConversation(gw Gateway) *Conversation {
	return &Conversation{gateway: gw, entries: []api.ConversationEntry{}}
}

// Entries returns a copy of the displayed conversation
func (c *Conversation) Entries() []api.ConversationEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.ConversationEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Input returns the pending input buffer
func (c *Conversation) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// SetInput replaces the pending input buffer
func (c *Conversation) SetInput(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = s
}

// Reply returns the assistant text of the last successful send
func (c *Conversation) Reply() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reply
}

// Err returns the inline error of the last failed action, nil after a success
func (c *Conversation) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Send posts text and, on success, shows exactly the server's conversation and
// clears the input buffer. On failure nothing changes except Err.
func (c *Conversation) Send(ctx context.Context, token, text string) error {
	reply, err := c.gateway.SendMessage(ctx, token, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.err = err
		return err
	}
	c.entries = reply.Conversation
	if c.entries == nil {
		c.entries = []api.ConversationEntry{}
	}
	c.reply = reply.Reply
	c.input = ""
	c.err = nil
	return nil
}

// Reset asks the server to drop the history and, on success, shows it empty
func (c *Conversation) Reset(ctx context.Context, token string) error {
	_, err := c.gateway.Reset(ctx, token)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.err = err
		return err
	}
	c.entries = []api.ConversationEntry{}
	c.reply = ""
	c.err = nil
	return nil
}

// Discard drops all local state, used when the session ends or a new
// context is entered
func (c *Conversation) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = []api.ConversationEntry{}
	c.input = ""
	c.reply = ""
	c.err = nil
}

func (c *Conversation) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}
