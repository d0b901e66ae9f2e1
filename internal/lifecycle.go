package internal

import (
	"context"
	"fmt"

	"github.com/iksnae/chat-session/internal/api"
)

// Gateway is the remote chat service as the client consumes it.
// *api.Client implements it.
type Gateway interface {
	Login(ctx context.Context, creds api.Credentials) (api.LoginResult, error)
	ListContexts(ctx context.Context) ([]api.UserContext, error)
	SelectContext(ctx context.Context, token, contextID string) (api.Ack, error)
	SendMessage(ctx context.Context, token, text string) (api.ChatReply, error)
	Reset(ctx context.Context, token string) (api.Ack, error)
	Finish(ctx context.Context, token string) (api.Ack, error)
}

// Controller drives the client through its lifecycle:
// unauthenticated -> authenticated -> in-conversation -> terminated,
// where terminated immediately reads back as unauthenticated.
//
// A failed server call never changes state. Operations that need a session
// check the store first and return ErrNoSession (or ErrNoContext) without
// touching the network.
type Controller struct {
	gateway      Gateway
	store        SessionStore
	guard        *Guard
	conversation *Conversation
}

// NewController wires a controller to its gateway and session store
func NewController(gw Gateway, store SessionStore) *Controller {
	return &Controller{
		gateway:      gw,
		store:        store,
		guard:        NewGuard(store),
		conversation: NewConversation(gw),
	}
}

// Guard returns the navigation guard sharing this controller's store
func (c *Controller) Guard() *Guard {
	return c.guard
}

// Conversation returns the chat view model
func (c *Controller) Conversation() *Conversation {
	return c.conversation
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	return c.guard.State()
}

// Session returns the stored session, if any
func (c *Controller) Session() (Session, bool) {
	return c.store.Get()
}

// CurrentView is the furthest view the current state permits
func (c *Controller) CurrentView() View {
	switch c.State() {
	case StateInConversation:
		return ViewChat
	case StateAuthenticated:
		return ViewSelectContext
	default:
		return ViewLogin
	}
}

// Login authenticates and stores the issued token. A rejection is returned as
// *RejectedError and leaves the store untouched.
func (c *Controller) Login(ctx context.Context, creds api.Credentials) (View, error) {
	res, err := c.gateway.Login(ctx, creds)
	if err != nil {
		LogDebug("Login failed: %v", err)
		return ViewLogin, err
	}

	switch r := res.(type) {
	case api.Authenticated:
		c.store.Set(Session{Token: r.Token})
		c.conversation.Discard()
		LogInfo("Logged in as %s", creds.UserID)
		return c.guard.Enter(ViewSelectContext), nil
	case api.Rejected:
		LogDebug("Login rejected for %s: %s", creds.UserID, r.Reason)
		return ViewLogin, &RejectedError{Reason: r.Reason}
	default:
		return ViewLogin, fmt.Errorf("unexpected login result %T", res)
	}
}

// Contexts lists the selectable contexts. It requires a session even though
// the endpoint itself does not.
func (c *Controller) Contexts(ctx context.Context) ([]api.UserContext, error) {
	if _, ok := c.store.Get(); !ok {
		return nil, ErrNoSession
	}
	return c.gateway.ListContexts(ctx)
}

// SelectContext binds the session to a context and opens the chat view
func (c *Controller) SelectContext(ctx context.Context, contextID string) (View, error) {
	sess, ok := c.store.Get()
	if !ok {
		return ViewLogin, ErrNoSession
	}
	if _, err := c.gateway.SelectContext(ctx, sess.Token, contextID); err != nil {
		return c.CurrentView(), err
	}

	c.store.Set(Session{Token: sess.Token, ContextID: contextID})
	c.conversation.Discard()
	LogInfo("Selected context %s", contextID)
	return c.guard.Enter(ViewChat), nil
}

// Send posts a chat message; see Conversation.Send
func (c *Controller) Send(ctx context.Context, text string) error {
	sess, err := c.chatSession()
	if err != nil {
		return err
	}
	return c.conversation.Send(ctx, sess.Token, text)
}

// Reset clears the conversation on the server; see Conversation.Reset
func (c *Controller) Reset(ctx context.Context) error {
	sess, err := c.chatSession()
	if err != nil {
		return err
	}
	return c.conversation.Reset(ctx, sess.Token)
}

// Finish terminates the session on the server and then locally. The view
// returned is the context selection, which the guard redirects to login
// because the session no longer exists.
func (c *Controller) Finish(ctx context.Context) (View, error) {
	sess, ok := c.store.Get()
	if !ok {
		return ViewLogin, ErrNoSession
	}
	if _, err := c.gateway.Finish(ctx, sess.Token); err != nil {
		c.conversation.fail(err)
		return c.CurrentView(), err
	}

	c.store.Clear()
	c.conversation.Discard()
	LogInfo("Session finished")
	return ViewSelectContext, nil
}

// Logout forgets the session locally without telling the server
func (c *Controller) Logout() {
	c.store.Clear()
	c.conversation.Discard()
}

func (c *Controller) chatSession() (Session, error) {
	sess, ok := c.store.Get()
	if !ok {
		return Session{}, ErrNoSession
	}
	if !sess.HasContext() {
		return Session{}, ErrNoContext
	}
	return sess, nil
}
