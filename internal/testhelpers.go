package internal

import (
	"context"
	"sync"

	"github.com/iksnae/chat-session/internal/api"
)

// FakeGateway is a scriptable Gateway for tests. Zero-value fields produce
// successful empty answers; the *Err fields force failures.
type FakeGateway struct {
	mu sync.Mutex

	LoginResult api.LoginResult
	LoginErr    error
	Contexts    []api.UserContext
	ContextsErr error
	SelectErr   error
	Reply       api.ChatReply
	SendErr     error
	ResetErr    error
	FinishErr   error

	Calls  []string
	Tokens []string
}

func (f *FakeGateway) record(op, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, op)
	f.Tokens = append(f.Tokens, token)
}

// CallCount returns how many times op was called
func (f *FakeGateway) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *FakeGateway) Login(ctx context.Context, creds api.Credentials) (api.LoginResult, error) {
	f.record("login", "")
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if f.LoginResult == nil {
		return api.Authenticated{Token: "token-" + creds.UserID}, nil
	}
	return f.LoginResult, nil
}

func (f *FakeGateway) ListContexts(ctx context.Context) ([]api.UserContext, error) {
	f.record("users", "")
	return f.Contexts, f.ContextsErr
}

func (f *FakeGateway) SelectContext(ctx context.Context, token, contextID string) (api.Ack, error) {
	f.record("select-user", token)
	if f.SelectErr != nil {
		return api.Ack{}, f.SelectErr
	}
	return api.Ack{Message: "User " + contextID + " selected"}, nil
}

func (f *FakeGateway) SendMessage(ctx context.Context, token, text string) (api.ChatReply, error) {
	f.record("chat", token)
	if f.SendErr != nil {
		return api.ChatReply{}, f.SendErr
	}
	return f.Reply, nil
}

func (f *FakeGateway) Reset(ctx context.Context, token string) (api.Ack, error) {
	f.record("reset", token)
	if f.ResetErr != nil {
		return api.Ack{}, f.ResetErr
	}
	return api.Ack{Message: "Chat history reset."}, nil
}

func (f *FakeGateway) Finish(ctx context.Context, token string) (api.Ack, error) {
	f.record("finish", token)
	if f.FinishErr != nil {
		return api.Ack{}, f.FinishErr
	}
	return api.Ack{Message: "Chat finished"}, nil
}

// CreateTestConversation returns a short user/assistant exchange
func CreateTestConversation() []api.ConversationEntry {
	return []api.ConversationEntry{
		{Role: api.RoleUser, Content: "Hello, how are you?"},
		{Role: api.RoleAssistant, Content: "I'm doing well, thank you!"},
	}
}
