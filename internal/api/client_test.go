package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iksnae/chat-session/internal/api"
	"github.com/iksnae/chat-session/internal/devserver"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, h http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	hc := &http.Client{Transport: &http.Transport{}}
	t.Cleanup(hc.CloseIdleConnections)
	return api.NewClient(srv.URL+"/", api.WithHTTPClient(hc), api.WithLogger(log.New(io.Discard)))
}

func newDevClient(t *testing.T) *api.Client {
	t.Helper()
	s := devserver.New(devserver.WithLogger(log.New(io.Discard)))
	return newTestClient(t, s.Handler())
}

func TestClient_Login(t *testing.T) {
	tests := []struct {
		name       string
		creds      api.Credentials
		wantToken  bool
		wantReason string
	}{
		{"valid credentials", api.Credentials{UserID: "test", Password: "test"}, true, ""},
		{"invalid credentials", api.Credentials{UserID: "test", Password: "wrong"}, false, "Invalid credentials"},
		{"empty credentials", api.Credentials{}, false, "Invalid credentials"},
	}

	c := newDevClient(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Login(context.Background(), tt.creds)
			require.NoError(t, err)
			switch r := res.(type) {
			case api.Authenticated:
				assert.True(t, tt.wantToken)
				assert.NotEmpty(t, r.Token)
			case api.Rejected:
				assert.False(t, tt.wantToken)
				assert.Equal(t, tt.wantReason, r.Reason)
			default:
				t.Fatalf("unexpected result %T", res)
			}
		})
	}
}

func TestClient_LoginWithoutSessionIDIsRejected(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{}`)
	}))
	res, err := c.Login(context.Background(), api.Credentials{UserID: "a", Password: "b"})
	require.NoError(t, err)
	assert.Equal(t, api.Rejected{}, res)
}

func TestClient_LoginServerErrorIsNotRejection(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"boom"}`)
	}))
	res, err := c.Login(context.Background(), api.Credentials{UserID: "a", Password: "b"})
	assert.Nil(t, res)

	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "login", se.Op)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "boom", se.Message)
}

func TestClient_FullConversation(t *testing.T) {
	c := newDevClient(t)
	ctx := context.Background()

	res, err := c.Login(ctx, api.Credentials{UserID: "test", Password: "test"})
	require.NoError(t, err)
	token := res.(api.Authenticated).Token

	contexts, err := c.ListContexts(ctx)
	require.NoError(t, err)
	assert.Equal(t, devserver.DefaultContexts(), contexts)

	ack, err := c.SelectContext(ctx, token, "u1")
	require.NoError(t, err)
	assert.Equal(t, "User u1 selected", ack.Message)

	reply, err := c.SendMessage(ctx, token, "hello")
	require.NoError(t, err)
	assert.Equal(t, "[Taro Yamada] You said: hello", reply.Reply)
	require.Len(t, reply.Conversation, 2)
	assert.Equal(t, api.ConversationEntry{Role: api.RoleUser, Content: "hello"}, reply.Conversation[0])

	ack, err = c.Reset(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Chat history reset.", ack.Message)

	ack, err = c.Finish(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Chat finished", ack.Message)

	_, err = c.SendMessage(ctx, token, "after finish")
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "Not logged in", se.Message)
}

func TestClient_SendsRequestID(t *testing.T) {
	ids := make(chan string, 1)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get("X-Request-ID")
		_, _ = io.WriteString(w, `{"users":[]}`)
	}))
	contexts, err := c.ListContexts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, contexts)
	assert.NotEmpty(t, <-ids)
}

func TestClient_SingleAttempt(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	_, err := c.SendMessage(context.Background(), "tok", "hi")
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Empty(t, se.Message)
	assert.Equal(t, 1, calls)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := api.NewClient(url, api.WithTimeout(time.Second), api.WithLogger(log.New(io.Discard)))
	_, err := c.Reset(context.Background(), "tok")

	var te *api.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "reset", te.Op)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestClient_MalformedBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"reply": 42}`)
	}))
	_, err := c.SendMessage(context.Background(), "tok", "hi")
	var te *api.TransportError
	assert.ErrorAs(t, err, &te)
}

func TestClient_BaseURLTrimsSlash(t *testing.T) {
	c := api.NewClient("http://example.test///")
	assert.Equal(t, "http://example.test", c.BaseURL())
}
