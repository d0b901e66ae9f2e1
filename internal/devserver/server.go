// Package devserver is a local stand-in for the remote chat service. It
// serves the same six endpoints with in-memory sessions and a canned
// assistant so the client can be exercised without the real backend.
package devserver

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iksnae/chat-session/internal/api"
)

// Replier produces the assistant answer for a message given the prior history
type Replier func(selected api.UserContext, history []api.ConversationEntry, message string) string

// EchoReplier answers by repeating the message back
func EchoReplier(selected api.UserContext, history []api.ConversationEntry, message string) string {
	if selected.Name != "" {
		return fmt.Sprintf("[%s] You said: %s", selected.Name, message)
	}
	return "You said: " + message
}

type sessionState struct {
	loggedIn     bool
	selected     api.UserContext
	conversation []api.ConversationEntry
}

// Server holds all server-side state: sessions, contexts and histories
type Server struct {
	mu       sync.Mutex
	sessions map[string]*sessionState

	creds    api.Credentials
	contexts []api.UserContext
	replier  Replier
	logger   *log.Logger
}

// Option configures a Server
type Option func(*Server)

// WithCredentials sets the only accepted credentials
func WithCredentials(creds api.Credentials) Option {
	return func(s *Server) {
		s.creds = creds
	}
}

// WithContexts sets the selectable contexts
func WithContexts(contexts []api.UserContext) Option {
	return func(s *Server) {
		s.contexts = contexts
	}
}

// WithReplier sets the assistant implementation
func WithReplier(r Replier) Option {
	return func(s *Server) {
		s.replier = r
	}
}

// WithLogger sets the request logger
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// New creates a server with demo credentials test/test and default contexts
func New(opts ...Option) *Server {
	s := &Server{
		sessions: make(map[string]*sessionState),
		creds:    api.Credentials{UserID: "test", Password: "test"},
		contexts: DefaultContexts(),
		replier:  EchoReplier,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	s.RegisterRoutes(router)
	return router
}

// RegisterRoutes attaches the API routes to the router
func (s *Server) RegisterRoutes(router *gin.Engine) {
	r := router.Group("/api")
	r.POST("/login", s.login)
	r.GET("/users", s.listUsers)
	r.POST("/select-user", s.selectUser)
	r.POST("/chat", s.chat)
	r.POST("/chat/reset", s.resetChat)
	r.POST("/chat/finish", s.finishChat)
}

// SessionCount reports how many sessions the server currently knows
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.GetHeader("X-Request-ID"),
			"elapsed", time.Since(start))
	}
}

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type selectRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type sessionRequest struct {
	SessionID string `json:"sessionId"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data"})
		return
	}
	if req.UserID != s.creds.UserID || req.Password != s.creds.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &sessionState{
		loggedIn:     true,
		conversation: []api.ConversationEntry{},
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"sessionId": id})
}

func (s *Server) listUsers(c *gin.Context) {
	users := make([]api.UserContext, len(s.contexts))
	copy(users, s.contexts)
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (s *Server) selectUser(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data"})
		return
	}
	if req.SessionID == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId and userId required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[req.SessionID]
	if !ok || !sess.loggedIn {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	sess.selected = s.findContext(req.UserID)
	sess.conversation = []api.ConversationEntry{}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s selected", req.UserID)})
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data"})
		return
	}
	if req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[req.SessionID]
	if !ok || !sess.loggedIn {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	reply := s.replier(sess.selected, sess.conversation, req.Message)
	sess.conversation = append(sess.conversation,
		api.ConversationEntry{Role: api.RoleUser, Content: req.Message},
		api.ConversationEntry{Role: api.RoleAssistant, Content: reply},
	)
	history := make([]api.ConversationEntry, len(sess.conversation))
	copy(history, sess.conversation)
	c.JSON(http.StatusOK, gin.H{"reply": reply, "conversation": history})
}

func (s *Server) resetChat(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[req.SessionID]
	if !ok || !sess.loggedIn {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	sess.conversation = []api.ConversationEntry{}
	c.JSON(http.StatusOK, gin.H{"message": "Chat history reset."})
}

func (s *Server) finishChat(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data"})
		return
	}

	s.mu.Lock()
	delete(s.sessions, req.SessionID)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Chat finished"})
}

func (s *Server) findContext(id string) api.UserContext {
	for _, uc := range s.contexts {
		if uc.ID == id {
			return uc
		}
	}
	return api.UserContext{ID: id}
}
