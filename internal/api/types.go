package api

// Credentials are forwarded to the server as-is.
type Credentials struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// LoginResult is either Authenticated or Rejected.
type LoginResult interface {
	isLoginResult()
}

// Authenticated carries the session token issued by the server.
type Authenticated struct {
	Token string
}

// Rejected means the server did not issue a session token.
type Rejected struct {
	Reason string
}

func (Authenticated) isLoginResult() {}
func (Rejected) isLoginResult()      {}

// UserContext is a selectable account the authenticated user chats on behalf of
type UserContext struct {
	ID            string `json:"userId" yaml:"user_id"`
	Name          string `json:"userName" yaml:"user_name"`
	CompanyID     string `json:"companyId" yaml:"company_id"`
	CompanyName   string `json:"companyName" yaml:"company_name"`
	ResourceCount int    `json:"machineCount" yaml:"machine_count"`
}

// Roles used in conversation entries
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ConversationEntry is one exchanged utterance
type ConversationEntry struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// ChatReply is the result of send-message. Conversation is the full
// server-side history and replaces whatever the client shows.
type ChatReply struct {
	Reply        string              `json:"reply"`
	Conversation []ConversationEntry `json:"conversation"`
}

// Ack is the acknowledgement returned by select-context, reset and finish.
type Ack struct {
	Message string `json:"message"`
}

type loginResponse struct {
	SessionID string `json:"sessionId"`
	Error     string `json:"error"`
}

type usersResponse struct {
	Users []UserContext `json:"users"`
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

type errorResponse struct {
	Error string `json:"error"`
}
