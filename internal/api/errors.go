package api

import "fmt"

// StatusError is returned when the server answers with a non-2xx status
type StatusError struct {
	Op         string // "login", "users", "select-user", "chat", "reset", "finish"
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: server returned status %d: %s", e.Op, e.StatusCode, e.Message)
}

// TransportError wraps failures to reach the server or to read its answer
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
