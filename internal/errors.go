package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession is returned by protected operations when no session token is stored.
	// No request is sent in that case.
	ErrNoSession = errors.New("not logged in")

	// ErrNoContext is returned by chat operations before a context was selected
	ErrNoContext = errors.New("no context selected")
)

// RejectedError is the user-facing result of a login the server refused
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return "login failed"
	}
	return fmt.Sprintf("login failed: %s", e.Reason)
}

// StoreError represents errors reading or writing the session store
type StoreError struct {
	Path string
	Op   string // "open", "get", "set", "clear", "prune"
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("session store error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ConfigError represents errors loading the configuration file
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
