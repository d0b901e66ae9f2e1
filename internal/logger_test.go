package internal

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetLogLevel(t *testing.T) {
	originalLevel := logLevel
	defer SetLogLevel(originalLevel)

	SetLogLevel(LogLevelDebug)
	assert.Equal(t, LogLevelDebug, logLevel)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	SetLogLevel(LogLevelError)
	assert.Equal(t, LogLevelError, logLevel)
	assert.Equal(t, log.ErrorLevel, logger.GetLevel())
}

func TestSetVerbose(t *testing.T) {
	originalLevel := logLevel
	defer SetLogLevel(originalLevel)

	SetVerbose(true)
	assert.Equal(t, LogLevelDebug, logLevel)

	SetVerbose(false)
	assert.Equal(t, LogLevelInfo, logLevel)
}

func TestLogFunctionsRespectLevel(t *testing.T) {
	originalLevel := logLevel
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer func() {
		SetLogOutput(os.Stderr)
		SetLogLevel(originalLevel)
	}()

	SetLogLevel(LogLevelWarn)
	LogError("test error message")
	LogWarn("test warning message")
	LogInfo("test info message")
	LogDebug("test debug message")

	out := buf.String()
	assert.Contains(t, out, "test error message")
	assert.Contains(t, out, "test warning message")
	assert.NotContains(t, out, "test info message")
	assert.NotContains(t, out, "test debug message")
}

func TestLogLevels(t *testing.T) {
	assert.Less(t, LogLevelError, LogLevelWarn)
	assert.Less(t, LogLevelWarn, LogLevelInfo)
	assert.Less(t, LogLevelInfo, LogLevelDebug)
}
