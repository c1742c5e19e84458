// logger/logger_test.go
package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level LogLevel) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLogger(zap.New(core), level), logs
}

// TestParseLogLevelFromString tests the conversion from string to LogLevel
func TestParseLogLevelFromString(t *testing.T) {
	tests := []struct {
		levelStr      string
		expectedLevel LogLevel
	}{
		{"LogLevelDebug", LogLevelDebug},
		{"LogLevelInfo", LogLevelInfo},
		{"LogLevelWarn", LogLevelWarn},
		{"LogLevelError", LogLevelError},
		{"Invalid", LogLevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.levelStr, func(t *testing.T) {
			assert.Equal(t, tt.expectedLevel, ParseLogLevelFromString(tt.levelStr))
		})
	}
}

// TestDefaultLogger_SetLevel tests the SetLevel method of defaultLogger
func TestDefaultLogger_SetLevel(t *testing.T) {
	dLogger := NewLogger(zap.NewNop(), LogLevelInfo)

	dLogger.SetLevel(LogLevelWarn)
	assert.Equal(t, LogLevelWarn, dLogger.GetLogLevel())
}

// TestDefaultLogger_LevelFiltering checks that messages below the configured level are dropped.
func TestDefaultLogger_LevelFiltering(t *testing.T) {
	log, logs := newObservedLogger(LogLevelWarn)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	err := log.Error("error message")

	require.Error(t, err)
	assert.Equal(t, "error message", err.Error())
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "warn message", logs.All()[0].Message)
	assert.Equal(t, "error message", logs.All()[1].Message)
}

// TestDefaultLogger_With tests that contextual fields are carried to subsequent entries.
func TestDefaultLogger_With(t *testing.T) {
	log, logs := newObservedLogger(LogLevelInfo)

	scoped := log.With(zap.String("version", "v1.0"))
	assert.Equal(t, LogLevelInfo, scoped.GetLogLevel())
	scoped.Info("parsing metadata")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "v1.0", logs.All()[0].ContextMap()["version"])
}

func TestDefaultLogger_StructuredEvents(t *testing.T) {
	log, logs := newObservedLogger(LogLevelDebug)

	log.LogRequestStart("request_start", "id-1", "GET", "https://graph.microsoft.com/v1.0/me", nil)
	log.LogRequestEnd("request_end", "GET", "https://graph.microsoft.com/v1.0/me", 200, time.Second)
	log.LogRetryAttempt("retry_attempt", "GET", "https://graph.microsoft.com/v1.0/me", 1, "transient", time.Second, errors.New("boom"))
	log.LogRateLimiting("rate_limited", "GET", "https://graph.microsoft.com/v1.0/me", "2", 2*time.Second)
	log.LogError("request_error", "GET", "https://graph.microsoft.com/v1.0/me", 404, "Not Found", errors.New("missing"), "{}")
	log.LogMetadataParsed("metadata_parsed", "v1.0", 3, 5)

	require.Equal(t, 6, logs.Len())
	entries := logs.All()
	assert.Equal(t, "request_start", entries[0].ContextMap()["event"])
	assert.Equal(t, int64(200), entries[1].ContextMap()["status_code"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "2", entries[3].ContextMap()["retry_after"])
	assert.Equal(t, "missing", entries[4].ContextMap()["error_message"])
	assert.Equal(t, int64(5), entries[5].ContextMap()["entity_types"])
}

func TestBuildLogger(t *testing.T) {
	log := BuildLogger(LogLevelDebug, LogOutputJSON, "\t")
	assert.Equal(t, LogLevelDebug, log.GetLogLevel())

	pretty := BuildLogger(LogLevelWarn, LogOutputPretty, " | ")
	assert.Equal(t, LogLevelWarn, pretty.GetLogLevel())
}
