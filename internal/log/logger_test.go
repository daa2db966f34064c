package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestWithCorrelationID_UsesContextValue(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

	ctx := context.WithValue(context.Background(), CorrelatedIDKey, "abc-123")
	logger.WithCorrelationID(ctx).Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "abc-123", record[string(CorrelatedIDKey)])
}

func TestNewLoggerWithWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelWarn)

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestGetLoggerInstanceFromContext(t *testing.T) {
	injected := NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo)
	ctx := context.WithValue(context.Background(), LoggerKeyForContext, injected)
	assert.Same(t, injected, GetLoggerInstanceFromContext(ctx, nil))

	fallback := NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo)
	got := GetLoggerInstanceFromContext(context.Background(), fallback)
	assert.NotNil(t, got)
	assert.NotSame(t, fallback, got)

	//nolint:staticcheck // nil context is part of the contract
	assert.Same(t, fallback, GetLoggerInstanceFromContext(nil, fallback))
}
