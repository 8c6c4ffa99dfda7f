package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stopwatch/pkg/stopwatch"
)

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Service   string `json:"service,omitempty"`
	Probe     string `json:"probe,omitempty"`
	TraceID   string `json:"trace_id,omitempty"`
}

func decodeEntries(t *testing.T, buf *bytes.Buffer) []logEntry {
	t.Helper()
	var entries []logEntry
	dec := json.NewDecoder(buf)
	for dec.More() {
		var e logEntry
		require.NoError(t, dec.Decode(&e))
		entries = append(entries, e)
	}
	return entries
}

func TestLoggerPrintfIncludesContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test-service")
	logger.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	ctx := WithProbe(WithCorrelationID(context.Background(), "trace-123"), "sleep")
	logger.Printf(ctx, "hello %s", "world")

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, logEntry{
		Timestamp: "2024-05-01T12:00:00Z",
		Level:     "info",
		Message:   "hello world",
		Service:   "test-service",
		Probe:     "sleep",
		TraceID:   "trace-123",
	}, entries[0])
}

func TestLoggerPrintlnOmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "")

	logger.Println(context.Background(), "message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "trace_id")
	assert.NotContains(t, entry, "probe")
	assert.NotContains(t, entry, "service")
	assert.Equal(t, "message", entry["message"])
}

func TestLoggerErrorfLevel(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "svc").Errorf(context.Background(), "failed: %d", 3)

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0].Level)
	assert.Equal(t, "failed: 3", entries[0].Message)
}

func TestNilLoggerIsNoop(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Printf(context.Background(), "ignored")
		logger.Println(context.Background(), "ignored")
		logger.Errorf(context.Background(), "ignored")
	})
}

func TestNewLoggerDefaults(t *testing.T) {
	logger := NewLogger(nil, " ")
	require.NotNil(t, logger)
	assert.Empty(t, logger.service)
	logger.Printf(context.Background(), "hello")
}

func TestContextHelpersHandleNilContext(t *testing.T) {
	assert.Equal(t, "id", CorrelationIDFromContext(WithCorrelationID(nil, " id ")))
	assert.Equal(t, "probe", ProbeFromContext(WithProbe(nil, "probe ")))
	assert.Empty(t, CorrelationIDFromContext(nil))
	assert.Empty(t, ProbeFromContext(context.Background()))
}

func TestLoggerServesAsStopwatchLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "svc")
	ctx := WithProbe(context.Background(), "noop")

	stopwatch.New(stopwatch.WithLogger(logger), stopwatch.WithContext(ctx), stopwatch.WithLabel("noop")).
		Measure(func() {})

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "noop", entries[0].Probe)
	assert.Contains(t, entries[0].Message, "stopwatch noop: took")
}

func TestLoggerFatalfExits(t *testing.T) {
	if os.Getenv("LOGGER_FATALF_SUBPROCESS") == "1" {
		NewLogger(os.Stdout, "test").Fatalf(context.Background(), "fatal")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestLoggerFatalfExits")
	cmd.Env = append(os.Environ(), "LOGGER_FATALF_SUBPROCESS=1")

	assert.Error(t, cmd.Run())
}
