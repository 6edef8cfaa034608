package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	prevLevel := GetLogLevel()
	t.Cleanup(func() {
		SetLogLevel(prevLevel)
		SetTagFilter("")
	})
	return &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestShouldLogTag(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		tag      string
		expected bool
	}{
		{name: "no filter", filter: "", tag: "executor", expected: true},
		{name: "included", filter: "executor,http", tag: "executor", expected: true},
		{name: "not included", filter: "executor", tag: "http", expected: false},
		{name: "sub tag included", filter: "http", tag: "http:ratelimit", expected: true},
		{name: "excluded", filter: "-executor", tag: "executor", expected: false},
		{name: "exclusion only keeps others", filter: "-executor", tag: "http", expected: true},
		{name: "exclusion wins", filter: "http,-http:ratelimit", tag: "http:ratelimit", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetTagFilter(tt.filter)
			defer SetTagFilter("")
			assert.Equal(t, tt.expected, shouldLogTag(tt.tag))
		})
	}
}

func TestLogger_LevelGate(t *testing.T) {
	buf := capture(t)
	SetLogLevel(LogLevelWarn)

	log := New("executor")
	log.Infof("hidden %d", 1)
	assert.Empty(t, buf.String())

	log.Warnf("shown %d", 2)
	entry := lastEntry(t, buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown 2", entry["message"])
	assert.Equal(t, "executor", entry["tag"])
}

func TestLogger_SuccessIgnoresLevel(t *testing.T) {
	buf := capture(t)
	SetLogLevel(LogLevelError)

	New("cli").Success("ready")
	entry := lastEntry(t, buf)
	assert.Equal(t, "ready", entry["message"])
	assert.Equal(t, true, entry["success"])
}

func TestLogger_WithFields(t *testing.T) {
	buf := capture(t)
	SetLogLevel(LogLevelInfo)

	New("executor").With(map[string]any{"query": "events"}).PrintError("query failed", errors.New("boom"))
	entry := lastEntry(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "events", entry["query"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "query failed", entry["message"])
}

func TestLogger_FilteredTagIsSilent(t *testing.T) {
	buf := capture(t)
	SetTagFilter("-noisy")

	log := New("noisy")
	log.Error("dropped")
	log.With(map[string]any{"k": "v"}).Success("dropped too")
	assert.Empty(t, buf.String())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected int
		ok       bool
	}{
		{"1", LogLevelError, true},
		{"warn", LogLevelWarn, true},
		{"INFO", LogLevelInfo, true},
		{" debug ", LogLevelDebug, true},
		{"verbose", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, ok := ParseLogLevel(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, level)
		})
	}
}
