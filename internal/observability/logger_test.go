package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "", 0)

	l.LogStage("Berlin", "fetch_weather", "ok")
	l.LogError("Berlin", "fetch_weather", errors.New("timeout"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var evt struct {
		Type EventType         `json:"type"`
		City string            `json:"city"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &evt))
	assert.Equal(t, EventTypeError, evt.Type)
	assert.Equal(t, "Berlin", evt.City)
	assert.Equal(t, "timeout", evt.Data["error"])
}

func TestLogger_MirrorsLLMEventsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "llm.jsonl")
	l := NewLogger(&bytes.Buffer{}, path, 0)

	l.LogStage("Oslo", "validate_input", "ok")
	l.LogLLM("Oslo", "gpt-test", "prompt", "wear a coat")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), "wear a coat")
}

func TestLogger_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm.jsonl")
	l := NewLogger(&bytes.Buffer{}, path, 10)

	l.LogLLM("Oslo", "m", "p", "first")
	l.LogLLM("Oslo", "m", "p", "second")

	old, err := os.ReadFile(path + ".old")
	require.NoError(t, err)
	assert.Contains(t, string(old), "first")

	cur, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(cur), "second")
	assert.NotContains(t, string(cur), "first")
}

func TestDivider(t *testing.T) {
	assert.Equal(t, strings.Repeat("=", 20), Divider("", 20))
	assert.Equal(t, "======== 北京 ========", Divider("北京", 20))

	long := Divider("Llanfairpwllgwyngyll", 10)
	assert.True(t, strings.HasPrefix(long, "=== Llanfair"))
}
