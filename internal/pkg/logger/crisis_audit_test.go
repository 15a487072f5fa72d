package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staystrong-chat-be/pkg/safety"
)

func TestCrisisAuditLogger_WritesOneRecordPerEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log.json")
	isolated := NewIsolatedLogger(path)
	audit := NewCrisisAuditLogger(isolated)

	audit.RecordCrisis(safety.CrisisEvent{
		Time:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Trigger: "want to die",
		Text:    "I want to die",
		Phase:   safety.PhaseNone,
	})
	_ = isolated.Sync()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		lines = append(lines, rec)
	}
	require.Len(t, lines, 1)

	details, ok := lines[0]["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "CRISIS_AUDIT", lines[0]["module"])
	assert.Equal(t, "want to die", details["trigger"])
	assert.Equal(t, "I want to die", details["text"])
	assert.Equal(t, "none", details["phase"])
	assert.Equal(t, "2025-03-01T10:00:00Z", details["detected_at"])
}

func TestNewNop_DoesNotPanic(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Info("TEST", "hello", nil)
		l.Error("TEST", "boom", map[string]interface{}{"error": "x"})
	})
}
