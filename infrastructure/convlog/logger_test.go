package convlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainRecord "github.com/nextplot/nextplot-gw/domains/record"
)

func fixedClock() time.Time {
	return time.Date(2025, 1, 19, 10, 30, 0, 0, time.UTC)
}

func TestAppend_WritesOneLinePerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "conversations.ndjson")
	logger := NewLogger(path, true)
	logger.now = fixedClock

	logger.Append(domainRecord.StoredRecord{
		UserID:      "U1",
		EventType:   "text",
		TextContent: "WC-007 โฉนด 8899",
		Raw:         json.RawMessage(`{"type":"message"}`),
	}, &domainRecord.StatusReport{Status: "finalized", Notes: []string{"Ready to finalize"}})
	logger.Append(domainRecord.StoredRecord{UserID: "U2", EventType: "image"}, nil)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, lines, 2)

	assert.Equal(t, "2025-01-19T10:30:00Z", lines[0]["ts"])
	assert.Equal(t, "finalized", lines[0]["status"])
	record := lines[0]["record"].(map[string]any)
	assert.Equal(t, "U1", record["user_id"])
	assert.Equal(t, "WC-007 โฉนด 8899", record["text_content"])

	// Without a report the status keys are omitted entirely.
	assert.NotContains(t, lines[1], "status")
	assert.NotContains(t, lines[1], "notes")
}

func TestAppend_DisabledWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.ndjson")
	logger := NewLogger(path, false)

	logger.Append(domainRecord.StoredRecord{UserID: "U1"}, nil)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAppend_UnwritablePathDoesNotPanic(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path makes the open fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "taken"), 0o755))
	logger := NewLogger(filepath.Join(dir, "taken"), true)

	assert.NotPanics(t, func() {
		logger.Append(domainRecord.StoredRecord{UserID: "U1"}, nil)
	})
}
