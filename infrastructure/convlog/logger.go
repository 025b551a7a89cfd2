package convlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	domainRecord "github.com/nextplot/nextplot-gw/domains/record"
)

// Logger appends records to a newline-delimited JSON file, one object per
// line. It is the local audit trail next to the remote table; the two are
// written independently and may diverge when one write fails.
type Logger struct {
	path    string
	enabled bool
	now     func() time.Time

	mu sync.Mutex
}

func NewLogger(path string, enabled bool) *Logger {
	return &Logger{path: path, enabled: enabled, now: time.Now}
}

type logLine struct {
	TS     string                    `json:"ts"`
	Record domainRecord.StoredRecord `json:"record"`
	Status string                    `json:"status,omitempty"`
	Notes  []string                  `json:"notes,omitempty"`
}

// Append writes one line. Failures are logged and swallowed so a full disk
// never breaks event processing.
func (l *Logger) Append(rec domainRecord.StoredRecord, report *domainRecord.StatusReport) {
	if !l.enabled {
		return
	}

	entry := logLine{
		TS:     l.now().UTC().Format(time.RFC3339),
		Record: rec,
	}
	if report != nil {
		entry.Status = report.Status
		entry.Notes = report.Notes
	}

	data, err := json.Marshal(entry)
	if err != nil {
		logrus.WithError(err).Warn("[CONVLOG] Append failed: marshal")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logrus.WithError(err).Warn("[CONVLOG] Append failed: mkdir")
			return
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logrus.WithError(err).Warn("[CONVLOG] Append failed: open")
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		logrus.WithError(err).Warn("[CONVLOG] Append failed: write")
	}
}
