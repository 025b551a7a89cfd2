package record

import (
	"context"
	"encoding/json"
)

// StoredRecord is the normalized row written to the remote messages table
// and appended to the local conversation log. TextContent carries either the
// raw message text (text events) or the signed URL / storage path (media
// events), never both.
type StoredRecord struct {
	UserID      string          `json:"user_id"`
	EventType   string          `json:"event_type"`
	TextContent string          `json:"text_content,omitempty"`
	Raw         json.RawMessage `json:"raw"`
}

// StatusReport is the derived completion state of a record (see
// usecase.CheckFinalize). It travels with the local audit line only; the
// remote table keeps the original four-column shape.
type StatusReport struct {
	Status string   `json:"status"`
	Notes  []string `json:"notes"`
}

// IRecordPersister writes a record best-effort to both stores. Neither
// failure propagates; the two writes are not transactional with each other.
type IRecordPersister interface {
	Persist(ctx context.Context, rec StoredRecord, report *StatusReport)
}

// IConversationLogger appends a record to the local append-only NDJSON log.
type IConversationLogger interface {
	Append(rec StoredRecord, report *StatusReport)
}
