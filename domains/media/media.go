package media

import (
	"context"
	"errors"
)

// Stage failures of the ingest pipeline. Each maps to a distinct canned
// user-facing reply; the router matches them with errors.Is.
var (
	ErrDownload = errors.New("media: download from LINE failed")
	ErrUpload   = errors.New("media: upload to storage failed")
)

// IngestResult identifies the stored object. SignedURL is empty when the
// signing step failed; the bare Path is still usable for persistence.
type IngestResult struct {
	SignedURL string
	Path      string
}

// IMediaUsecase downloads a message's content, uploads it to object storage
// under a dated path and requests a time-limited signed URL.
type IMediaUsecase interface {
	Ingest(ctx context.Context, messageID, messageType string) (IngestResult, error)
}
