package storage

import "context"

// ITableStore inserts rows into the remote PostgREST tables.
type ITableStore interface {
	InsertRow(ctx context.Context, table string, payload any) (map[string]any, error)
}

// IObjectStore talks to the remote storage API: raw object upload, signed
// URL issuance and bucket bootstrap.
type IObjectStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	SignPath(ctx context.Context, bucket, path string, expiresIn int) (string, error)
	EnsureBucket(ctx context.Context, bucket string, public bool) error
}
