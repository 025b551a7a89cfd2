package error

import "net/http"

// DownstreamError wraps remote HTTP failures (LINE, storage, PostgREST).
// Internal only: event processing logs it and degrades to a canned reply,
// it never crosses the webhook response.
type DownstreamError string

func (err DownstreamError) Error() string {
	return string(err)
}

func (err DownstreamError) ErrCode() string {
	return "DOWNSTREAM_ERROR"
}

func (err DownstreamError) StatusCode() int {
	return http.StatusBadGateway
}
