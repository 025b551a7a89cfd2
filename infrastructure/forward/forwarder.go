package forward

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	pkgError "github.com/nextplot/nextplot-gw/pkg/error"
)

// Forwarder relays raw webhook bodies to an upstream processor. The call is
// bounded by the configured timeout; on timeout or non-2xx the caller falls
// back to processing the batch locally instead of failing the request.
type Forwarder struct {
	url        string
	httpClient *http.Client
}

func NewForwarder(url string, timeout time.Duration) *Forwarder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Forwarder{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether an upstream URL is configured at all.
func (f *Forwarder) Enabled() bool {
	return f != nil && f.url != ""
}

// Forward relays the exact raw body plus the original signature header so
// the upstream can verify it independently.
func (f *Forwarder) Forward(ctx context.Context, body []byte, signature string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-line-signature", signature)
	req.Header.Set("x-forwarded-from", "nextplot-gw")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return pkgError.DownstreamError(fmt.Sprintf("forward request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgError.DownstreamError(fmt.Sprintf("forward returned status %d", resp.StatusCode))
	}

	logrus.WithField("url", f.url).Info("[FORWARD] Webhook relayed upstream")
	return nil
}
