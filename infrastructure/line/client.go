package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	domainLine "github.com/nextplot/nextplot-gw/domains/line"
	pkgError "github.com/nextplot/nextplot-gw/pkg/error"
)

const (
	defaultAPIBase  = "https://api.line.me"
	defaultDataBase = "https://api-data.line.me"

	httpTimeout = 15 * time.Second
)

// Client talks to the LINE Messaging API: reply delivery and content
// download. Reply tokens are single-use and time-limited by the platform;
// Reply assumes exactly one message per token and never retries.
type Client struct {
	accessToken string
	apiBase     string
	dataBase    string
	httpClient  *http.Client
}

func NewClient(accessToken string) *Client {
	return &Client{
		accessToken: accessToken,
		apiBase:     defaultAPIBase,
		dataBase:    defaultDataBase,
		httpClient:  &http.Client{Timeout: httpTimeout},
	}
}

type replyRequest struct {
	ReplyToken string                    `json:"replyToken"`
	Messages   []domainLine.ReplyMessage `json:"messages"`
}

// Reply posts a single message back through the reply endpoint.
func (c *Client) Reply(ctx context.Context, replyToken string, message domainLine.ReplyMessage) error {
	payload, err := json.Marshal(replyRequest{
		ReplyToken: replyToken,
		Messages:   []domainLine.ReplyMessage{message},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/v2/bot/message/reply", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgError.DownstreamError(fmt.Sprintf("reply request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return pkgError.DownstreamError(fmt.Sprintf("reply returned status %d: %s", resp.StatusCode, string(body)))
	}

	logrus.WithField("reply_token", replyToken).Info("[LINE] Reply sent")
	return nil
}

// FetchContent downloads the raw bytes of a message from the LINE CDN.
func (c *Client) FetchContent(ctx context.Context, messageID string) ([]byte, error) {
	url := fmt.Sprintf("%s/v2/bot/message/%s/content", c.dataBase, messageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgError.DownstreamError(fmt.Sprintf("content fetch failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgError.DownstreamError(fmt.Sprintf("content fetch returned status %d", resp.StatusCode))
	}

	return io.ReadAll(resp.Body)
}
