package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	pkgError "github.com/nextplot/nextplot-gw/pkg/error"
)

const httpTimeout = 15 * time.Second

// Client covers the two Supabase surfaces this service needs: row inserts
// through PostgREST and raw objects through the Storage API.
type Client struct {
	baseURL     string
	anonKey     string
	serviceRole string
	httpClient  *http.Client
}

func NewClient(baseURL, anonKey, serviceRole string) *Client {
	return &Client{
		baseURL:     baseURL,
		anonKey:     anonKey,
		serviceRole: serviceRole,
		httpClient:  &http.Client{Timeout: httpTimeout},
	}
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceRole)
}

// InsertRow posts a row to a PostgREST table and returns the inserted
// representation.
func (c *Client) InsertRow(ctx context.Context, table string, payload any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgError.DownstreamError(fmt.Sprintf("insert request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, pkgError.DownstreamError(fmt.Sprintf("insert into %s returned status %d: %s", table, resp.StatusCode, string(respBody)))
	}

	// PostgREST answers with an array of inserted rows.
	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil || len(rows) == 0 {
		return nil, nil
	}

	logrus.WithFields(logrus.Fields{
		"table": table,
		"id":    rows[0]["id"],
	}).Info("[SUPABASE] Row inserted")
	return rows[0], nil
}

// Upload stores raw bytes at bucket/path with the given content type.
func (c *Client) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgError.DownstreamError(fmt.Sprintf("upload request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return pkgError.DownstreamError(fmt.Sprintf("upload to %s/%s returned status %d: %s", bucket, path, resp.StatusCode, string(respBody)))
	}

	return nil
}

// SignPath requests a time-limited signed URL for a private object. The API
// returns a relative signed path which is prefixed with the storage base.
func (c *Client) SignPath(ctx context.Context, bucket, path string, expiresIn int) (string, error) {
	body, err := json.Marshal(map[string]int{"expiresIn": expiresIn})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", c.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", pkgError.DownstreamError(fmt.Sprintf("sign request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", pkgError.DownstreamError(fmt.Sprintf("sign for %s/%s returned status %d", bucket, path, resp.StatusCode))
	}

	var result struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", pkgError.DownstreamError(fmt.Sprintf("sign response undecodable: %v", err))
	}
	if result.SignedURL == "" {
		return "", pkgError.DownstreamError("sign response missing signedURL")
	}

	logrus.WithFields(logrus.Fields{
		"bucket":     bucket,
		"path":       path,
		"expires_in": expiresIn,
	}).Info("[SUPABASE] Signed URL generated")
	return c.baseURL + "/storage/v1" + result.SignedURL, nil
}

// EnsureBucket creates the bucket when it does not exist yet. Best-effort
// bootstrap; callers treat failures as non-fatal.
func (c *Client) EnsureBucket(ctx context.Context, bucket string, public bool) error {
	listURL := c.baseURL + "/storage/v1/bucket"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return err
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err == nil {
		var buckets []struct {
			Name string `json:"name"`
		}
		decodeErr := json.NewDecoder(resp.Body).Decode(&buckets)
		resp.Body.Close()
		if decodeErr == nil {
			for _, b := range buckets {
				if b.Name == bucket {
					logrus.WithField("bucket", bucket).Debug("[SUPABASE] Bucket exists")
					return nil
				}
			}
		}
	}

	body, err := json.Marshal(map[string]any{"name": bucket, "public": public})
	if err != nil {
		return err
	}
	createReq, err := http.NewRequestWithContext(ctx, http.MethodPost, listURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setAuthHeaders(createReq)
	createReq.Header.Set("Content-Type", "application/json")

	createResp, err := c.httpClient.Do(createReq)
	if err != nil {
		return pkgError.DownstreamError(fmt.Sprintf("bucket create request failed: %v", err))
	}
	defer createResp.Body.Close()

	if createResp.StatusCode < 200 || createResp.StatusCode >= 300 {
		return pkgError.DownstreamError(fmt.Sprintf("bucket create returned status %d", createResp.StatusCode))
	}

	logrus.WithFields(logrus.Fields{
		"bucket": bucket,
		"public": public,
	}).Info("[SUPABASE] Bucket created")
	return nil
}
