package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BatchSize bounds how many items travel in one classification request.
const BatchSize = 10

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	backoffBase       = 500 * time.Millisecond
)

// ErrProxyRequest is a non-transient failure (4xx other than 429). The
// caller falls back to cached or static data and shows a notice.
type ErrProxyRequest struct {
	error
	StatusCode int
}

func NewErrProxyRequest(statusCode int) *ErrProxyRequest {
	return &ErrProxyRequest{
		error:      fmt.Errorf("proxy request rejected with status %d", statusCode),
		StatusCode: statusCode,
	}
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	CacheTTL   time.Duration
	Now        func() time.Time
}

// Client talks to the AI/pricing proxies. Failures never propagate into
// core computation; callers treat every error as "use the fallback path".
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	cache      *Cache
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 15 * time.Minute
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		cache:      NewCache(cfg.CacheTTL, cfg.Now),
	}
}

func (c *Client) Cache() *Cache {
	return c.cache
}

type WorkloadItem struct {
	VMID       string `json:"vmId"`
	VMName     string `json:"vmName"`
	GuestOS    string `json:"guestOS,omitempty"`
	Annotation string `json:"annotation,omitempty"`
}

type WorkloadClassification struct {
	VMID         string `json:"vmId"`
	WorkloadType string `json:"workloadType"`
	Confidence   string `json:"confidence,omitempty"`
}

// ClassifyWorkloads sends items in batches of BatchSize and merges the
// results. A failed batch fails the whole call; partial results are not
// returned.
func (c *Client) ClassifyWorkloads(ctx context.Context, items []WorkloadItem) ([]WorkloadClassification, error) {
	result := []WorkloadClassification{}

	for start := 0; start < len(items); start += BatchSize {
		end := start + BatchSize
		if end > len(items) {
			end = len(items)
		}

		batch, err := c.classifyBatch(ctx, items[start:end])
		if err != nil {
			return nil, err
		}
		result = append(result, batch...)
	}

	return result, nil
}

func (c *Client) classifyBatch(ctx context.Context, items []WorkloadItem) ([]WorkloadClassification, error) {
	payload, err := json.Marshal(map[string]any{"items": items})
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, "/v1/classify", payload)
	if err != nil {
		return nil, err
	}

	// Model output may wrap the JSON in prose or markdown fences.
	doc, err := ExtractJSON(string(body))
	if err != nil {
		return nil, errors.Wrap(err, "parsing classification response")
	}

	var classifications []WorkloadClassification
	if err := json.Unmarshal([]byte(doc), &classifications); err != nil {
		return nil, errors.Wrap(err, "decoding classification response")
	}
	return classifications, nil
}

// Insights asks for a free-text summary over the metrics bundle. Results
// are cached by payload digest.
func (c *Client) Insights(ctx context.Context, payload []byte) (string, error) {
	key := "insights:" + fmt.Sprintf("%x", payload)
	if cached, ok := c.cache.Get(key); ok {
		return string(cached), nil
	}

	body, err := c.post(ctx, "/v1/insights", payload)
	if err != nil {
		return "", err
	}

	c.cache.Set(key, body)
	return string(body), nil
}

// post retries transient failures (network errors, 5xx, 429) with
// exponential backoff plus jitter. Non-transient statuses surface
// immediately as a typed error.
func (c *Client) post(ctx context.Context, path string, payload []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffBase * time.Duration(1<<(attempt-1))
			backoff += time.Duration(rand.Int63n(int64(backoff / 2)))
			zap.S().Named("proxy").Debugf("retrying %s after %s (attempt %d)", path, backoff, attempt)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = errors.Wrap(err, "proxy request failed")
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if readErr != nil {
				return nil, readErr
			}
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("proxy returned status %d", resp.StatusCode)
		default:
			return nil, NewErrProxyRequest(resp.StatusCode)
		}
	}

	return nil, lastErr
}
