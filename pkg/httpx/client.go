// Package httpx provides the outbound HTTP client used for every
// collaborator call (LLM provider, web search, own API). It retries
// transient failures with exponential backoff; the backoff wait itself
// is abandoned the moment the context is cancelled.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultRetries = 3
	DefaultBackoff = 500 * time.Millisecond
)

type Client struct {
	client  *http.Client
	retries int
	backoff time.Duration
}

func New(timeout time.Duration, retries int, backoff time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if retries < 0 {
		retries = 0
	}
	if backoff == 0 {
		backoff = DefaultBackoff
	}
	return &Client{client: &http.Client{Timeout: timeout}, retries: retries, backoff: backoff}
}

// Default returns a client with the package defaults.
func Default() *Client { return New(0, DefaultRetries, 0) }

// retryable reports whether a response status is worth another
// attempt. Client errors are not: the request will not get better.
func retryable(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// DoJSON issues a request with an optional JSON body and decodes a
// 2xx response into out. Network errors and retryable statuses are
// retried up to the configured count, waiting backoff<<attempt between
// attempts. Cancellation is propagated immediately, during a request
// and during a backoff wait alike, and is never retried.
func (c *Client) DoJSON(ctx context.Context, method, url string, headers map[string]string, body any, out any) error {
	var encoded []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		encoded = b
	}

	var lastErr error
	tries := c.retries + 1
	for attempt := 0; attempt < tries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var bodyReader io.Reader
		if encoded != nil {
			bodyReader = bytes.NewReader(encoded)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		if encoded != nil && req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
		} else {
			done, err := consume(resp, out)
			if done {
				return err
			}
			lastErr = err
		}

		if attempt < tries-1 {
			select {
			case <-time.After(c.backoff << attempt):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}

// consume reads one response. done=true means the outcome is final
// (success or a non-retryable failure).
func consume(resp *http.Response, out any) (done bool, err error) {
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return true, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return true, fmt.Errorf("decode response: %w", err)
		}
		return true, nil
	}

	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	err = &StatusError{Status: resp.StatusCode, Body: string(b)}
	return !retryable(resp.StatusCode), err
}

// StatusError is a non-2xx response, body truncated to 4 KiB.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

// GetJSON is DoJSON for bodyless GETs.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	return c.DoJSON(ctx, http.MethodGet, url, headers, nil, out)
}

// PostJSON is DoJSON for JSON POSTs.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, body, out any) error {
	return c.DoJSON(ctx, http.MethodPost, url, headers, body, out)
}
