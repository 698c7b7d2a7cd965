package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// UserAgent identifies the aggregator to upstream sites.
	UserAgent = "MalayalamNewsBot/1.0 (+https://github.com/DeejuSivadas/Malayalam-News)"

	maxResponseBytes = 2 << 20 // 2MB
)

// Kind selects the content-negotiation headers for a fetch.
type Kind int

const (
	KindHTML Kind = iota
	KindFeed
)

// Error is a typed fetch failure carrying the URL and the status or timeout reason.
type Error struct {
	URL        string
	StatusCode int
	Timeout    bool
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("fetch %s: timeout", e.URL)
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Client performs one bounded fetch per call. The timeout is enforced here
// with a per-request context rather than relying on transport defaults, so a
// hung upstream can never exceed the configured bound.
type Client struct {
	http    *http.Client
	timeout time.Duration
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{},
		timeout: timeout,
	}
}

// Timeout returns the per-request bound the client enforces.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Get fetches a URL and returns the raw body text, or a *Error on
// non-success status or timeout.
func (c *Client) Get(ctx context.Context, rawurl string, kind Kind) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return "", &Error{URL: rawurl, Err: err}
	}
	req.Header.Set("User-Agent", UserAgent)
	switch kind {
	case KindFeed:
		req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8")
	default:
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &Error{
			URL:     rawurl,
			Timeout: errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded,
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{URL: rawurl, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &Error{
			URL:     rawurl,
			Timeout: errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded,
			Err:     err,
		}
	}
	return string(body), nil
}
