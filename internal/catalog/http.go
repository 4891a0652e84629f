package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/conn-castle/modsync/internal/messages"
)

const (
	defaultTimeout    = 30 * time.Second
	maxResponseBytes  = int64(8 * 1024 * 1024)
	queryRetryCount   = 1
	queryRetryBackoff = 250 * time.Millisecond
)

var catalogSleep = sleepContext

// HTTPClient queries the catalog over HTTP.
type HTTPClient struct {
	// URL is the catalog endpoint; identifiers are appended as mod[i]=<id> query parameters.
	URL  string
	HTTP *http.Client
}

// NewHTTPClient returns a client for endpoint with the given request timeout.
// An empty endpoint selects DefaultURL and a non-positive timeout a default of 30s.
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{URL: endpoint, HTTP: &http.Client{Timeout: timeout}}
}

// Query fetches entries for identifiers in a single request.
// An empty identifier list returns an empty map without contacting the catalog.
func (c *HTTPClient) Query(ctx context.Context, identifiers []string) (map[string]Entry, error) {
	if len(identifiers) == 0 {
		return map[string]Entry{}, nil
	}
	endpoint := QueryURL(c.URL, identifiers)
	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	for attempt := 0; attempt <= queryRetryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		resp, err := client.Do(req)
		if err != nil {
			if shouldRetry(attempt, err, 0) {
				if err := catalogSleep(ctx, queryRetryBackoff); err != nil {
					return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
				}
				continue
			}
			return nil, fmt.Errorf(messages.CatalogRequestFailedFmt, ErrUnavailable, endpoint, err)
		}
		if resp.StatusCode != http.StatusOK {
			status := resp.StatusCode
			statusText := resp.Status
			_ = resp.Body.Close()
			if shouldRetry(attempt, nil, status) {
				if err := catalogSleep(ctx, queryRetryBackoff); err != nil {
					return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
				}
				continue
			}
			return nil, fmt.Errorf(messages.CatalogUnexpectedStatusFmt, ErrUnavailable, endpoint, statusText)
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
		_ = resp.Body.Close()
		if readErr != nil {
			if shouldRetry(attempt, readErr, 0) {
				if err := catalogSleep(ctx, queryRetryBackoff); err != nil {
					return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
				}
				continue
			}
			return nil, fmt.Errorf(messages.CatalogRequestFailedFmt, ErrUnavailable, endpoint, readErr)
		}
		if int64(len(body)) > maxResponseBytes {
			return nil, fmt.Errorf(messages.CatalogResponseTooLargeFmt, ErrUnavailable, endpoint, maxResponseBytes)
		}
		return decodeEntries(body)
	}
	return nil, fmt.Errorf(messages.CatalogRequestFailedFmt, ErrUnavailable, endpoint, errors.New("retry budget exhausted"))
}

// QueryURL appends identifiers to base as mod[0]=a&mod[1]=b.
func QueryURL(base string, identifiers []string) string {
	var b strings.Builder
	b.WriteString(base)
	switch {
	case !strings.Contains(base, "?"):
		b.WriteByte('?')
	case !strings.HasSuffix(base, "?") && !strings.HasSuffix(base, "&"):
		b.WriteByte('&')
	}
	for i, id := range identifiers {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString("mod[")
		b.WriteString(strconv.Itoa(i))
		b.WriteString("]=")
		b.WriteString(url.QueryEscape(id))
	}
	return b.String()
}

// decodeEntries parses the identifier-keyed response. The catalog answers
// with an empty JSON array when it knows none of the identifiers.
func decodeEntries(body []byte) (map[string]Entry, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		return map[string]Entry{}, nil
	}
	entries := make(map[string]Entry)
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf(messages.CatalogDecodeFailedFmt, ErrUnavailable, err)
	}
	return entries, nil
}

func shouldRetry(attempt int, err error, statusCode int) bool {
	if attempt >= queryRetryCount {
		return false
	}
	if err != nil {
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return statusCode >= 500 && statusCode <= 599
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
