package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coinone-mcp/internal/domain"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	defaultTimeout      = 10 * time.Second
	maxResponseBodySize = 8 << 20 // 8MiB
)

// Cache stores raw upstream payloads. Implementations own expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
}

type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Cache      Cache
}

type httpGetter struct {
	baseURL string
	client  *http.Client
}

func newHTTPGetter(cfg ClientConfig, defaultBaseURL string) httpGetter {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return httpGetter{baseURL: baseURL, client: client}
}

// get issues a single GET with no retry. Transport errors, HTTP errors and
// empty bodies are reported as domain.ErrFetchFailed.
func (g httpGetter) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := g.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", domain.ErrFetchFailed, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrFetchFailed, path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: GET %s: status %d", domain.ErrFetchFailed, path, resp.StatusCode)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: GET %s: empty response body", domain.ErrFetchFailed, path)
	}
	return trimmed, nil
}

func tracerOrNoop(tracer trace.Tracer) trace.Tracer {
	if tracer == nil {
		return noop.NewTracerProvider().Tracer("provider")
	}
	return tracer
}

func pathSegment(s string) string {
	return url.PathEscape(strings.TrimSpace(s))
}
