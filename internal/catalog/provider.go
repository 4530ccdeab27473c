package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	DefaultEndpoint  = "https://empllo.com/api/v1"
	DefaultTimeout   = 15 * time.Second
	defaultUserAgent = "job-finder"
	maxPayloadBytes  = 8 << 20
)

// Provider returns the raw job listing payload.
type Provider interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPProvider issues one unauthenticated GET per Fetch. No pagination
// parameters are sent and no retries are attempted.
type HTTPProvider struct {
	Endpoint  string
	Client    *http.Client
	UserAgent string
}

func NewHTTPProvider(endpoint string, timeout time.Duration) *HTTPProvider {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPProvider{
		Endpoint:  endpoint,
		Client:    &http.Client{Timeout: timeout},
		UserAgent: defaultUserAgent,
	}
}

func (p *HTTPProvider) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Endpoint, nil)
	if err != nil {
		return nil, &FetchError{Endpoint: p.Endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(p.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Endpoint: p.Endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Endpoint: p.Endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes+1))
	if err != nil {
		return nil, &FetchError{Endpoint: p.Endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > maxPayloadBytes {
		return nil, &FetchError{Endpoint: p.Endpoint, StatusCode: resp.StatusCode, Err: errors.New("payload exceeds 8 MiB")}
	}
	return body, nil
}

// StaticProvider serves a fixed payload.
type StaticProvider []byte

func (p StaticProvider) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Endpoint: "static", Err: err}
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out, nil
}

// FileProvider reads the payload from a local fixture file on every Fetch.
type FileProvider struct {
	Path string
}

func (p FileProvider) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Endpoint: p.Path, Err: err}
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, &FetchError{Endpoint: p.Path, Err: err}
	}
	return data, nil
}
