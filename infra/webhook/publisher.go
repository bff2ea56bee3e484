// Package webhook posts scheduler events to an HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kilianp07/tower/auth"
)

// Config defines the target endpoint. OAuth, when its token_url is set,
// authenticates every request with client credentials.
type Config struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Timeout time.Duration     `json:"timeout"`
	OAuth   auth.Conf         `json:"oauth"`
}

// Publisher sends each event as a JSON POST body. The event kind is set in
// the X-Tower-Event header.
type Publisher struct {
	url     string
	headers map[string]string
	client  *http.Client
	creds   *auth.ClientCred
}

// NewPublisher validates cfg and returns a Publisher.
func NewPublisher(cfg Config) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("webhook: url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	p := &Publisher{url: cfg.URL, headers: cfg.Headers, client: &http.Client{Timeout: timeout}}
	if cfg.OAuth.Enabled() {
		p.creds = auth.NewClientCred(cfg.OAuth)
	}
	return p, nil
}

// Publish posts payload. A 401 response drops the cached token and retries
// once.
func (p *Publisher) Publish(ctx context.Context, kind string, payload []byte) error {
	status, err := p.post(ctx, kind, payload)
	if err == nil && status == http.StatusUnauthorized && p.creds != nil {
		p.creds.Invalidate()
		status, err = p.post(ctx, kind, payload)
	}
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("webhook %s: unexpected status %d", kind, status)
	}
	return nil
}

func (p *Publisher) post(ctx context.Context, kind string, payload []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tower-Event", kind)
	for k, v := range p.headers {
		req.Header.Set(k, v)
	}
	if p.creds != nil {
		if err := p.creds.SetAuthHeader(req); err != nil {
			return 0, err
		}
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func (p *Publisher) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
