package resolver

import (
	"context"
	"io"
	"net/http"
	"time"
)

const probeUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Prober determines whether a URL is live. Network failures are evidence of
// a dead link, never errors to propagate.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProbeClient overrides the HTTP client, mainly for tests.
func WithProbeClient(client *http.Client) ProberOption {
	return func(p *Prober) { p.client = client }
}

// NewProber creates a prober with the given per-request timeout.
func NewProber(timeout time.Duration, opts ...ProberOption) *Prober {
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	p := &Prober{
		client: &http.Client{
			Transport: newSSRFSafeTransport(),
		},
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe reports whether the URL answers with a status in [200,400). It
// issues a HEAD first and falls back to GET, since some servers reject HEAD.
func (p *Prober) Probe(ctx context.Context, rawURL string) bool {
	ok, _ := p.probe(ctx, rawURL)
	return ok
}

// ProbeOrLooksLikeProduct additionally accepts a URL answering 403 or 503
// when it structurally matches a known product-detail page shape. Several
// distributors bot-block head-less probes on pages that are known good.
func (p *Prober) ProbeOrLooksLikeProduct(ctx context.Context, rawURL string) bool {
	ok, status := p.probe(ctx, rawURL)
	if ok {
		return true
	}
	if (status == http.StatusForbidden || status == http.StatusServiceUnavailable) && LooksLikeProductPage(rawURL) {
		return true
	}
	return false
}

func (p *Prober) probe(ctx context.Context, rawURL string) (bool, int) {
	parsed, err := validateProbeURL(normalizeURL(rawURL))
	if err != nil {
		return false, 0
	}
	target := parsed.String()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status, err := p.request(ctx, http.MethodHead, target)
	if err == nil && statusLive(status) {
		probesTotal.WithLabelValues("head", "ok").Inc()
		return true, status
	}

	getStatus, getErr := p.request(ctx, http.MethodGet, target)
	if getErr == nil {
		status = getStatus
	}
	if getErr == nil && statusLive(getStatus) {
		probesTotal.WithLabelValues("get", "ok").Inc()
		return true, status
	}
	probesTotal.WithLabelValues("get", "fail").Inc()
	return false, status
}

func (p *Prober) request(ctx context.Context, method, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", probeUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if method == http.MethodGet {
		// Drain a little so keep-alive connections can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
	}
	return resp.StatusCode, nil
}

func statusLive(status int) bool {
	return status >= 200 && status < 400
}
