// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil performs network retrieval with retry, timeout, and
// alternate-host fallback on name-resolution failure.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// BackoffUnit controls the linear backoff between retry attempts
// (attempt n waits n × BackoffUnit). Tests override this to avoid real
// sleeps.
var BackoffUnit = 2 * time.Second

// fallbackHosts maps a host to alternates serving the same path prefix.
// Each alternate gets its own retry budget after the primary is exhausted.
var fallbackHosts = map[string][]string{
	"rss.arxiv.org":    {"export.arxiv.org"},
	"export.arxiv.org": {"arxiv.org"},
}

// FailureKind classifies a transport failure so the retry policy can
// switch on the tag instead of error text.
type FailureKind int

const (
	FailOther FailureKind = iota
	FailTimeout
	FailRefused
	FailNameResolution
	FailHTTPStatus
)

// String returns the tag name for log output.
func (k FailureKind) String() string {
	switch k {
	case FailTimeout:
		return "timeout"
	case FailRefused:
		return "refused"
	case FailNameResolution:
		return "name-resolution"
	case FailHTTPStatus:
		return "http-status"
	}
	return "other"
}

// resolverPhrases are known resolver-failure wordings, matched
// case-insensitively when the error carries no structured cause.
var resolverPhrases = []string{
	"name or service not known",
	"failed to resolve",
	"getaddrinfo failed",
	"no such host",
}

// Classify inspects an error for an embedded resolver or syscall cause,
// falling back to pattern-matching the error text. The string match is a
// best-effort secondary classifier only.
func Classify(err error) FailureKind {
	if err == nil {
		return FailOther
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailNameResolution
	}
	var stErr *statusError
	if errors.As(err, &stErr) {
		return FailHTTPStatus
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" && !opErr.Timeout() {
		if strings.Contains(opErr.Err.Error(), "connection refused") {
			return FailRefused
		}
	}

	text := strings.ToLower(err.Error())
	for _, phrase := range resolverPhrases {
		if strings.Contains(text, phrase) {
			return FailNameResolution
		}
	}
	if strings.Contains(text, "connection refused") {
		return FailRefused
	}
	return FailOther
}

// FetchError aggregates every per-candidate failure after the retry budget
// is exhausted across all candidate URLs.
type FetchError struct {
	URL      string
	Attempts []string
	// DNSFailure is set when any attempt was diagnosed as a
	// name-resolution failure; the message then carries a hint.
	DNSFailure bool
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("failed to fetch %s after %d attempts: %s",
		e.URL, len(e.Attempts), strings.Join(e.Attempts, "; "))
	if e.DNSFailure {
		msg += " (name resolution failed: check DNS settings or network connectivity)"
	}
	return msg
}

// IsNameResolution reports whether err is, or aggregates, a
// name-resolution failure. Callers use it to escalate instead of skipping.
func IsNameResolution(err error) bool {
	var ferr *FetchError
	if errors.As(err, &ferr) {
		return ferr.DNSFailure
	}
	return Classify(err) == FailNameResolution
}

// statusError carries a non-2xx response so Classify can tag it.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.code, e.url)
}

// candidateURLs returns the request URL followed by the same path on each
// known fallback host.
func candidateURLs(rawURL string) []string {
	urls := []string{rawURL}
	u, err := url.Parse(rawURL)
	if err != nil {
		return urls
	}
	for _, alt := range fallbackHosts[u.Hostname()] {
		v := *u
		v.Host = alt
		urls = append(urls, v.String())
	}
	return urls
}

// Fetch retrieves a URL body as text. Each candidate URL gets its own
// retry budget with linear backoff (2 s × attempt number); a
// name-resolution failure abandons the current host immediately and moves
// to the next candidate. On total exhaustion it returns a *FetchError
// aggregating every per-candidate failure.
func Fetch(ctx context.Context, client *http.Client, rawURL string, cfg types.HTTPConfig, log zerolog.Logger) (string, error) {
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}

	ferr := &FetchError{URL: rawURL}
	for _, candidate := range candidateURLs(rawURL) {
		body, err := fetchOne(ctx, client, candidate, retries, cfg, ferr, log)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", ferr
}

// fetchOne runs the retry loop against a single candidate URL, recording
// each failure into ferr.
func fetchOne(ctx context.Context, client *http.Client, rawURL string, retries int, cfg types.HTTPConfig, ferr *FetchError, log zerolog.Logger) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= retries+1; attempt++ {
		body, err := doRequest(ctx, client, rawURL, cfg)
		if err == nil {
			return body, nil
		}
		lastErr = err

		kind := Classify(err)
		log.Warn().
			Str("url", rawURL).
			Int("attempt", attempt).
			Int("of", retries+1).
			Str("kind", kind.String()).
			Err(err).
			Msg("fetch attempt failed")
		ferr.Attempts = append(ferr.Attempts, fmt.Sprintf("%s: %v", rawURL, err))

		// Name resolution failures are not retryable against the same
		// host; switch to the next candidate URL instead.
		if kind == FailNameResolution {
			ferr.DNSFailure = true
			return "", err
		}

		if attempt <= retries {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * BackoffUnit):
			}
		}
	}
	return "", lastErr
}

func doRequest(ctx context.Context, client *http.Client, rawURL string, cfg types.HTTPConfig) (string, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &statusError{code: resp.StatusCode, url: rawURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}
