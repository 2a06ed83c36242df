// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func init() {
	// Use a tiny backoff so tests finish quickly.
	BackoffUnit = time.Millisecond
}

func testHTTPCfg() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   5 * time.Second,
		UserAgent: "test/0.1",
		Retries:   2,
	}
}

func TestFetchSuccess(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "test/0.1", r.Header.Get("User-Agent"))
		fmt.Fprint(w, "hello")
	}))
	defer ts.Close()

	body, err := Fetch(context.Background(), ts.Client(), ts.URL, testHTTPCfg(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "hello", body)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchRetriesThenSucceeds(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "recovered")
	}))
	defer ts.Close()

	body, err := Fetch(context.Background(), ts.Client(), ts.URL, testHTTPCfg(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "recovered", body)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchExhaustsRetries(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.Client(), ts.URL, testHTTPCfg(), zerolog.Nop())
	require.Error(t, err)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "retries + 1 attempts")
	assert.Len(t, ferr.Attempts, 3)
	assert.False(t, ferr.DNSFailure)
	assert.Contains(t, ferr.Error(), "HTTP 503")
}

// dnsTransport simulates a resolver failure for every request.
type dnsTransport struct {
	calls int32
}

func (d *dnsTransport) RoundTrip(*http.Request) (*http.Response, error) {
	atomic.AddInt32(&d.calls, 1)
	return nil, &net.DNSError{Err: "no such host", Name: "rss.arxiv.org", IsNotFound: true}
}

func TestFetchDNSFailureSkipsRetriesAndFallsBack(t *testing.T) {
	rt := &dnsTransport{}
	client := &http.Client{Transport: rt}

	// rss.arxiv.org has one fallback host, so exactly two attempts: no
	// retries against a host that does not resolve.
	_, err := Fetch(context.Background(), client, "https://rss.arxiv.org/atom/cs.LG", testHTTPCfg(), zerolog.Nop())
	require.Error(t, err)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.True(t, ferr.DNSFailure)
	assert.Contains(t, ferr.Error(), "name resolution failed")
	assert.Equal(t, int32(2), atomic.LoadInt32(&rt.calls))
	assert.True(t, IsNameResolution(err))
}

func TestCandidateURLs(t *testing.T) {
	urls := candidateURLs("https://rss.arxiv.org/atom/astro-ph.CO")
	require.Len(t, urls, 2)
	assert.Equal(t, "https://rss.arxiv.org/atom/astro-ph.CO", urls[0])
	assert.Equal(t, "https://export.arxiv.org/atom/astro-ph.CO", urls[1])

	urls = candidateURLs("https://example.com/feed")
	assert.Equal(t, []string{"https://example.com/feed"}, urls)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, FailOther},
		{"dns error", &net.DNSError{Err: "no such host"}, FailNameResolution},
		{"wrapped dns error", fmt.Errorf("fetch: %w", &net.DNSError{Err: "x"}), FailNameResolution},
		{"resolver phrasing", errors.New("dial: Name or service not known"), FailNameResolution},
		{"getaddrinfo phrasing", errors.New("GETADDRINFO FAILED somewhere"), FailNameResolution},
		{"failed to resolve phrasing", errors.New("proxy: failed to resolve upstream"), FailNameResolution},
		{"refused phrasing", errors.New("dial tcp 127.0.0.1:1: connection refused"), FailRefused},
		{"http status", &statusError{code: 404, url: "u"}, FailHTTPStatus},
		{"other", errors.New("boom"), FailOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestFetchContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch(ctx, ts.Client(), ts.URL, testHTTPCfg(), zerolog.Nop())
	require.Error(t, err)
}
