package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"newsline/internal/metrics"
)

type stubFetcher struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		calls: make(map[string]int),
		fail:  make(map[string]bool),
	}
}

func (f *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if f.fail[url] {
		return nil, errors.New("connection refused")
	}
	return []byte("<rss></rss>"), nil
}

func (f *stubFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func TestMonitor_ProbesImmediately(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := newStubFetcher()
	targets := []Target{
		{Name: "first", URL: "https://example.com/first.xml"},
		{Name: "second", URL: "https://example.com/second.xml"},
	}

	monitor := New(fetcher, targets, time.Hour, log)
	monitor.Start()
	defer monitor.Stop()

	assert.Eventually(t, func() bool {
		return fetcher.callCount(targets[0].URL) >= 1 && fetcher.callCount(targets[1].URL) >= 1
	}, time.Second, 5*time.Millisecond, "first probe cycle must run without waiting for the interval")
}

func TestMonitor_UpdatesAvailabilityGauge(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := newStubFetcher()
	fetcher.fail["https://example.com/down.xml"] = true
	targets := []Target{
		{Name: "probe-up", URL: "https://example.com/up.xml"},
		{Name: "probe-down", URL: "https://example.com/down.xml"},
	}

	monitor := New(fetcher, targets, time.Hour, log)
	monitor.Start()
	defer monitor.Stop()

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.FeedUp.WithLabelValues("probe-up")) == 1 &&
			fetcher.callCount(targets[1].URL) >= 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.FeedUp.WithLabelValues("probe-down")))
}

func TestMonitor_RepeatsOnInterval(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := newStubFetcher()
	targets := []Target{{Name: "main", URL: "https://example.com/rss.xml"}}

	monitor := New(fetcher, targets, 10*time.Millisecond, log)
	monitor.Start()
	defer monitor.Stop()

	assert.Eventually(t, func() bool {
		return fetcher.callCount(targets[0].URL) >= 3
	}, time.Second, 5*time.Millisecond)
}
