package fetcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch_Success(t *testing.T) {
	var gotUserAgent, gotAccept string
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("test response data"))
	}))
	defer testServer.Close()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := NewHTTPFetcher(logger, "newsline-test/1.0")

	ctx := context.Background()
	data, err := fetcher.Fetch(ctx, testServer.URL)

	require.NoError(t, err)
	assert.Equal(t, "test response data", string(data))
	assert.Equal(t, "newsline-test/1.0", gotUserAgent)
	assert.Contains(t, gotAccept, "application/rss+xml")
}

func TestHTTPFetcher_Fetch_AcceptsAny2xx(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("queued feed"))
	}))
	defer testServer.Close()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := NewHTTPFetcher(logger, "newsline-test/1.0")

	data, err := fetcher.Fetch(context.Background(), testServer.URL)

	require.NoError(t, err)
	assert.Equal(t, "queued feed", string(data))
}

func TestHTTPFetcher_Fetch_UpstreamError(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer testServer.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := NewHTTPFetcher(logger, "newsline-test/1.0")

	ctx := context.Background()
	data, err := fetcher.Fetch(ctx, testServer.URL)

	require.Error(t, err)
	assert.Nil(t, data)
	assert.Contains(t, err.Error(), "503")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
}

func TestHTTPFetcher_Fetch_NotFound(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer testServer.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := NewHTTPFetcher(logger, "newsline-test/1.0")

	ctx := context.Background()
	data, err := fetcher.Fetch(ctx, testServer.URL)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 404")
	assert.Nil(t, data)
}

func TestHTTPFetcher_InvalidURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := NewHTTPFetcher(logger, "newsline-test/1.0")

	ctx := context.Background()
	data, err := fetcher.Fetch(ctx, "invalid://url")

	assert.Error(t, err)
	assert.Nil(t, data)

	var fetchErr *FetchError
	assert.False(t, errors.As(err, &fetchErr))
}

func TestHTTPFetcher_ContextCancelled(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("slow response"))
	}))
	defer testServer.Close()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := NewHTTPFetcher(logger, "newsline-test/1.0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data, err := fetcher.Fetch(ctx, testServer.URL)

	assert.Error(t, err)
	assert.Nil(t, data)
}
