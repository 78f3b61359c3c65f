package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)
	return path
}

func TestLoad_Success(t *testing.T) {
	path := writeTempConfig(t, `{
		"server": {
			"address": ":9000",
			"cache_max_age": 60,
			"cache_stale_while_revalidate": 120
		},
		"logger": {"level": "debug"},
		"app": {
			"user_agent": "newsline-test/0.1",
			"default_feed": "world",
			"feeds": [
				{"name": "world", "url": "https://example.com/world/rss.xml", "image": "thumbnail"},
				{"name": "tech", "url": "https://example.com/tech/rss.xml", "image": "enclosure", "parser": "gofeed"}
			]
		}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, 60, cfg.Server.CacheMaxAge)
	assert.Equal(t, 120, cfg.Server.CacheStaleWhileRevalidate)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "newsline-test/0.1", cfg.App.UserAgent)
	require.Len(t, cfg.App.Feeds, 2)
	assert.Equal(t, "world", cfg.App.Feeds[0].Name)
	assert.Equal(t, ImageThumbnail, cfg.App.Feeds[0].Image)
	assert.Equal(t, ParserGofeed, cfg.App.Feeds[1].Parser)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	path := writeTempConfig(t, `{
		"app": {
			"feeds": [{"name": "main", "url": "https://example.com/rss.xml"}]
		}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 300, cfg.Server.CacheMaxAge)
	assert.Equal(t, 900, cfg.Server.CacheStaleWhileRevalidate)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "newsline/1.0", cfg.App.UserAgent)
	assert.Equal(t, "15m", cfg.App.ProbeInterval)
	assert.Equal(t, "main", cfg.App.DefaultFeedName())
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.json")
	require.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{ invalid json }`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeTempConfig(t, `{
		"app": {
			"default_feed": "world",
			"feeds": [
				{"name": "world", "url": "https://example.com/world/rss.xml"},
				{"name": "tech", "url": "https://example.com/tech/rss.xml"}
			]
		}
	}`)
	t.Setenv("NEWSLINE_ADDRESS", ":7070")
	t.Setenv("NEWSLINE_LOG_LEVEL", "warn")
	t.Setenv("NEWSLINE_FEED_URL", "http://127.0.0.1:9999/fixture.xml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "http://127.0.0.1:9999/fixture.xml", cfg.App.Feeds[0].URL)
	assert.Equal(t, "https://example.com/tech/rss.xml", cfg.App.Feeds[1].URL)
}

func TestValidate_NoFeeds(t *testing.T) {
	cfg := New()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.feeds")
}

func TestValidate_InvalidURL(t *testing.T) {
	cfg := New()
	cfg.App.Feeds = []FeedConfig{{Name: "bad", URL: "not-a-url"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid url")
}

func TestValidate_EmptyFeedName(t *testing.T) {
	cfg := New()
	cfg.App.Feeds = []FeedConfig{{URL: "https://example.com/rss.xml"}}
	require.Error(t, cfg.Validate())
}

func TestValidate_DuplicateFeedName(t *testing.T) {
	cfg := New()
	cfg.App.Feeds = []FeedConfig{
		{Name: "main", URL: "https://example.com/a.xml"},
		{Name: "main", URL: "https://example.com/b.xml"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate feed name")
}

func TestValidate_UnknownImageSource(t *testing.T) {
	cfg := New()
	cfg.App.Feeds = []FeedConfig{{Name: "main", URL: "https://example.com/rss.xml", Image: "og"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown image source")
}

func TestValidate_UnknownParser(t *testing.T) {
	cfg := New()
	cfg.App.Feeds = []FeedConfig{{Name: "main", URL: "https://example.com/rss.xml", Parser: "sax"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser")
}

func TestValidate_InvalidProbeInterval(t *testing.T) {
	cfg := New()
	cfg.App.Feeds = []FeedConfig{{Name: "main", URL: "https://example.com/rss.xml"}}
	cfg.App.ProbeInterval = "soon"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe_interval")

	cfg.App.ProbeInterval = "0s"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestValidate_UnknownDefaultFeed(t *testing.T) {
	cfg := New()
	cfg.App.DefaultFeed = "missing"
	cfg.App.Feeds = []FeedConfig{{Name: "main", URL: "https://example.com/rss.xml"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default feed")
}

func TestDefaultFeedName(t *testing.T) {
	app := AppConfig{Feeds: []FeedConfig{{Name: "first"}, {Name: "second"}}}
	assert.Equal(t, "first", app.DefaultFeedName())

	app.DefaultFeed = "second"
	assert.Equal(t, "second", app.DefaultFeedName())

	var empty AppConfig
	assert.Equal(t, "", empty.DefaultFeedName())
}
