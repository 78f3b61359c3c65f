package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Возможные значения поля image у ленты: из какого тега брать картинку новости.
// Пустое значение означает автоматический выбор: сначала media:thumbnail,
// затем enclosure.
const (
	ImageThumbnail = "thumbnail"
	ImageEnclosure = "enclosure"
)

// Возможные значения поля parser у ленты: каким извлекателем разбирать текст.
// Пустое значение означает разбор по текстовым шаблонам.
const (
	ParserPattern = "pattern"
	ParserGofeed  = "gofeed"
)

// Config представляет основную конфигурацию приложения Newsline.
// Содержит настройки сервера, логгера и списка RSS-лент.
type Config struct {
	Server ServerConfig `json:"server"`
	Logger LoggerConfig `json:"logger"`
	App    AppConfig    `json:"app"`
}

// ServerConfig содержит настройки HTTP-сервера приложения.
// Включает адрес для прослушивания и параметры кеширования ответов
// промежуточными узлами (CDN, обратный прокси).
type ServerConfig struct {
	Address                   string `json:"address"`
	CacheMaxAge               int    `json:"cache_max_age"`
	CacheStaleWhileRevalidate int    `json:"cache_stale_while_revalidate"`
}

// LoggerConfig содержит настройки системы логирования.
// Определяет уровень детализации логов (debug, info, warn, error).
type LoggerConfig struct {
	Level string `json:"level"`
}

// FeedConfig представляет конфигурацию отдельной RSS-ленты.
// Помимо имени и URL задаёт источник картинки (image) и извлекатель (parser).
type FeedConfig struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Image  string `json:"image"`
	Parser string `json:"parser"`
}

// AppConfig содержит настройки бизнес-логики приложения.
// Включает строку User-Agent для обращений к источникам, список лент,
// имя ленты по умолчанию для эндпоинта /api/news и интервал фоновой
// проверки доступности источников.
type AppConfig struct {
	UserAgent     string       `json:"user_agent"`
	DefaultFeed   string       `json:"default_feed"`
	ProbeInterval string       `json:"probe_interval"`
	Feeds         []FeedConfig `json:"feeds"`
}

// DefaultFeedName возвращает имя ленты для запросов без явного имени.
// Если лента по умолчанию не задана, используется первая из списка.
func (c *AppConfig) DefaultFeedName() string {
	if c.DefaultFeed != "" {
		return c.DefaultFeed
	}
	if len(c.Feeds) > 0 {
		return c.Feeds[0].Name
	}
	return ""
}

// Load загружает конфигурацию из JSON-файла по указанному пути.
// Возвращает ошибку если файл не существует, недоступен для чтения
// или содержит некорректный JSON. Использует значения по умолчанию
// для незаданных полей, затем применяет переменные окружения.
func Load(configPath string) (*Config, error) {
	cfg := New()
	fileData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := json.Unmarshal(fileData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from file %s: %w", configPath, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// New создает новый экземпляр Config с значениями по умолчанию.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Address:                   ":8080",
			CacheMaxAge:               300,
			CacheStaleWhileRevalidate: 900,
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		App: AppConfig{
			UserAgent:     "newsline/1.0",
			ProbeInterval: "15m",
			Feeds:         []FeedConfig{},
		},
	}
}

// applyEnv накладывает переменные окружения поверх загруженной конфигурации.
// Перед чтением окружения подхватывает файл .env, если он есть рядом.
// NEWSLINE_FEED_URL подменяет URL ленты по умолчанию, что позволяет
// гонять приложение против локальной заглушки вместо живого источника.
func (c *Config) applyEnv() {
	_ = godotenv.Load()
	if v := os.Getenv("NEWSLINE_ADDRESS"); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv("NEWSLINE_LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	if v := os.Getenv("NEWSLINE_USER_AGENT"); v != "" {
		c.App.UserAgent = v
	}
	if v := os.Getenv("NEWSLINE_FEED_URL"); v != "" {
		name := c.App.DefaultFeedName()
		for i := range c.App.Feeds {
			if c.App.Feeds[i].Name == name {
				c.App.Feeds[i].URL = v
			}
		}
	}
}

// Validate проверяет корректность конфигурации.
// Проверяет непустой список лент, корректность их URL, допустимость
// значений image и parser, а также что лента по умолчанию существует.
// Возвращает ошибку с описанием первой найденной проблемы.
func (c *Config) Validate() error {
	if c.App.UserAgent == "" {
		return fmt.Errorf("app.user_agent is not set")
	}
	if len(c.App.Feeds) == 0 {
		return fmt.Errorf("app.feeds must not be empty")
	}
	seen := make(map[string]bool, len(c.App.Feeds))
	for _, feed := range c.App.Feeds {
		if feed.Name == "" {
			return fmt.Errorf("feed name cannot be empty for url: %s", feed.URL)
		}
		if seen[feed.Name] {
			return fmt.Errorf("duplicate feed name: %s", feed.Name)
		}
		seen[feed.Name] = true
		if _, err := url.ParseRequestURI(feed.URL); err != nil {
			return fmt.Errorf("invalid url in app.feeds: %s", feed.URL)
		}
		switch feed.Image {
		case "", ImageThumbnail, ImageEnclosure:
		default:
			return fmt.Errorf("unknown image source %q for feed %s", feed.Image, feed.Name)
		}
		switch feed.Parser {
		case "", ParserPattern, ParserGofeed:
		default:
			return fmt.Errorf("unknown parser %q for feed %s", feed.Parser, feed.Name)
		}
	}
	if c.App.DefaultFeed != "" && !seen[c.App.DefaultFeed] {
		return fmt.Errorf("default feed %s is not in app.feeds", c.App.DefaultFeed)
	}
	interval, err := time.ParseDuration(c.App.ProbeInterval)
	if err != nil {
		return fmt.Errorf("invalid app.probe_interval: %s", c.App.ProbeInterval)
	}
	if interval <= 0 {
		return fmt.Errorf("app.probe_interval must be positive: %s", c.App.ProbeInterval)
	}
	if c.Server.CacheMaxAge < 0 || c.Server.CacheStaleWhileRevalidate < 0 {
		return fmt.Errorf("cache lifetimes must not be negative")
	}
	return nil
}
