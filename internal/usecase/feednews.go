package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newsline/internal/domain"
	"newsline/internal/metrics"
)

// ErrUnknownFeed возвращается при запросе ленты, которой нет в конфигурации.
var ErrUnknownFeed = errors.New("unknown feed")

// Feed связывает настроенную ленту с её извлекателем.
type Feed struct {
	Name      string
	URL       string
	Extractor ItemExtractor
}

// FeedNewsUseCase реализует бизнес-логику выдачи новостей: загрузку ленты
// по имени и извлечение записей. Состояния между запросами нет, каждый
// вызов заново обращается к источнику и заново разбирает ответ.
type FeedNewsUseCase struct {
	fetcher     FeedFetcher
	feeds       map[string]Feed
	defaultFeed string
	log         *slog.Logger
}

// NewFeedNewsUseCase создает новый экземпляр UseCase для выдачи новостей.
// Принимает зависимости: загрузчик, список лент с извлекателями,
// имя ленты по умолчанию и логгер.
func NewFeedNewsUseCase(
	fetcher FeedFetcher,
	feeds []Feed,
	defaultFeed string,
	log *slog.Logger,
) *FeedNewsUseCase {
	index := make(map[string]Feed, len(feeds))
	for _, feed := range feeds {
		index[feed.Name] = feed
	}
	return &FeedNewsUseCase{
		fetcher:     fetcher,
		feeds:       index,
		defaultFeed: defaultFeed,
		log:         log,
	}
}

// GetNews выполняет полный цикл выдачи: загрузку ленты и извлечение записей.
// Пустое имя означает ленту по умолчанию, для неизвестного имени возвращается
// ErrUnknownFeed. Измеряет время выполнения, логирует этапы процесса
// и считает метрики обращений к источнику.
func (uc *FeedNewsUseCase) GetNews(ctx context.Context, feedName string) ([]domain.NewsItem, error) {
	if feedName == "" {
		feedName = uc.defaultFeed
	}
	feed, ok := uc.feeds[feedName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeed, feedName)
	}

	start := time.Now()
	log := uc.log.With(
		slog.String("component", "feed-news"),
		slog.String("feed", feed.Name),
		slog.String("url", feed.URL),
	)

	log.Info("Feed request started")

	data, err := uc.fetcher.Fetch(ctx, feed.URL)
	if err != nil {
		metrics.FeedFetchesTotal.WithLabelValues(feed.Name, "fetch_error").Inc()
		log.Error("Feed fetch failed",
			slog.String("stage", "fetch"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("fetch failed for %s: %w", feed.Name, err)
	}

	log.Debug("Feed fetched successfully",
		slog.String("stage", "fetch"),
		slog.Int("bytes", len(data)),
	)

	items, err := feed.Extractor.Extract(ctx, data)
	if err != nil {
		metrics.FeedFetchesTotal.WithLabelValues(feed.Name, "extract_error").Inc()
		log.Error("Feed extraction failed",
			slog.String("stage", "extract"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("extract failed for %s: %w", feed.Name, err)
	}

	metrics.FeedFetchesTotal.WithLabelValues(feed.Name, "success").Inc()
	metrics.FeedItemsExtracted.WithLabelValues(feed.Name).Observe(float64(len(items)))

	log.Info("Feed request completed",
		slog.Int("items_found", len(items)),
		slog.Duration("duration", time.Since(start)),
	)

	return items, nil
}
