package extractor

import (
	"context"
	"fmt"
	"log/slog"

	"newsline/internal/config"
	"newsline/internal/domain"
)

// ItemExtractor объединяет реализации разбора текста ленты в записи новостей.
type ItemExtractor interface {
	Extract(ctx context.Context, data []byte) ([]domain.NewsItem, error)
}

// ForFeed возвращает извлекатель, соответствующий настройкам ленты.
// Пустое значение parser означает разбор по текстовым шаблонам.
func ForFeed(feed config.FeedConfig, log *slog.Logger) (ItemExtractor, error) {
	switch feed.Parser {
	case "", config.ParserPattern:
		return NewPatternExtractor(feed.Image, log), nil
	case config.ParserGofeed:
		return NewGofeedExtractor(feed.Image, log), nil
	default:
		return nil, fmt.Errorf("unknown parser %q for feed %s", feed.Parser, feed.Name)
	}
}
