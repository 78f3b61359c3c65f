package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"

	"newsline/internal/config"
	"newsline/internal/domain"
)

// GofeedExtractor извлекает новости через полноценный XML-разбор
// библиотекой gofeed. В отличие от PatternExtractor требует корректной
// разметки: синтаксическая ошибка в ленте приводит к ошибке целиком.
// Правила включения записей и очистки описания те же. XML-сущности
// вне CDATA разворачивает сам разборщик, поэтому заголовок повторно
// не декодируется.
type GofeedExtractor struct {
	parser *gofeed.Parser
	image  string
	log    *slog.Logger
}

// NewGofeedExtractor создает извлекатель на основе gofeed с заданным
// источником картинки, см. NewPatternExtractor.
func NewGofeedExtractor(image string, log *slog.Logger) *GofeedExtractor {
	return &GofeedExtractor{
		parser: gofeed.NewParser(),
		image:  image,
		log:    log,
	}
}

// Extract реализует метод интерфейса ItemExtractor.
func (e *GofeedExtractor) Extract(ctx context.Context, data []byte) ([]domain.NewsItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	feed, err := e.parser.ParseString(string(data))
	if err != nil {
		e.log.Error(
			"Error parsing feed",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	items := make([]domain.NewsItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		pubDate := strings.TrimSpace(entry.Published)
		if title == "" || link == "" || pubDate == "" {
			continue
		}
		items = append(items, domain.NewsItem{
			Title:       title,
			Link:        link,
			Description: strings.TrimSpace(stripTags(decodeEntities(entry.Description))),
			PubDate:     pubDate,
			ImageURL:    e.entryImage(entry),
		})
	}
	return items, nil
}

// entryImage ищет URL картинки в записи согласно настройке ленты.
func (e *GofeedExtractor) entryImage(entry *gofeed.Item) string {
	switch e.image {
	case config.ImageThumbnail:
		return thumbnailURL(entry)
	case config.ImageEnclosure:
		return enclosureURL(entry)
	default:
		if url := thumbnailURL(entry); url != "" {
			return url
		}
		return enclosureURL(entry)
	}
}

// thumbnailURL достаёт URL из расширения media:thumbnail, которое gofeed
// складывает в общую карту расширений.
func thumbnailURL(entry *gofeed.Item) string {
	media, ok := entry.Extensions["media"]
	if !ok {
		return ""
	}
	for _, ext := range media["thumbnail"] {
		if url := ext.Attrs["url"]; url != "" {
			return url
		}
	}
	return ""
}

// enclosureURL возвращает URL первого вложения с непустым адресом.
func enclosureURL(entry *gofeed.Item) string {
	for _, enc := range entry.Enclosures {
		if enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}
