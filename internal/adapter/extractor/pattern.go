package extractor

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"newsline/internal/config"
	"newsline/internal/domain"
)

// Шаблоны разбора ленты. Блок <item> ищется нежадно, поля берутся
// первым совпадением внутри блока.
var (
	itemPattern        = regexp.MustCompile(`(?s)<item(?:\s[^>]*)?>(.*?)</item>`)
	titlePattern       = regexp.MustCompile(`(?s)<title[^>]*>(.*?)</title>`)
	linkPattern        = regexp.MustCompile(`(?s)<link[^>]*>(.*?)</link>`)
	pubDatePattern     = regexp.MustCompile(`(?s)<pubDate[^>]*>(.*?)</pubDate>`)
	descriptionPattern = regexp.MustCompile(`(?s)<description[^>]*>(.*?)</description>`)
	thumbnailPattern   = regexp.MustCompile(`<media:thumbnail[^>]*\surl="([^"]*)"`)
	enclosurePattern   = regexp.MustCompile(`<enclosure[^>]*\surl="([^"]*)"`)
)

// PatternExtractor извлекает новости прямым поиском по тексту ленты,
// не разбирая XML целиком. Битая разметка не останавливает обработку:
// блоки, в которых поля не нашлись, просто не попадают в результат.
type PatternExtractor struct {
	image string
	log   *slog.Logger
}

// NewPatternExtractor создает извлекатель с заданным источником картинки:
// config.ImageThumbnail, config.ImageEnclosure или пустая строка,
// означающая перебор обоих тегов по порядку.
func NewPatternExtractor(image string, log *slog.Logger) *PatternExtractor {
	return &PatternExtractor{
		image: image,
		log:   log,
	}
}

// Extract реализует метод интерфейса ItemExtractor.
// Записи возвращаются в порядке следования блоков <item> в ленте.
func (e *PatternExtractor) Extract(ctx context.Context, data []byte) ([]domain.NewsItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blocks := itemPattern.FindAllStringSubmatch(string(data), -1)
	items := make([]domain.NewsItem, 0, len(blocks))
	dropped := 0
	for _, block := range blocks {
		item, ok := e.extractItem(block[1])
		if !ok {
			dropped++
			continue
		}
		items = append(items, item)
	}
	if dropped > 0 {
		e.log.Debug("Dropped incomplete items", slog.Int("dropped", dropped))
	}
	return items, nil
}

// extractItem собирает запись из содержимого одного блока <item>.
// Возвращает ok=false, если после обработки пуст заголовок, ссылка
// или дата публикации.
func (e *PatternExtractor) extractItem(block string) (domain.NewsItem, bool) {
	title := decodeEntities(stripEnvelope(matchField(titlePattern, block)))
	link := strings.TrimSpace(matchField(linkPattern, block))
	pubDate := strings.TrimSpace(matchField(pubDatePattern, block))
	if title == "" || link == "" || pubDate == "" {
		return domain.NewsItem{}, false
	}
	description := strings.TrimSpace(stripTags(decodeEntities(stripEnvelope(matchField(descriptionPattern, block)))))
	return domain.NewsItem{
		Title:       title,
		Link:        link,
		Description: description,
		PubDate:     pubDate,
		ImageURL:    e.extractImage(block),
	}, true
}

// extractImage ищет URL картинки в блоке согласно настройке ленты.
func (e *PatternExtractor) extractImage(block string) string {
	switch e.image {
	case config.ImageThumbnail:
		return matchField(thumbnailPattern, block)
	case config.ImageEnclosure:
		return matchField(enclosurePattern, block)
	default:
		if url := matchField(thumbnailPattern, block); url != "" {
			return url
		}
		return matchField(enclosurePattern, block)
	}
}

// matchField возвращает первую группу первого совпадения либо пустую строку.
func matchField(pattern *regexp.Regexp, block string) string {
	m := pattern.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return m[1]
}
