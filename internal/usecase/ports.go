package usecase

import (
	"context"

	"newsline/internal/domain"
)

// FeedFetcher определяет интерфейс для загрузки сырого текста RSS-ленты
// из внешнего источника. Возвращает тело ответа целиком.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ItemExtractor определяет интерфейс для извлечения новостей из текста ленты.
// Реализации сами решают, насколько строго относиться к разметке.
type ItemExtractor interface {
	Extract(ctx context.Context, data []byte) ([]domain.NewsItem, error)
}
