package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// FetchError описывает ответ источника со статусом вне диапазона 2xx.
// Сохраняет числовой код и строку статуса, чтобы обе детали
// дошли до клиента в теле ошибки API.
type FetchError struct {
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("unexpected status code: %s", e.Status)
}

// HTTPFetcher реализует интерфейс FeedFetcher для загрузки RSS-лент по HTTP.
// Представляется источникам настроенной строкой User-Agent: часть лент
// отдаёт урезанную разметку клиентам без узнаваемого агента.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	log       *slog.Logger
}

// NewHTTPFetcher создает новый экземпляр HTTPFetcher для загрузки RSS-лент.
// Использует стандартный HTTP-клиент и переданный логгер для записи событий.
func NewHTTPFetcher(log *slog.Logger, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    http.DefaultClient,
		userAgent: userAgent,
		log:       log,
	}
}

// Fetch выполняет один HTTP-запрос и возвращает тело ответа целиком.
// Принимает контекст для контроля времени выполнения и отмены операции.
// Успехом считается любой статус 2xx, для остальных возвращается *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	log := f.log.With(slog.String("url", url))
	log.Info("Fetching URL")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("Failed to create HTTP request", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")
	resp, err := f.client.Do(req)
	if err != nil {
		log.Error(
			"HTTP request failed",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to fetch url %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error(
			"Unexpected status code",
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, &FetchError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", slog.Any("error", err))
		return nil, fmt.Errorf("failed to read feed body from url %s: %w", url, err)
	}
	log.Info("Successfully fetched URL", slog.Int("bytes", len(body)))
	return body, nil
}
