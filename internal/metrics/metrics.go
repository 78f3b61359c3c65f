// Пакет metrics объявляет счётчики и гистограммы приложения.
// Все коллекторы регистрируются в реестре Prometheus по умолчанию
// при инициализации пакета и отдаются наружу эндпоинтом /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal считает обработанные HTTP-запросы по маршруту и коду ответа.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsline_http_requests_total",
		Help: "Total HTTP requests handled, by route and status code.",
	}, []string{"route", "code"})

	// HTTPRequestDuration измеряет длительность обработки запроса по маршрутам.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "newsline_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// FeedFetchesTotal считает обращения к источникам по ленте и результату:
	// success, fetch_error или extract_error.
	FeedFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsline_feed_fetches_total",
		Help: "Total feed fetch attempts, by feed and result.",
	}, []string{"feed", "result"})

	// FeedItemsExtracted фиксирует число записей, извлечённых за один запрос ленты.
	FeedItemsExtracted = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "newsline_feed_items_extracted",
		Help:    "Number of news items extracted per feed request.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	}, []string{"feed"})

	// FeedUp показывает результат последней фоновой проверки источника:
	// 1 если лента ответила успешно, 0 если нет.
	FeedUp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "newsline_feed_up",
		Help: "Whether the last availability probe of the feed succeeded.",
	}, []string{"feed"})
)
