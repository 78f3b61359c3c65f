package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer создает и настраивает HTTP-маршрутизатор приложения.
// Регистрирует эндпоинты API, метрики и проверку состояния.
// Добавляет middleware для идентификаторов запросов, логирования,
// метрик и CORS.
func NewServer(log *slog.Logger, h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/news", h.getNews)
	mux.HandleFunc("GET /api/feeds/{feed}", h.getFeedNews)
	mux.HandleFunc("GET /api/health", h.healthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())
	var handler http.Handler = mux
	handler = metricsMiddleware()(handler)
	handler = loggingMiddleware(log)(handler)
	handler = requestIDMiddleware()(handler)
	handler = corsMiddleware()(handler)
	return handler
}

// corsMiddleware создает middleware для обработки CORS (Cross-Origin Resource Sharing).
// Разрешает запросы с любого origin и обрабатывает preflight OPTIONS запросы.
// API только читает данные, поэтому из методов открыты GET и OPTIONS.
func corsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
