package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"newsline/internal/config"
	"newsline/internal/domain"
	"newsline/internal/usecase"
)

type newsGetter interface {
	GetNews(ctx context.Context, feedName string) ([]domain.NewsItem, error)
}

// errorResponse - тело ответа при ошибке: общее сообщение и детали причины.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type Handler struct {
	log          *slog.Logger
	newsGetter   newsGetter
	cacheControl string
}

func NewHandler(log *slog.Logger, getter newsGetter, cfg config.ServerConfig) *Handler {
	return &Handler{
		log:        log,
		newsGetter: getter,
		cacheControl: fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d",
			cfg.CacheMaxAge, cfg.CacheStaleWhileRevalidate),
	}
}

// getNews - хендлер для эндпоинта GET /api/news, отдаёт ленту по умолчанию
func (h *Handler) getNews(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, "")
}

// getFeedNews - хендлер для эндпоинта GET /api/feeds/{feed}
func (h *Handler) getFeedNews(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, r.PathValue("feed"))
}

func (h *Handler) serveFeed(w http.ResponseWriter, r *http.Request, feedName string) {
	const op = "transport.http/serveFeed"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", requestIDFrom(r.Context())),
	)

	items, err := h.newsGetter.GetNews(r.Context(), feedName)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownFeed) {
			log.Warn("Unknown feed requested", slog.String("feed", feedName))
			respondWithError(w, http.StatusNotFound, "Unknown feed", err.Error())
			return
		}
		log.Error("Failed to get news", slog.Any("error", err))
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch news", err.Error())
		return
	}

	w.Header().Set("Cache-Control", h.cacheControl)
	respondWithJSON(w, http.StatusOK, items)
}

// healthCheck - хендлер для проверки состояния сервиса
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Вспомогательные функции для ответов
func respondWithError(w http.ResponseWriter, code int, message, details string) {
	respondWithJSON(w, code, errorResponse{Error: message, Details: details})
}
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
