package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"newsline/internal/adapter/extractor"
	"newsline/internal/adapter/fetcher"
	"newsline/internal/config"
	"newsline/internal/logger"
	server "newsline/internal/transport/http"
	"newsline/internal/usecase"
	"newsline/internal/worker"
)

// App представляет основное приложение Newsline.
// Координирует работу компонентов: HTTP-сервера, монитора доступности лент
// и системы логирования. Обеспечивает graceful startup и shutdown.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	server   *http.Server
	monitor  *worker.Monitor
	stopChan chan os.Signal
	wg       sync.WaitGroup
}

// New создает и инициализирует новый экземпляр приложения Newsline.
// Выполняет настройку логгера, сборку извлекателей по настройкам лент
// и инициализацию всех зависимостей. Возвращает ошибку в случае сбоя
// любой из инициализационных процедур.
func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	slog.SetDefault(appLogger)

	httpFetcher := fetcher.NewHTTPFetcher(appLogger, cfg.App.UserAgent)

	feeds := make([]usecase.Feed, 0, len(cfg.App.Feeds))
	for _, feedCfg := range cfg.App.Feeds {
		feedExtractor, err := extractor.ForFeed(feedCfg, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to build extractor: %w", err)
		}
		feeds = append(feeds, usecase.Feed{
			Name:      feedCfg.Name,
			URL:       feedCfg.URL,
			Extractor: feedExtractor,
		})
	}

	feedNews := usecase.NewFeedNewsUseCase(httpFetcher, feeds, cfg.App.DefaultFeedName(), appLogger)

	handler := server.NewHandler(appLogger, feedNews, cfg.Server)

	router := server.NewServer(appLogger, handler)

	probeInterval, err := time.ParseDuration(cfg.App.ProbeInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to parse probe interval: %w", err)
	}
	targets := make([]worker.Target, 0, len(cfg.App.Feeds))
	for _, feedCfg := range cfg.App.Feeds {
		targets = append(targets, worker.Target{Name: feedCfg.Name, URL: feedCfg.URL})
	}
	monitor := worker.New(httpFetcher, targets, probeInterval, appLogger)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}
	return &App{
		config:   cfg,
		logger:   appLogger,
		server:   httpServer,
		monitor:  monitor,
		stopChan: make(chan os.Signal, 1),
	}, nil
}

// Run запускает приложение Newsline: стартует фоновый монитор доступности
// лент, поднимает HTTP-сервер и блокируется до получения сигнала завершения.
// Возвращает ошибку в случае неудачи при запуске сервера.
func (a *App) Run() error {
	a.logger.Info("Starting Newsline",
		slog.String("component", "app"),
		slog.Int("feed_count", len(a.config.App.Feeds)),
		slog.String("default_feed", a.config.App.DefaultFeedName()),
	)
	a.monitor.Start()
	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	defer listener.Close()
	a.logger.Info("HTTP server ready",
		slog.String("component", "server"),
		slog.String("address", listener.Addr().String()),
	)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server failed", slog.Any("error", err))
		}
	}()
	signal.Notify(a.stopChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-a.stopChan
	a.logger.Info("Shutdown signal received",
		slog.String("component", "app"),
		slog.String("signal", sig.String()),
	)
	return a.Shutdown()
}

// Shutdown выполняет graceful shutdown приложения.
// Останавливает монитор лент, затем завершает HTTP-сервер с таймаутом
// 10 секунд и ожидает завершения всех горутин. Возвращает ошибку при
// проблемах с остановкой сервера.
func (a *App) Shutdown() error {
	a.logger.Info("Starting graceful shutdown")
	a.monitor.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed", slog.Any("error", err))
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	a.wg.Wait()
	a.logger.Info("Application stopped gracefully")
	return nil
}
