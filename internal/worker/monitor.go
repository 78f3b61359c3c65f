package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"newsline/internal/metrics"
)

// Fetcher определяет интерфейс загрузки ленты по URL.
// Используется для внедрения зависимости в монитор.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Target описывает ленту, доступность которой отслеживает монитор.
type Target struct {
	Name string
	URL  string
}

// Monitor реализует фоновую проверку доступности источников.
// Периодически опрашивает каждую ленту и выставляет метрику
// newsline_feed_up, не вмешиваясь в обработку клиентских запросов.
type Monitor struct {
	fetcher  Fetcher
	targets  []Target
	interval time.Duration
	log      *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

// New создает монитор доступности лент.
// Принимает загрузчик, список лент, интервал опроса и логгер.
func New(fetcher Fetcher, targets []Target, interval time.Duration, log *slog.Logger) *Monitor {
	return &Monitor{
		fetcher:  fetcher,
		targets:  targets,
		interval: interval,
		log:      log,
	}
}

// Start запускает монитор в отдельной горутине.
// Первый цикл опроса выполняется сразу, не дожидаясь интервала.
func (m *Monitor) Start() {
	m.ctx, m.cancel = context.WithCancel(context.Background())
	go m.run()
}

// Stop останавливает монитор путем отмены контекста.
func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

// run выполняет основной цикл монитора.
// Опрашивает ленты по расписанию и реагирует на сигнал остановки.
func (m *Monitor) run() {
	m.log.Info("Feed monitor started",
		slog.String("component", "worker"),
		slog.String("interval", m.interval.String()),
		slog.Int("feed_count", len(m.targets)),
	)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	m.probeAll()
	for {
		select {
		case <-ticker.C:
			m.probeAll()
		case <-m.ctx.Done():
			m.log.Info("Feed monitor stopping", slog.String("component", "worker"))
			return
		}
	}
}

// probeAll опрашивает все ленты параллельно.
// Измеряет время цикла, считает доступные и недоступные источники
// atomic-счетчиками и синхронизируется через WaitGroup.
func (m *Monitor) probeAll() {
	start := time.Now()
	var wg sync.WaitGroup
	var upCount int64
	var downCount int64
	for _, target := range m.targets {
		wg.Add(1)
		go func(t Target) {
			defer wg.Done()
			if m.ctx.Err() != nil {
				return
			}
			if m.probe(t) {
				atomic.AddInt64(&upCount, 1)
			} else {
				atomic.AddInt64(&downCount, 1)
			}
		}(target)
	}
	wg.Wait()
	m.log.Info("Feed probe cycle completed",
		slog.String("component", "worker"),
		slog.Int("up", int(upCount)),
		slog.Int("down", int(downCount)),
		slog.Duration("duration", time.Since(start)),
	)
}

// probe проверяет доступность одной ленты и обновляет метрику.
// Возвращает true, если источник ответил успешно.
func (m *Monitor) probe(t Target) bool {
	opCtx, opCancel := context.WithTimeout(m.ctx, 30*time.Second)
	defer opCancel()
	data, err := m.fetcher.Fetch(opCtx, t.URL)
	if err != nil {
		metrics.FeedUp.WithLabelValues(t.Name).Set(0)
		m.log.Warn("Feed probe failed",
			slog.String("component", "worker"),
			slog.String("feed", t.Name),
			slog.String("url", t.URL),
			slog.Any("error", err),
		)
		return false
	}
	metrics.FeedUp.WithLabelValues(t.Name).Set(1)
	m.log.Debug("Feed probe succeeded",
		slog.String("component", "worker"),
		slog.String("feed", t.Name),
		slog.Int("bytes", len(data)),
	)
	return true
}
