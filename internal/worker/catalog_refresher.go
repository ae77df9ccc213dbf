package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/avast/retry-go"
)

// CatalogSource exposes the subset of application functionality required by
// the refresher.
type CatalogSource interface {
	RefreshCatalog(ctx context.Context) error
}

// CatalogRefresher periodically re-warms the course cache so checkout link
// generation keeps serving current prices without a DB read per request.
type CatalogRefresher struct {
	source   CatalogSource
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewCatalogRefresher constructs the refresher.
func NewCatalogRefresher(source CatalogSource, interval time.Duration, logger *slog.Logger) *CatalogRefresher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CatalogRefresher{
		source:   source,
		interval: interval,
		logger:   logger,
	}
}

// Start launches background refreshing.
func (r *CatalogRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.run(runCtx)
}

// Stop waits for the background loop to finish.
func (r *CatalogRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *CatalogRefresher) run(ctx context.Context) {
	defer r.wg.Done()

	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *CatalogRefresher) refresh(ctx context.Context) {
	err := retry.Do(
		func() error {
			return r.source.RefreshCatalog(ctx)
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.MaxDelay(2*time.Second),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(error) bool {
			return ctx.Err() == nil
		}),
	)
	if err != nil && ctx.Err() == nil {
		r.logger.Error("catalog refresh failed", slog.String("error", err.Error()))
	}
}
