package scraper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/unighana/unighana-backend/internal/domain"
	"github.com/unighana/unighana-backend/internal/metrics"
)

// Refresher keeps a cached copy of the scraped admission details, refreshed
// on a cron schedule so request latency is not tied to the upstream page.
type Refresher struct {
	scraper *Scraper
	cron    *cron.Cron
	logger  *slog.Logger

	mu        sync.RWMutex
	cached    *domain.AdmissionDetails
	fetchedAt time.Time
}

func NewRefresher(scraper *Scraper, logger *slog.Logger) *Refresher {
	return &Refresher{
		scraper: scraper,
		cron:    cron.New(),
		logger:  logger.With("component", "admission_refresher"),
	}
}

// Start schedules periodic refreshes and warms the cache in the background.
func (r *Refresher) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, r.refresh); err != nil {
		return err
	}
	r.cron.Start()
	go r.refresh()
	return nil
}

// Stop halts the refresh schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

// Get returns the cached details, falling back to a live fetch when the
// cache has not been filled yet.
func (r *Refresher) Get(ctx context.Context) (*domain.AdmissionDetails, error) {
	r.mu.RLock()
	cached := r.cached
	r.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}

	details, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}
	r.store(details)
	return details, nil
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	details, err := r.fetch(ctx)
	if err != nil {
		// Keep serving the last good copy.
		r.logger.Warn("admission refresh failed", "error", err)
		return
	}
	r.store(details)
	r.logger.Info("admission details refreshed")
}

func (r *Refresher) fetch(ctx context.Context) (*domain.AdmissionDetails, error) {
	start := time.Now()
	details, err := r.scraper.Fetch(ctx)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.ScrapeDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return details, err
}

func (r *Refresher) store(details *domain.AdmissionDetails) {
	r.mu.Lock()
	r.cached = details
	r.fetchedAt = time.Now()
	r.mu.Unlock()
}
