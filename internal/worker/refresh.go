// Package worker holds the background loops for cache refresh and reports.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/rentradar/rentradar/internal/listing"
)

// LocationSource lists the search locations currently held in cache.
type LocationSource interface {
	CachedLocations() []string
}

// Enqueuer schedules a location for re-fetch through the task queue.
type Enqueuer interface {
	Enqueue(location string, p listing.Priority)
}

// RefreshWorker periodically re-enqueues every cached location at background
// priority so stored searches stay warm without starving user requests.
type RefreshWorker struct {
	locations LocationSource
	queue     Enqueuer
	interval  time.Duration
}

// NewRefreshWorker creates a new RefreshWorker.
func NewRefreshWorker(locations LocationSource, queue Enqueuer, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		locations: locations,
		queue:     queue,
		interval:  interval,
	}
}

// Run starts the refresh worker loop. It blocks until the context is cancelled.
func (w *RefreshWorker) Run(ctx context.Context) {
	slog.Info("RefreshWorker: starting")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("RefreshWorker: shutting down")
			return
		case <-ticker.C:
			w.enqueueAll()
		}
	}
}

func (w *RefreshWorker) enqueueAll() {
	locations := w.locations.CachedLocations()
	for _, loc := range locations {
		w.queue.Enqueue(loc, listing.PriorityBackground)
	}
	slog.Info("RefreshWorker: refresh cycle enqueued", "locations", len(locations))
}
