package workers

import (
	"context"
	"log"

	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
	"github.com/ritmo-app/ritmo-engine/internal/core/metrics"
)

// SummaryCache is the slice of the cache the worker needs: drop a user's
// stale day summaries and store a freshly computed one.
type SummaryCache interface {
	SetDaySummary(ctx context.Context, userID string, summary metrics.DaySummary) error
	InvalidateUser(ctx context.Context, userID string) error
}

type SummaryJob struct {
	UserID string
	Date   string
}

// SummaryWorker recomputes day summaries in the background after habit or
// entry writes. The cache it maintains is a pure read-side accelerator; the
// entry log stays the only source of truth, so losing the cache costs a
// recompute, never correctness.
type SummaryWorker struct {
	habitRepo    domain.HabitRepository
	entryRepo    domain.EntryRepository
	settingsRepo domain.SettingsRepository
	cache        SummaryCache
	jobs         chan SummaryJob
}

func NewSummaryWorker(habitRepo domain.HabitRepository, entryRepo domain.EntryRepository, settingsRepo domain.SettingsRepository, cache SummaryCache) *SummaryWorker {
	return &SummaryWorker{
		habitRepo:    habitRepo,
		entryRepo:    entryRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
		jobs:         make(chan SummaryJob, 100),
	}
}

func (w *SummaryWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Summary worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Summary worker shutting down...")
				return
			}
		}
	}()
}

func (w *SummaryWorker) Enqueue(userID, date string) {
	select {
	case w.jobs <- SummaryJob{UserID: userID, Date: date}:
	default:
		log.Printf("Summary worker queue full! Dropping job for user %s", userID)
	}
}

func (w *SummaryWorker) processJob(ctx context.Context, job SummaryJob) {
	if w.cache == nil {
		return
	}

	// A write on one date can move weekly/monthly aggregates for every date
	// in its period, so all cached summaries for the user go first.
	if err := w.cache.InvalidateUser(ctx, job.UserID); err != nil {
		log.Printf("Worker failed to invalidate summaries for user %s: %v", job.UserID, err)
	}

	habits, err := w.habitRepo.ListByUserID(ctx, job.UserID)
	if err != nil {
		log.Printf("Worker error fetching habits for user %s: %v", job.UserID, err)
		return
	}

	entries, err := w.entryRepo.ListByUserID(ctx, job.UserID)
	if err != nil {
		log.Printf("Worker error fetching entries for user %s: %v", job.UserID, err)
		return
	}

	settings, err := w.settingsRepo.Get(ctx, job.UserID)
	if err != nil {
		log.Printf("Worker error fetching settings for user %s: %v", job.UserID, err)
		return
	}

	summary := metrics.ComputeDaySummary(habits, metrics.NewIndex(entries), job.Date, settings.WeekStartsOn)

	if err := w.cache.SetDaySummary(ctx, job.UserID, summary); err != nil {
		log.Printf("Worker failed to cache summary for user %s: %v", job.UserID, err)
	}
}
