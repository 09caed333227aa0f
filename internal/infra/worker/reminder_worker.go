package worker

import (
	"context"
	"time"

	"github.com/xavierca1/gym-leadbot/internal/infra/http/middleware"
	"github.com/xavierca1/gym-leadbot/internal/usecase"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

// ScanInterval is how often the lead table is checked for due follow-ups.
const ScanInterval = 5 * time.Minute

type FollowUpRunner interface {
	Execute(ctx context.Context) (usecase.FollowUpReport, error)
}

type ReminderWorker struct {
	runner       FollowUpRunner
	tickInterval time.Duration
}

func NewReminderWorker(runner FollowUpRunner) *ReminderWorker {
	return &ReminderWorker{
		runner:       runner,
		tickInterval: ScanInterval,
	}
}

// Start runs a pass immediately and then on every tick until ctx is done.
// A failed pass is logged and the loop keeps going.
func (w *ReminderWorker) Start(ctx context.Context) {
	logger.Info().Dur("interval", w.tickInterval).Msg("🕒 reminder worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Warn().Msg("⚠️ reminder worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ReminderWorker) runOnce(ctx context.Context) {
	report, err := w.runner.Execute(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("❌ reminder pass failed")
		middleware.RecordIntegrationError("lead_store")
		return
	}

	middleware.RecordFollowUps("reminder", "sent", report.RemindersSent)
	middleware.RecordFollowUps("review", "sent", report.ReviewsSent)
	middleware.RecordFollowUps("any", "failed", report.Failed)

	if report.RemindersSent+report.ReviewsSent+report.Failed > 0 {
		logger.Info().
			Int("scanned", report.Scanned).
			Int("skipped", report.Skipped).
			Int("reminders", report.RemindersSent).
			Int("reviews", report.ReviewsSent).
			Int("failed", report.Failed).
			Msg("✅ reminder pass finished")
	}
}
