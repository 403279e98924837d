// Package stats records completed work phases and derives statistics.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/Thiht/transactor"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-timer"
)

type Recorder struct {
	repo pomomo.KVRepo
	tx   transactor.Transactor
	l    *log.Logger
}

func NewRecorder(repo pomomo.KVRepo, tx transactor.Transactor, logger *log.Logger) *Recorder {
	return &Recorder{
		repo: repo,
		tx:   tx,
		l:    logger,
	}
}

// RecordCompletion appends a completed work phase to the history and bumps
// today's counter. Both keys are written in one transaction.
func (r *Recorder) RecordCompletion(ctx context.Context, at time.Time, workDuration time.Duration) (pomomo.Statistics, error) {
	var stats pomomo.Statistics
	err := r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		prior := pomomo.Load(ctx, r.repo, r.l, pomomo.StatisticsKey, pomomo.Statistics{})
		history := append(prior.History, pomomo.SessionRecord{
			CompletedAt:  at,
			Phase:        pomomo.WorkPhase,
			WorkDuration: workDuration,
		})
		stats = pomomo.Summarize(history, at)
		if err := pomomo.Save(ctx, r.repo, pomomo.StatisticsKey, stats); err != nil {
			return fmt.Errorf("failed to save statistics: %w", err)
		}

		today := pomomo.Load(ctx, r.repo, r.l, pomomo.TodayPomodorosKey, pomomo.TodayCounter{})
		if err := pomomo.Save(ctx, r.repo, pomomo.TodayPomodorosKey, today.Increment(at)); err != nil {
			return fmt.Errorf("failed to save today counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return pomomo.Statistics{}, fmt.Errorf("failed to record completion: %w", err)
	}
	r.l.Debug("recorded completion", "total", stats.TotalPomodoros, "weekly", stats.WeeklyTotal)
	return stats, nil
}

// Summary returns the stored history with aggregates recomputed at now.
func (r *Recorder) Summary(ctx context.Context, now time.Time) pomomo.Statistics {
	stored := pomomo.Load(ctx, r.repo, r.l, pomomo.StatisticsKey, pomomo.Statistics{})
	return pomomo.Summarize(stored.History, now)
}

// Today returns the number of work phases completed on the calendar day of now.
func (r *Recorder) Today(ctx context.Context, now time.Time) int {
	return pomomo.Load(ctx, r.repo, r.l, pomomo.TodayPomodorosKey, pomomo.TodayCounter{}).CountFor(now)
}
