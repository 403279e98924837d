package pomomo

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Summarize derives the aggregates of history as seen at now. The history
// is kept as is; only the derived fields are recomputed.
func Summarize(history []SessionRecord, now time.Time) Statistics {
	stats := Statistics{
		TotalPomodoros: len(history),
		History:        history,
	}
	for _, r := range history {
		stats.TotalMinutes += r.WorkDuration.Minutes()
		if now.Sub(r.CompletedAt) <= 7*day {
			stats.WeeklyTotal++
		}
	}
	days := max(1, daysSinceFirst(history, now))
	stats.DailyAverage = roundHalfUp(float64(stats.TotalPomodoros) / float64(days))
	return stats
}

func daysSinceFirst(history []SessionRecord, now time.Time) int {
	if len(history) == 0 {
		return 1
	}
	elapsed := now.Sub(history[0].CompletedAt)
	return max(1, int(math.Ceil(float64(elapsed)/float64(day))))
}

func roundHalfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}
