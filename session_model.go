package pomomo

import (
	"encoding/json"
	"time"
)

type TaskID string

// SessionRecord is one completed work phase.
type SessionRecord struct {
	CompletedAt  time.Time
	Phase        Phase
	WorkDuration time.Duration
}

type sessionRecordEntity struct {
	Date            time.Time `json:"date"`
	Type            Phase     `json:"type"`
	DurationSeconds int64     `json:"durationSeconds"`
}

func (r SessionRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionRecordEntity{
		Date:            r.CompletedAt,
		Type:            r.Phase,
		DurationSeconds: int64(r.WorkDuration / time.Second),
	})
}

func (r *SessionRecord) UnmarshalJSON(data []byte) error {
	var e sessionRecordEntity
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	*r = SessionRecord{
		CompletedAt:  e.Date,
		Phase:        e.Type,
		WorkDuration: time.Duration(e.DurationSeconds) * time.Second,
	}
	return nil
}

// Statistics holds the session history and the aggregates derived from it.
type Statistics struct {
	TotalPomodoros int             `json:"totalPomodoros"`
	TotalMinutes   float64         `json:"totalMinutes"`
	DailyAverage   int             `json:"dailyAverage"`
	WeeklyTotal    int             `json:"weeklyTotal"`
	History        []SessionRecord `json:"history"`
}

type TodayCounter struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

const dayKeyLayout = "2006-01-02"

// DayKey returns the local calendar day of t.
func DayKey(t time.Time) string {
	return t.Local().Format(dayKeyLayout)
}

// CountFor returns the counter value when it belongs to the day of now.
func (c TodayCounter) CountFor(now time.Time) int {
	if c.Date != DayKey(now) {
		return 0
	}
	return c.Count
}

// Increment returns the counter after one more completion at now.
func (c TodayCounter) Increment(now time.Time) TodayCounter {
	today := DayKey(now)
	if c.Date != today {
		return TodayCounter{Date: today, Count: 1}
	}
	return TodayCounter{Date: today, Count: c.Count + 1}
}

type TaskRecord struct {
	Text               string `json:"text"`
	EstimatedPomodoros int    `json:"estimatedPomodoros"`
	Completed          bool   `json:"completed"`
}

type ExistingTaskRecord struct {
	ExistingRecord[TaskID]
	TaskRecord
}
