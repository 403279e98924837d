package pomomo

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidSettings = errors.New("invalid settings")

type Settings struct {
	Work              time.Duration
	ShortBreak        time.Duration
	LongBreak         time.Duration
	LongBreakInterval int
}

// settingsEntity is the persisted form; durations are stored in seconds.
type settingsEntity struct {
	WorkDuration       int64 `json:"workDuration"`
	ShortBreakDuration int64 `json:"shortBreakDuration"`
	LongBreakDuration  int64 `json:"longBreakDuration"`
	LongBreakInterval  int   `json:"longBreakInterval"`
}

func (s Settings) MarshalJSON() ([]byte, error) {
	return json.Marshal(settingsEntity{
		WorkDuration:       int64(s.Work / time.Second),
		ShortBreakDuration: int64(s.ShortBreak / time.Second),
		LongBreakDuration:  int64(s.LongBreak / time.Second),
		LongBreakInterval:  s.LongBreakInterval,
	})
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	var e settingsEntity
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	*s = Settings{
		Work:              time.Duration(e.WorkDuration) * time.Second,
		ShortBreak:        time.Duration(e.ShortBreakDuration) * time.Second,
		LongBreak:         time.Duration(e.LongBreakDuration) * time.Second,
		LongBreakInterval: e.LongBreakInterval,
	}
	return nil
}

func DefaultSettings() Settings {
	return Settings{
		Work:              25 * time.Minute,
		ShortBreak:        5 * time.Minute,
		LongBreak:         15 * time.Minute,
		LongBreakInterval: 4,
	}
}

// Validate reports every violated invariant, wrapped in ErrInvalidSettings.
// Values are never clamped.
func (s Settings) Validate() error {
	var errs []error
	check := func(name string, d time.Duration) {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		} else if d%time.Second != 0 {
			errs = append(errs, fmt.Errorf("%s must be whole seconds, got %s", name, d))
		}
	}
	check("work duration", s.Work)
	check("short break duration", s.ShortBreak)
	check("long break duration", s.LongBreak)
	if s.LongBreakInterval < 1 {
		errs = append(errs, fmt.Errorf("long break interval must be at least 1, got %d", s.LongBreakInterval))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
}

func (s Settings) Duration(p Phase) time.Duration {
	switch p {
	case WorkPhase:
		return s.Work
	case ShortBreakPhase:
		return s.ShortBreak
	case LongBreakPhase:
		return s.LongBreak
	default:
		return s.Work
	}
}
