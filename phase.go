package pomomo

import (
	"encoding/json"
	"fmt"
)

type Phase uint8

const (
	_ Phase = iota
	WorkPhase
	ShortBreakPhase
	LongBreakPhase
)

// String returns the display label of the phase.
func (p Phase) String() string {
	switch p {
	case WorkPhase:
		return "Focus Time"
	case ShortBreakPhase:
		return "Short Break"
	case LongBreakPhase:
		return "Long Break"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Key is the stable identifier used in persisted records and the HTTP API.
func (p Phase) Key() string {
	switch p {
	case WorkPhase:
		return "work"
	case ShortBreakPhase:
		return "shortBreak"
	case LongBreakPhase:
		return "longBreak"
	default:
		return ""
	}
}

func (p Phase) IsBreak() bool {
	return p == ShortBreakPhase || p == LongBreakPhase
}

func ParsePhase(key string) (Phase, error) {
	switch key {
	case "work":
		return WorkPhase, nil
	case "shortBreak":
		return ShortBreakPhase, nil
	case "longBreak":
		return LongBreakPhase, nil
	default:
		return 0, fmt.Errorf("unknown phase %q", key)
	}
}

func (p Phase) MarshalJSON() ([]byte, error) {
	if p.Key() == "" {
		return nil, fmt.Errorf("cannot marshal %s", p)
	}
	return json.Marshal(p.Key())
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err != nil {
		return err
	}
	parsed, err := ParsePhase(key)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// NextPhase decides which phase follows a completed one. completedPomodoros
// is the lifetime count including the phase that just completed.
func NextPhase(completed Phase, completedPomodoros, longBreakInterval int) Phase {
	if completed != WorkPhase {
		return WorkPhase
	}
	if longBreakInterval > 0 && completedPomodoros > 0 && completedPomodoros%longBreakInterval == 0 {
		return LongBreakPhase
	}
	return ShortBreakPhase
}
