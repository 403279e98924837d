package pomomo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

var ErrNotFound = errors.New("not found")

// Persisted keys.
const (
	DarkModeKey           = "darkMode"
	SettingsKey           = "settings"
	CompletedPomodorosKey = "completedPomodoros"
	TodayPomodorosKey     = "todayPomodoros"
	StatisticsKey         = "statistics"
	TasksKey              = "tasks"
	SoundEnabledKey       = "soundEnabled"
)

// KVRepo stores independent JSON values by key. Get returns ErrNotFound for
// absent keys.
type KVRepo interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Load decodes key into a T. Absent keys and unreadable values yield def;
// the latter are logged.
func Load[T any](ctx context.Context, repo KVRepo, l *log.Logger, key string, def T) T {
	data, err := repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			l.Warn("failed to read key - using default", "key", key, "err", err)
		}
		return def
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		l.Warn("failed to parse key - using default", "key", key, "err", err)
		return def
	}
	return v
}

func Save[T any](ctx context.Context, repo KVRepo, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return repo.Set(ctx, key, data)
}

// Notifier shows user-facing notifications.
type Notifier interface {
	// RequestPermission reports whether notifications can be shown.
	RequestPermission(ctx context.Context) bool
	Show(ctx context.Context, title, body string) error
}

type AudioSink interface {
	PlayTone(ctx context.Context, frequencyHz int, d time.Duration) error
}
