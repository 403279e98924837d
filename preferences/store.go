// Package preferences persists timer settings and user preferences.
package preferences

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-timer"
)

type Store struct {
	repo pomomo.KVRepo
	l    *log.Logger
}

func NewStore(repo pomomo.KVRepo, logger *log.Logger) *Store {
	return &Store{
		repo: repo,
		l:    logger,
	}
}

// Settings returns the stored settings. Stored values that no longer pass
// validation are replaced by the defaults.
func (s *Store) Settings(ctx context.Context) pomomo.Settings {
	settings := pomomo.Load(ctx, s.repo, s.l, pomomo.SettingsKey, pomomo.DefaultSettings())
	if err := settings.Validate(); err != nil {
		s.l.Warn("invalid stored settings - using defaults", "err", err)
		return pomomo.DefaultSettings()
	}
	return settings
}

// UpdateSettings stores settings. Invalid settings are rejected with
// pomomo.ErrInvalidSettings and the prior value is kept.
func (s *Store) UpdateSettings(ctx context.Context, settings pomomo.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := pomomo.Save(ctx, s.repo, pomomo.SettingsKey, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.l.Info("updated settings",
		"work", settings.Work,
		"shortBreak", settings.ShortBreak,
		"longBreak", settings.LongBreak,
		"longBreakInterval", settings.LongBreakInterval,
	)
	return nil
}

func (s *Store) SoundEnabled(ctx context.Context) bool {
	return pomomo.Load(ctx, s.repo, s.l, pomomo.SoundEnabledKey, true)
}

func (s *Store) SetSoundEnabled(ctx context.Context, enabled bool) error {
	return pomomo.Save(ctx, s.repo, pomomo.SoundEnabledKey, enabled)
}

func (s *Store) DarkMode(ctx context.Context) bool {
	return pomomo.Load(ctx, s.repo, s.l, pomomo.DarkModeKey, true)
}

func (s *Store) SetDarkMode(ctx context.Context, enabled bool) error {
	return pomomo.Save(ctx, s.repo, pomomo.DarkModeKey, enabled)
}

type Preferences struct {
	DarkMode     bool `json:"darkMode"`
	SoundEnabled bool `json:"soundEnabled"`
}

func (s *Store) Preferences(ctx context.Context) Preferences {
	return Preferences{
		DarkMode:     s.DarkMode(ctx),
		SoundEnabled: s.SoundEnabled(ctx),
	}
}
