package pomomo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Validate(t *testing.T) {
	t.Parallel()

	valid := DefaultSettings()
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"zero work", func(s *Settings) { s.Work = 0 }, true},
		{"negative short break", func(s *Settings) { s.ShortBreak = -time.Minute }, true},
		{"zero long break", func(s *Settings) { s.LongBreak = 0 }, true},
		{"fractional seconds", func(s *Settings) { s.Work = 1500*time.Second + time.Millisecond }, true},
		{"zero interval", func(s *Settings) { s.LongBreakInterval = 0 }, true},
		{"interval of one", func(s *Settings) { s.LongBreakInterval = 1 }, false},
		{"one second durations", func(s *Settings) {
			s.Work, s.ShortBreak, s.LongBreak = time.Second, time.Second, time.Second
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettings_Duration(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 25*time.Minute, s.Duration(WorkPhase))
	assert.Equal(t, 5*time.Minute, s.Duration(ShortBreakPhase))
	assert.Equal(t, 15*time.Minute, s.Duration(LongBreakPhase))
}

func TestSettings_JSONStoresSeconds(t *testing.T) {
	data, err := json.Marshal(DefaultSettings())
	require.NoError(t, err)
	assert.JSONEq(t, `{"workDuration":1500,"shortBreakDuration":300,"longBreakDuration":900,"longBreakInterval":4}`, string(data))

	var s Settings
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, DefaultSettings(), s)
}
