package pomomo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPhase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		completed Phase
		count     int
		interval  int
		want      Phase
	}{
		{"first pomodoro", WorkPhase, 1, 4, ShortBreakPhase},
		{"fourth pomodoro", WorkPhase, 4, 4, LongBreakPhase},
		{"eighth pomodoro", WorkPhase, 8, 4, LongBreakPhase},
		{"interval of one", WorkPhase, 3, 1, LongBreakPhase},
		{"short break", ShortBreakPhase, 3, 4, WorkPhase},
		{"long break", LongBreakPhase, 4, 4, WorkPhase},
		{"zero interval never divides", WorkPhase, 4, 0, ShortBreakPhase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NextPhase(tt.completed, tt.count, tt.interval))
		})
	}
}

func TestNextPhase_Cycle(t *testing.T) {
	var got []Phase
	for count := 1; count <= 5; count++ {
		got = append(got, NextPhase(WorkPhase, count, 4))
	}
	assert.Equal(t, []Phase{ShortBreakPhase, ShortBreakPhase, ShortBreakPhase, LongBreakPhase, ShortBreakPhase}, got)
}

func TestPhase_JSON(t *testing.T) {
	data, err := json.Marshal(LongBreakPhase)
	require.NoError(t, err)
	assert.Equal(t, `"longBreak"`, string(data))

	var p Phase
	require.NoError(t, json.Unmarshal([]byte(`"shortBreak"`), &p))
	assert.Equal(t, ShortBreakPhase, p)

	assert.Error(t, json.Unmarshal([]byte(`"nap"`), &p))
	_, err = json.Marshal(Phase(0))
	assert.Error(t, err)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "Focus Time", WorkPhase.String())
	assert.Equal(t, "Short Break", ShortBreakPhase.String())
	assert.Equal(t, "Long Break", LongBreakPhase.String())
	assert.True(t, LongBreakPhase.IsBreak())
	assert.False(t, WorkPhase.IsBreak())
}
