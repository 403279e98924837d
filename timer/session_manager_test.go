package timer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/pomomo-timer"
	"github.com/benjamonnguyen/pomomo-timer/memory"
	"github.com/benjamonnguyen/pomomo-timer/preferences"
)

type mockRecorder struct {
	mu                   sync.Mutex
	calls                []time.Duration
	recordCompletionFunc func(context.Context, time.Time, time.Duration) (pomomo.Statistics, error)
}

func (m *mockRecorder) RecordCompletion(ctx context.Context, at time.Time, d time.Duration) (pomomo.Statistics, error) {
	m.mu.Lock()
	m.calls = append(m.calls, d)
	m.mu.Unlock()
	if m.recordCompletionFunc != nil {
		return m.recordCompletionFunc(ctx, at, d)
	}
	return pomomo.Statistics{}, nil
}

func (m *mockRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockSettingsStore struct {
	settingsFunc       func(context.Context) pomomo.Settings
	updateSettingsFunc func(context.Context, pomomo.Settings) error
}

func (m *mockSettingsStore) Settings(ctx context.Context) pomomo.Settings {
	if m.settingsFunc != nil {
		return m.settingsFunc(ctx)
	}
	return pomomo.DefaultSettings()
}

func (m *mockSettingsStore) UpdateSettings(ctx context.Context, s pomomo.Settings) error {
	if m.updateSettingsFunc != nil {
		return m.updateSettingsFunc(ctx, s)
	}
	return nil
}

func shortSettings() pomomo.Settings {
	return pomomo.Settings{
		Work:              3 * time.Second,
		ShortBreak:        time.Second,
		LongBreak:         2 * time.Second,
		LongBreakInterval: 4,
	}
}

type fixture struct {
	m        *SessionManager
	repo     *memory.KVRepo
	recorder *mockRecorder
}

// newFixture returns a manager whose ticker never fires on its own; tests
// deliver ticks through tickN.
func newFixture(t *testing.T, settings pomomo.Settings) fixture {
	t.Helper()
	repo := memory.NewKVRepo()
	store := preferences.NewStore(repo, log.Default())
	require.NoError(t, store.UpdateSettings(context.Background(), settings))
	recorder := &mockRecorder{}
	m := NewSessionManager(context.Background(), repo, store, recorder, time.Hour, log.Default())
	t.Cleanup(func() { _ = m.Shutdown() })
	return fixture{m: m, repo: repo, recorder: recorder}
}

func (f fixture) tickN(n int) {
	for range n {
		f.m.mu.Lock()
		gen := f.m.gen
		f.m.mu.Unlock()
		f.m.tick(gen)
	}
}

func TestSessionManager_DefaultWorkCompletion(t *testing.T) {
	t.Parallel()

	f := newFixture(t, pomomo.DefaultSettings())
	s := f.m.Start()
	assert.True(t, s.Running)
	assert.Equal(t, 25*time.Minute, s.Remaining)

	f.tickN(1500)

	s = f.m.Snapshot()
	assert.Equal(t, 1, s.CompletedPomodoros)
	assert.Equal(t, pomomo.ShortBreakPhase, s.Phase)
	assert.Equal(t, 300*time.Second, s.Remaining)
	assert.False(t, s.Running)
	assert.Equal(t, 1, f.recorder.count())

	// idle after a transition
	f.tickN(5)
	assert.Equal(t, 300*time.Second, f.m.Snapshot().Remaining)
}

func TestSessionManager_PhaseCycle(t *testing.T) {
	t.Parallel()

	f := newFixture(t, shortSettings())
	want := []pomomo.Phase{
		pomomo.ShortBreakPhase,
		pomomo.ShortBreakPhase,
		pomomo.ShortBreakPhase,
		pomomo.LongBreakPhase,
		pomomo.ShortBreakPhase,
	}
	for i, phase := range want {
		f.m.Start()
		f.tickN(3)
		s := f.m.Snapshot()
		require.Equal(t, phase, s.Phase, "after work phase %d", i+1)
		assert.Equal(t, i+1, s.CompletedPomodoros)
		assert.Equal(t, s.Settings.Duration(phase), s.Remaining)

		f.m.Skip()
		require.Equal(t, pomomo.WorkPhase, f.m.Snapshot().Phase)
	}
	// skipping breaks records nothing
	assert.Equal(t, 5, f.recorder.count())
	assert.Equal(t, 5, pomomo.Load(context.Background(), f.repo, log.Default(), pomomo.CompletedPomodorosKey, 0))
}

func TestSessionManager_SkipCountsWork(t *testing.T) {
	t.Parallel()

	f := newFixture(t, shortSettings())
	s := f.m.Skip()
	assert.Equal(t, 1, s.CompletedPomodoros)
	assert.Equal(t, pomomo.ShortBreakPhase, s.Phase)
	assert.False(t, s.Running)
	assert.Equal(t, 1, f.recorder.count())
}

func TestSessionManager_StaleTickIgnored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		op   func(*SessionManager)
	}{
		{"pause", func(m *SessionManager) { m.Pause() }},
		{"reset", func(m *SessionManager) { m.Reset() }},
		{"skip", func(m *SessionManager) { m.Skip() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, shortSettings())
			f.m.Start()
			f.m.mu.Lock()
			stale := f.m.gen
			f.m.mu.Unlock()

			tt.op(f.m)
			before := f.m.Snapshot()
			f.m.tick(stale)
			assert.Equal(t, before, f.m.Snapshot())
		})
	}
}

func TestSessionManager_PauseResume(t *testing.T) {
	t.Parallel()

	f := newFixture(t, shortSettings())
	f.m.Start()
	f.tickN(1)
	s := f.m.Pause()
	assert.True(t, s.Paused)
	assert.Equal(t, 2*time.Second, s.Remaining)

	f.tickN(1)
	assert.Equal(t, 2*time.Second, f.m.Snapshot().Remaining)

	s = f.m.Resume()
	assert.False(t, s.Paused)
	f.tickN(1)
	assert.Equal(t, time.Second, f.m.Snapshot().Remaining)
}

func TestSessionManager_Reset(t *testing.T) {
	t.Parallel()

	f := newFixture(t, shortSettings())
	f.m.Skip()
	f.m.Start()
	s := f.m.Reset()
	assert.Equal(t, pomomo.ShortBreakPhase, s.Phase)
	assert.Equal(t, time.Second, s.Remaining)
	assert.False(t, s.Running)
}

func TestSessionManager_UpdateSettings(t *testing.T) {
	t.Parallel()

	t.Run("idle clock follows new duration", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, pomomo.DefaultSettings())
		updated := pomomo.DefaultSettings()
		updated.Work = 50 * time.Minute

		s, err := f.m.UpdateSettings(context.Background(), updated)
		require.NoError(t, err)
		assert.Equal(t, 50*time.Minute, s.Remaining)
		assert.Equal(t, updated, s.Settings)
	})

	t.Run("running clock keeps remaining", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, pomomo.DefaultSettings())
		f.m.Start()
		f.tickN(1)
		updated := pomomo.DefaultSettings()
		updated.Work = 50 * time.Minute

		s, err := f.m.UpdateSettings(context.Background(), updated)
		require.NoError(t, err)
		assert.Equal(t, 25*time.Minute-time.Second, s.Remaining)
	})

	t.Run("rejected settings keep prior", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, pomomo.DefaultSettings())

		s, err := f.m.UpdateSettings(context.Background(), pomomo.Settings{Work: -time.Minute})
		require.ErrorIs(t, err, pomomo.ErrInvalidSettings)
		assert.Equal(t, pomomo.DefaultSettings(), s.Settings)
		assert.Equal(t, 25*time.Minute, s.Remaining)
	})
}

func TestSessionManager_ConcurrentUpdateSettings(t *testing.T) {
	t.Parallel()

	var saved pomomo.Settings
	store := &mockSettingsStore{
		updateSettingsFunc: func(_ context.Context, s pomomo.Settings) error {
			saved = s
			time.Sleep(time.Millisecond)
			return nil
		},
	}
	m := NewSessionManager(context.Background(), memory.NewKVRepo(), store, &mockRecorder{}, time.Hour, log.Default())
	defer m.Shutdown() //nolint

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			s := pomomo.DefaultSettings()
			s.Work = time.Duration(i+1) * time.Minute
			_, err := m.UpdateSettings(context.Background(), s)
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	snap := m.Snapshot()
	assert.Equal(t, saved, snap.Settings)
	assert.Equal(t, saved.Work, snap.Remaining)
}

func TestSessionManager_UpdateSettingsAfterShutdown(t *testing.T) {
	t.Parallel()

	var calls int
	store := &mockSettingsStore{
		updateSettingsFunc: func(context.Context, pomomo.Settings) error {
			calls++
			return nil
		},
	}
	m := NewSessionManager(context.Background(), memory.NewKVRepo(), store, &mockRecorder{}, time.Hour, log.Default())
	require.NoError(t, m.Shutdown())

	updated := pomomo.DefaultSettings()
	updated.Work = 50 * time.Minute
	s, err := m.UpdateSettings(context.Background(), updated)
	assert.ErrorIs(t, err, ErrShutdown)
	assert.Equal(t, pomomo.DefaultSettings(), s.Settings)
	assert.Zero(t, calls)
}

func TestSessionManager_RestoresCompleted(t *testing.T) {
	t.Parallel()

	repo := memory.NewKVRepo()
	ctx := context.Background()
	require.NoError(t, pomomo.Save(ctx, repo, pomomo.CompletedPomodorosKey, 7))

	m := NewSessionManager(ctx, repo, &mockSettingsStore{}, &mockRecorder{}, time.Hour, log.Default())
	defer m.Shutdown() //nolint

	s := m.Snapshot()
	assert.Equal(t, 7, s.CompletedPomodoros)
	assert.Equal(t, pomomo.WorkPhase, s.Phase)

	// 8 % 4 == 0
	assert.Equal(t, pomomo.LongBreakPhase, m.Skip().Phase)
}

func TestSessionManager_RecorderErrorSwallowed(t *testing.T) {
	t.Parallel()

	recorder := &mockRecorder{
		recordCompletionFunc: func(context.Context, time.Time, time.Duration) (pomomo.Statistics, error) {
			return pomomo.Statistics{}, errors.New("disk full")
		},
	}
	m := NewSessionManager(context.Background(), memory.NewKVRepo(), &mockSettingsStore{}, recorder, time.Hour, log.Default())
	defer m.Shutdown() //nolint

	s := m.Skip()
	assert.Equal(t, 1, s.CompletedPomodoros)
	assert.Equal(t, pomomo.ShortBreakPhase, s.Phase)
}

func TestSessionManager_OnSessionUpdate(t *testing.T) {
	t.Parallel()

	f := newFixture(t, shortSettings())
	type update struct{ before, curr Snapshot }
	updates := make(chan update, 16)
	f.m.OnSessionUpdate(func(_ context.Context, before, curr Snapshot) {
		updates <- update{before, curr}
	})

	f.m.Skip()
	select {
	case u := <-updates:
		assert.True(t, Completed(u.before, u.curr))
		assert.Equal(t, pomomo.WorkPhase, u.before.Phase)
		assert.Equal(t, pomomo.ShortBreakPhase, u.curr.Phase)
	case <-time.After(time.Second):
		t.Fatal("expected session update")
	}

	// no change, no update
	f.m.Pause()
	f.m.Start()
	select {
	case u := <-updates:
		assert.False(t, Completed(u.before, u.curr))
		assert.True(t, u.curr.Running)
	case <-time.After(time.Second):
		t.Fatal("expected session update")
	}
}

func TestSessionManager_TickerDrivesClock(t *testing.T) {
	t.Parallel()

	repo := memory.NewKVRepo()
	store := &mockSettingsStore{settingsFunc: func(context.Context) pomomo.Settings { return shortSettings() }}
	m := NewSessionManager(context.Background(), repo, store, &mockRecorder{}, time.Millisecond, log.Default())
	defer m.Shutdown() //nolint

	m.Start()
	assert.Eventually(t, func() bool {
		return m.Snapshot().Phase == pomomo.ShortBreakPhase
	}, 5*time.Second, 5*time.Millisecond)
	assert.False(t, m.Snapshot().Running)
}

func TestSessionManager_Shutdown(t *testing.T) {
	t.Parallel()

	m := NewSessionManager(context.Background(), memory.NewKVRepo(), &mockSettingsStore{}, &mockRecorder{}, time.Millisecond, log.Default())
	m.Start()
	require.NoError(t, m.Shutdown())

	s := m.Snapshot()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, s, m.Snapshot())
	assert.Equal(t, s, m.Skip())
}

func TestFormatRemaining(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want string
	}{
		{25 * time.Minute, "25:00"},
		{59 * time.Second, "00:59"},
		{60 * time.Minute, "60:00"},
		{0, "00:00"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRemaining(tt.d))
	}
}

func TestSnapshot_Progress(t *testing.T) {
	t.Parallel()

	s := Snapshot{Phase: pomomo.WorkPhase, Remaining: 15 * time.Minute, Settings: pomomo.DefaultSettings()}
	assert.InDelta(t, 0.4, s.Progress(), 0.0001)
	s.Remaining = 25 * time.Minute
	assert.Zero(t, s.Progress())
}
