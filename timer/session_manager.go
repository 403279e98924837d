// Package timer drives the pomodoro phase cycle.
package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-timer"
	"github.com/benjamonnguyen/pomomo-timer/clock"
)

var ErrShutdown = errors.New("session manager is shut down")

type SettingsStore interface {
	Settings(context.Context) pomomo.Settings
	UpdateSettings(context.Context, pomomo.Settings) error
}

type Recorder interface {
	RecordCompletion(ctx context.Context, at time.Time, workDuration time.Duration) (pomomo.Statistics, error)
}

// Snapshot is the observable state of a SessionManager.
type Snapshot struct {
	Phase              pomomo.Phase
	Remaining          time.Duration
	Running            bool
	Paused             bool
	CompletedPomodoros int
	Settings           pomomo.Settings
}

type SessionManager struct {
	repo     pomomo.KVRepo
	store    SettingsStore
	recorder Recorder
	l        *log.Logger
	now      func() time.Time

	mu           sync.Mutex
	clock        *clock.Clock
	phase        pomomo.Phase
	completed    int
	settings     pomomo.Settings
	tickInterval time.Duration
	gen          uint64
	stopTicker   func()
	closed       bool

	hookMu          sync.Mutex
	wg              sync.WaitGroup
	parentCtx       context.Context
	onSessionUpdate func(ctx context.Context, before, curr Snapshot)
}

// NewSessionManager restores the lifetime pomodoro count and the settings
// and returns an idle manager in the work phase. A tickInterval <= 0 means
// one tick per clock.Step.
func NewSessionManager(
	ctx context.Context,
	repo pomomo.KVRepo,
	store SettingsStore,
	recorder Recorder,
	tickInterval time.Duration,
	logger *log.Logger,
) *SessionManager {
	if tickInterval <= 0 {
		tickInterval = clock.Step
	}
	m := &SessionManager{
		repo:         repo,
		store:        store,
		recorder:     recorder,
		l:            logger,
		now:          time.Now,
		phase:        pomomo.WorkPhase,
		tickInterval: tickInterval,
		parentCtx:    ctx,
	}
	m.completed = pomomo.Load(ctx, repo, logger, pomomo.CompletedPomodorosKey, 0)
	m.settings = store.Settings(ctx)
	m.clock = clock.New(m.settings.Work, m.completePhase)
	logger.Info("restored session", "completedPomodoros", m.completed)
	return m
}

// OnSessionUpdate registers handler for every state change, ticks
// included. Handlers run outside the manager lock, one at a time. A phase
// change between before and curr marks a completed phase.
func (m *SessionManager) OnSessionUpdate(handler func(ctx context.Context, before, curr Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSessionUpdate = handler
}

func (m *SessionManager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *SessionManager) Start() Snapshot {
	return m.apply("start", m.clock.Start)
}

func (m *SessionManager) Pause() Snapshot {
	return m.apply("pause", m.clock.Pause)
}

func (m *SessionManager) Resume() Snapshot {
	return m.apply("resume", m.clock.Resume)
}

// Reset stops the clock and restores the full duration of the current phase.
func (m *SessionManager) Reset() Snapshot {
	return m.apply("reset", func() {
		m.clock.Reset(m.settings.Duration(m.phase))
	})
}

// Skip completes the current phase now. Skipping a work phase counts it.
func (m *SessionManager) Skip() Snapshot {
	return m.apply("skip", m.clock.Skip)
}

// UpdateSettings stores settings and re-baselines an idle clock. Rejected
// settings leave the manager untouched.
func (m *SessionManager) UpdateSettings(ctx context.Context, settings pomomo.Settings) (Snapshot, error) {
	err := ErrShutdown
	s := m.apply("update settings", func() {
		if err = m.store.UpdateSettings(ctx, settings); err != nil {
			return
		}
		m.settings = settings
		m.clock.SetIdleDuration(settings.Duration(m.phase))
	})
	return s, err
}

// Shutdown stops the tick source and waits for running handlers.
func (m *SessionManager) Shutdown() error {
	m.mu.Lock()
	m.closed = true
	m.syncTicker()
	m.mu.Unlock()

	m.wg.Wait()
	return nil
}

func (m *SessionManager) apply(op string, fn func()) Snapshot {
	m.mu.Lock()
	if m.closed {
		defer m.mu.Unlock()
		m.l.Warn("ignoring operation after shutdown", "op", op)
		return m.snapshot()
	}
	before := m.snapshot()
	fn()
	m.syncTicker()
	curr := m.snapshot()
	m.mu.Unlock()

	m.l.Debug("applied", "op", op, "phase", curr.Phase, "remaining", curr.Remaining)
	m.dispatch(before, curr)
	return curr
}

// tick is delivered by the ticker loop of generation gen. Ticks of a
// stopped loop are dropped.
func (m *SessionManager) tick(gen uint64) {
	m.mu.Lock()
	if m.closed || gen != m.gen {
		m.mu.Unlock()
		return
	}
	before := m.snapshot()
	m.clock.Tick()
	m.syncTicker()
	curr := m.snapshot()
	m.mu.Unlock()

	m.dispatch(before, curr)
}

// syncTicker starts or stops the ticker loop to match the clock. Must hold mu.
func (m *SessionManager) syncTicker() {
	ticking := m.clock.Ticking() && !m.closed
	switch {
	case ticking && m.stopTicker == nil:
		m.gen++
		gen := m.gen
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.stopTicker = cancel
		m.wg.Go(func() {
			ticker := time.NewTicker(m.tickInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					m.tick(gen)
				}
			}
		})
	case !ticking && m.stopTicker != nil:
		m.stopTicker()
		m.stopTicker = nil
		m.gen++
	}
}

// completePhase is the clock's completion callback; it runs under mu.
func (m *SessionManager) completePhase() {
	completed := m.phase
	if completed == pomomo.WorkPhase {
		m.completed++
		m.persistCompletion()
	}
	m.phase = pomomo.NextPhase(completed, m.completed, m.settings.LongBreakInterval)
	m.clock.Reset(m.settings.Duration(m.phase))
	m.l.Info("phase completed", "completed", completed, "next", m.phase, "completedPomodoros", m.completed)
}

func (m *SessionManager) persistCompletion() {
	ctx := context.WithoutCancel(m.parentCtx)
	if err := pomomo.Save(ctx, m.repo, pomomo.CompletedPomodorosKey, m.completed); err != nil {
		m.l.Error("failed to save completed pomodoros", "count", m.completed, "err", err)
	}
	if _, err := m.recorder.RecordCompletion(ctx, m.now(), m.settings.Work); err != nil {
		m.l.Error("failed to record completion", "err", err)
	}
}

func (m *SessionManager) dispatch(before, curr Snapshot) {
	m.mu.Lock()
	handler := m.onSessionUpdate
	m.mu.Unlock()
	if handler == nil || before == curr {
		return
	}
	m.wg.Go(func() {
		m.hookMu.Lock()
		defer m.hookMu.Unlock()
		handler(m.parentCtx, before, curr)
	})
}

// Must hold mu.
func (m *SessionManager) snapshot() Snapshot {
	state := m.clock.State()
	return Snapshot{
		Phase:              m.phase,
		Remaining:          state.Remaining,
		Running:            state.Running,
		Paused:             state.Paused,
		CompletedPomodoros: m.completed,
		Settings:           m.settings,
	}
}

// Duration returns the configured duration of the current phase.
func (s Snapshot) Duration() time.Duration {
	return s.Settings.Duration(s.Phase)
}

// Progress returns the elapsed share of the current phase in [0, 1].
func (s Snapshot) Progress() float64 {
	total := s.Duration()
	if total <= 0 {
		return 0
	}
	p := float64(total-s.Remaining) / float64(total)
	return min(1, max(0, p))
}

// Completed reports whether curr follows a phase completion.
func Completed(before, curr Snapshot) bool {
	return before.Phase != curr.Phase
}

// FormatRemaining renders d as MM:SS.
func FormatRemaining(d time.Duration) string {
	secs := int(max(0, d/time.Second))
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
