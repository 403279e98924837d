// Package clock implements the countdown primitive of a pomodoro phase.
//
// A Clock has no goroutines and no locks. Its owner serializes calls and
// delivers Tick once per second while Ticking reports true.
package clock

import "time"

const Step = time.Second

type State struct {
	Remaining time.Duration
	Running   bool
	Paused    bool
}

type Clock struct {
	remaining  time.Duration
	running    bool
	paused     bool
	onComplete func()
}

// New returns an idle clock set to d. onComplete runs synchronously, once
// per completion, after the clock has stopped.
func New(d time.Duration, onComplete func()) *Clock {
	return &Clock{
		remaining:  d,
		onComplete: onComplete,
	}
}

func (c *Clock) State() State {
	return State{
		Remaining: c.remaining,
		Running:   c.running,
		Paused:    c.paused,
	}
}

func (c *Clock) Remaining() time.Duration {
	return c.remaining
}

// Ticking reports whether ticks currently count down.
func (c *Clock) Ticking() bool {
	return c.running && !c.paused
}

func (c *Clock) Start() {
	c.running = true
	c.paused = false
}

func (c *Clock) Pause() {
	if !c.running {
		return
	}
	c.paused = true
}

func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
}

func (c *Clock) Reset(d time.Duration) {
	c.stop()
	c.remaining = d
}

// SetIdleDuration follows a duration change while the clock is not running.
func (c *Clock) SetIdleDuration(d time.Duration) {
	if c.running {
		return
	}
	c.remaining = d
}

// Tick counts down one step and completes the clock when it reaches zero.
func (c *Clock) Tick() {
	if !c.Ticking() {
		return
	}
	c.remaining -= Step
	if c.remaining > 0 {
		return
	}
	c.complete()
}

// Skip completes the clock now, whatever is left.
func (c *Clock) Skip() {
	c.complete()
}

func (c *Clock) complete() {
	c.stop()
	c.remaining = 0
	if c.onComplete != nil {
		c.onComplete()
	}
}

func (c *Clock) stop() {
	c.running = false
	c.paused = false
}
