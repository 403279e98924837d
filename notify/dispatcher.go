// Package notify delivers the phase completion cue.
package notify

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-timer"
)

// Completion cue: two beeps, the second starting ToneGap after the first.
const (
	ToneHz       = 800
	ToneDuration = 200 * time.Millisecond
	ToneGap      = 300 * time.Millisecond
)

type SoundPreference interface {
	SoundEnabled(context.Context) bool
}

type Dispatcher struct {
	notifier pomomo.Notifier
	audio    pomomo.AudioSink
	prefs    SoundPreference
	l        *log.Logger
}

func NewDispatcher(notifier pomomo.Notifier, audio pomomo.AudioSink, prefs SoundPreference, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		audio:    audio,
		prefs:    prefs,
		l:        logger,
	}
}

// Message returns the notification shown when phase completes.
func Message(completed pomomo.Phase) (title, body string) {
	if completed == pomomo.WorkPhase {
		return "Pomodoro Complete!", "Great work! Time for a break."
	}
	return "Break Complete!", "Ready to focus again?"
}

// PhaseCompleted plays the completion cue and shows the notification.
// Failures are logged, never returned.
func (d *Dispatcher) PhaseCompleted(ctx context.Context, completed, next pomomo.Phase) {
	d.l.Debug("phase completed", "completed", completed, "next", next)
	if d.prefs.SoundEnabled(ctx) {
		d.playCue(ctx)
	}

	if !d.notifier.RequestPermission(ctx) {
		d.l.Debug("notification permission denied")
		return
	}
	title, body := Message(completed)
	if err := d.notifier.Show(ctx, title, body); err != nil {
		d.l.Error("failed to show notification", "title", title, "err", err)
	}
}

func (d *Dispatcher) playCue(ctx context.Context) {
	second := time.NewTimer(ToneGap)
	defer second.Stop()

	if err := d.audio.PlayTone(ctx, ToneHz, ToneDuration); err != nil {
		d.l.Error("failed to play tone", "err", err)
		return
	}
	select {
	case <-ctx.Done():
		return
	case <-second.C:
	}
	if err := d.audio.PlayTone(ctx, ToneHz, ToneDuration); err != nil {
		d.l.Error("failed to play tone", "err", err)
	}
}
