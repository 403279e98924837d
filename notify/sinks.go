package notify

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-timer"
)

// LogNotifier shows notifications as log lines.
type LogNotifier struct {
	L *log.Logger
}

var _ pomomo.Notifier = LogNotifier{}

func (n LogNotifier) RequestPermission(context.Context) bool {
	return true
}

func (n LogNotifier) Show(_ context.Context, title, body string) error {
	n.L.Info(title, "body", body)
	return nil
}

// Bell rings the terminal bell. Pitch and length are up to the terminal.
type Bell struct {
	mu sync.Mutex
	W  io.Writer
}

var _ pomomo.AudioSink = (*Bell)(nil)

func (b *Bell) PlayTone(context.Context, int, time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.W, "\a")
	return err
}

// MultiNotifier shows notifications on every notifier that grants
// permission.
type MultiNotifier []pomomo.Notifier

func (m MultiNotifier) RequestPermission(ctx context.Context) bool {
	for _, n := range m {
		if n.RequestPermission(ctx) {
			return true
		}
	}
	return false
}

func (m MultiNotifier) Show(ctx context.Context, title, body string) error {
	var errs []error
	for _, n := range m {
		if !n.RequestPermission(ctx) {
			continue
		}
		errs = append(errs, n.Show(ctx, title, body))
	}
	return errors.Join(errs...)
}

// MultiAudio plays a tone on every sink at once.
type MultiAudio []pomomo.AudioSink

func (m MultiAudio) PlayTone(ctx context.Context, hz int, d time.Duration) error {
	var wg sync.WaitGroup
	errs := make([]error, len(m))
	for i, sink := range m {
		wg.Go(func() {
			errs[i] = sink.PlayTone(ctx, hz, d)
		})
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Silent discards tones.
type Silent struct{}

func (Silent) PlayTone(context.Context, int, time.Duration) error {
	return nil
}
