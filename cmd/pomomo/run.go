package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/pomomo-timer/notify"
	"github.com/benjamonnguyen/pomomo-timer/timer"
)

const runHelp = "s start  p pause  r resume  x reset  n skip  q quit"

func newRunCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the timer in this terminal",
		Long:  "Run the timer in this terminal. Commands are read line by line: " + runHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close() //nolint

			return a.runTerminal(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// lineCommand maps an input line to a timer operation. ok is false for
// unknown input.
func lineCommand(m *timer.SessionManager, line string) (op func() timer.Snapshot, quit, ok bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "start":
		return m.Start, false, true
	case "p", "pause":
		return m.Pause, false, true
	case "r", "resume":
		return m.Resume, false, true
	case "x", "reset":
		return m.Reset, false, true
	case "n", "skip":
		return m.Skip, false, true
	case "q", "quit", "exit":
		return nil, true, true
	default:
		return nil, false, false
	}
}

func (a *app) runTerminal(ctx context.Context, in io.Reader, out io.Writer) error {
	mgr := a.newSessionManager(ctx)
	dispatcher := notify.NewDispatcher(
		notify.LogNotifier{L: a.l},
		&notify.Bell{W: out},
		a.prefs,
		a.l.WithPrefix("notify"),
	)
	t := themeFor(a.prefs.DarkMode(ctx))

	var outMu sync.Mutex
	draw := func(s timer.Snapshot) {
		line := renderState(t, s, a.recorder.Today(ctx, time.Now()))
		outMu.Lock()
		defer outMu.Unlock()
		fmt.Fprintf(out, "\r\033[K%s", line)
	}

	completion := onCompletion(dispatcher)
	mgr.OnSessionUpdate(func(ctx context.Context, before, curr timer.Snapshot) {
		draw(curr)
		completion(ctx, before, curr)
	})

	fmt.Fprintln(out, runHelp)
	draw(mgr.Snapshot())

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
	}()

	defer func() {
		if err := mgr.Shutdown(); err != nil {
			a.l.Error(err)
		}
		fmt.Fprintln(out)
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, open := <-lines:
			if !open {
				return nil
			}
			op, quit, ok := lineCommand(mgr, line)
			switch {
			case quit:
				return nil
			case !ok:
				outMu.Lock()
				fmt.Fprintf(out, "\r\033[Kunknown command %q (%s)\n", strings.TrimSpace(line), runHelp)
				outMu.Unlock()
				draw(mgr.Snapshot())
			default:
				draw(op())
			}
		}
	}
}

