package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Thiht/transactor"
	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-timer"
	"github.com/benjamonnguyen/pomomo-timer/memory"
	"github.com/benjamonnguyen/pomomo-timer/notify"
	"github.com/benjamonnguyen/pomomo-timer/preferences"
	"github.com/benjamonnguyen/pomomo-timer/sqlite"
	"github.com/benjamonnguyen/pomomo-timer/stats"
	"github.com/benjamonnguyen/pomomo-timer/tasks"
	"github.com/benjamonnguyen/pomomo-timer/timer"
)

// app holds the services shared by every front end.
type app struct {
	cfg pomomo.Config
	l   *log.Logger
	db  *sql.DB

	repo     pomomo.KVRepo
	tx       transactor.Transactor
	prefs    *preferences.Store
	recorder *stats.Recorder
	tasks    *tasks.Store
}

func (c *cli) openApp() (*app, error) {
	a := &app{
		cfg: c.cfg,
		l:   c.l,
	}

	if c.inMemory {
		c.l.Info("using in-memory store")
		a.repo = memory.NewKVRepo()
		a.tx = memory.NewTransactor()
	} else {
		c.l.Info("opening db", "url", c.cfg.DatabaseURL)
		db, err := sqlite.Open(c.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed database open: %w", err)
		}
		tx, dbGetter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
		a.db = db
		a.tx = tx
		a.repo = sqlite.NewKVRepo(dbGetter, c.l.WithPrefix("sqlite"))
	}

	a.prefs = preferences.NewStore(a.repo, c.l)
	a.recorder = stats.NewRecorder(a.repo, a.tx, c.l.WithPrefix("stats"))
	a.tasks = tasks.NewStore(a.repo, a.tx, c.l.WithPrefix("tasks"))
	return a, nil
}

func (a *app) newSessionManager(ctx context.Context) *timer.SessionManager {
	return timer.NewSessionManager(ctx, a.repo, a.prefs, a.recorder, a.cfg.TickInterval, a.l.WithPrefix("timer"))
}

// onCompletion returns a session update handler that fires the completion
// cue through d.
func onCompletion(d *notify.Dispatcher) func(context.Context, timer.Snapshot, timer.Snapshot) {
	return func(ctx context.Context, before, curr timer.Snapshot) {
		if timer.Completed(before, curr) {
			d.PhaseCompleted(ctx, before.Phase, curr.Phase)
		}
	}
}

func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
