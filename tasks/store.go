// Package tasks keeps the ordered task list.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Thiht/transactor"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/benjamonnguyen/pomomo-timer"
)

var (
	ErrEmptyText       = errors.New("task text is empty")
	ErrInvalidEstimate = errors.New("estimated pomodoros must be at least 1")
)

type Store struct {
	repo pomomo.KVRepo
	tx   transactor.Transactor
	l    *log.Logger
	now  func() time.Time
}

func NewStore(repo pomomo.KVRepo, tx transactor.Transactor, logger *log.Logger) *Store {
	return &Store{
		repo: repo,
		tx:   tx,
		l:    logger,
		now:  time.Now,
	}
}

// List returns tasks in insertion order.
func (s *Store) List(ctx context.Context) []pomomo.ExistingTaskRecord {
	return pomomo.Load(ctx, s.repo, s.l, pomomo.TasksKey, []pomomo.ExistingTaskRecord{})
}

func (s *Store) Add(ctx context.Context, text string, estimatedPomodoros int) (pomomo.ExistingTaskRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return pomomo.ExistingTaskRecord{}, ErrEmptyText
	}
	if estimatedPomodoros < 1 {
		return pomomo.ExistingTaskRecord{}, fmt.Errorf("%w, got %d", ErrInvalidEstimate, estimatedPomodoros)
	}

	task := pomomo.ExistingTaskRecord{
		ExistingRecord: pomomo.NewExistingRecord[pomomo.TaskID](uuid.NewString(), s.now()),
		TaskRecord: pomomo.TaskRecord{
			Text:               text,
			EstimatedPomodoros: estimatedPomodoros,
		},
	}
	err := s.update(ctx, func(tasks []pomomo.ExistingTaskRecord) []pomomo.ExistingTaskRecord {
		return append(tasks, task)
	})
	if err != nil {
		return pomomo.ExistingTaskRecord{}, fmt.Errorf("failed to add task: %w", err)
	}
	s.l.Debug("added task", "id", task.ID)
	return task, nil
}

// Toggle flips the completion of the task with id. The second return is
// false when no such task exists.
func (s *Store) Toggle(ctx context.Context, id pomomo.TaskID) (pomomo.ExistingTaskRecord, bool, error) {
	var toggled pomomo.ExistingTaskRecord
	var found bool
	err := s.update(ctx, func(tasks []pomomo.ExistingTaskRecord) []pomomo.ExistingTaskRecord {
		i := slices.IndexFunc(tasks, func(t pomomo.ExistingTaskRecord) bool { return t.ID == id })
		if i < 0 {
			return tasks
		}
		tasks[i].Completed = !tasks[i].Completed
		tasks[i].UpdatedAt = s.now()
		toggled, found = tasks[i], true
		return tasks
	})
	if err != nil {
		return pomomo.ExistingTaskRecord{}, false, fmt.Errorf("failed to toggle task: %w", err)
	}
	return toggled, found, nil
}

// Remove deletes the task with id. Removing an absent task is not an error.
func (s *Store) Remove(ctx context.Context, id pomomo.TaskID) (bool, error) {
	var removed bool
	err := s.update(ctx, func(tasks []pomomo.ExistingTaskRecord) []pomomo.ExistingTaskRecord {
		n := len(tasks)
		tasks = slices.DeleteFunc(tasks, func(t pomomo.ExistingTaskRecord) bool { return t.ID == id })
		removed = len(tasks) != n
		return tasks
	})
	if err != nil {
		return false, fmt.Errorf("failed to remove task: %w", err)
	}
	return removed, nil
}

func (s *Store) update(ctx context.Context, fn func([]pomomo.ExistingTaskRecord) []pomomo.ExistingTaskRecord) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		tasks := fn(s.List(ctx))
		return pomomo.Save(ctx, s.repo, pomomo.TasksKey, tasks)
	})
}
