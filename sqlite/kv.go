// Package sqlite implements repo interfaces
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-timer"
)

const (
	SelectAllEntries = "SELECT key, value, created_at, updated_at FROM kv"
	UpsertEntry      = "INSERT INTO kv (key, value, created_at, updated_at) VALUES %s ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"
)

type kvEntity struct {
	Key       string
	Value     string
	CreatedAt int64
	UpdatedAt int64
}

type kvRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
	now      func() time.Time
}

var _ pomomo.KVRepo = (*kvRepo)(nil)

func NewKVRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *kvRepo {
	return &kvRepo{
		dbGetter: dbGetter,
		l:        logger,
		now:      time.Now,
	}
}

func (r *kvRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("provide key")
	}

	db := r.dbGetter(ctx)
	row := db.QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE key=?", SelectAllEntries), key,
	)

	e, err := extractEntry(row)
	if err != nil {
		return nil, err
	}
	return []byte(e.Value), nil
}

func (r *kvRepo) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("provide key")
	}

	now := r.now().Unix()
	e := kvEntity{
		Key:       key,
		Value:     string(value),
		CreatedAt: now,
		UpdatedAt: now,
	}
	args := []any{
		e.Key,
		e.Value,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := fmt.Sprintf(UpsertEntry, GenerateParameters(len(args)))
	r.l.Debug("setting key", "query", query, "key", key)
	_, err := r.dbGetter(ctx).ExecContext(ctx, query, args...)
	return err
}

func extractEntry(s Scannable) (kvEntity, error) {
	var e kvEntity
	if err := s.Scan(&e.Key, &e.Value, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kvEntity{}, ErrNotFound
		}
		return kvEntity{}, err
	}
	return e, nil
}
