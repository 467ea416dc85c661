package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"
)

// Key names one of the fixed blobs persisted by the application.
type Key string

const (
	KeyProgress    Key = "progress"
	KeyQuizResults Key = "quiz-results"
	KeyNotes       Key = "notes"
	KeyBookmarks   Key = "bookmarks"
	KeySavedCode   Key = "saved-code"
	KeyTheme       Key = "theme"
)

// Keys lists every known key in a stable order.
func Keys() []Key {
	return []Key{KeyProgress, KeyQuizResults, KeyNotes, KeyBookmarks, KeySavedCode, KeyTheme}
}

// ErrUnknownKey is returned for keys outside the fixed key set.
var ErrUnknownKey = errors.New("unknown store key")

func (k Key) valid() bool {
	for _, known := range Keys() {
		if k == known {
			return true
		}
	}
	return false
}

// KV reads and writes opaque blobs. Get returns nil, nil for absent keys.
type KV interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, value []byte) error
	Delete(ctx context.Context, key Key) error
}

// Blobs is a KV that can run a read-modify-write sequence atomically.
type Blobs interface {
	KV

	// Atomic runs fn against a KV whose writes are committed only if fn
	// returns nil.
	Atomic(ctx context.Context, fn func(kv KV) error) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlKV implements KV over the blobs table.
type sqlKV struct {
	q queryer
}

func (kv sqlKV) Get(ctx context.Context, key Key) ([]byte, error) {
	if !key.valid() {
		return nil, fmt.Errorf("get %q: %w", key, ErrUnknownKey)
	}
	query, args := builder().Select("value").
		From(builder().Table(blobsTable)).
		Where(entsql.EQ("name", string(key))).
		Query()

	var value []byte
	err := kv.q.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (kv sqlKV) Set(ctx context.Context, key Key, value []byte) error {
	if !key.valid() {
		return fmt.Errorf("set %q: %w", key, ErrUnknownKey)
	}
	query, args := builder().Insert(blobsTable).
		Columns("name", "value", "updated_at").
		Values(string(key), value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := kv.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (kv sqlKV) Delete(ctx context.Context, key Key) error {
	if !key.valid() {
		return fmt.Errorf("delete %q: %w", key, ErrUnknownKey)
	}
	query, args := builder().Delete(blobsTable).
		Where(entsql.EQ("name", string(key))).
		Query()
	if _, err := kv.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key Key) ([]byte, error) {
	return sqlKV{q: s.db}.Get(ctx, key)
}

func (s *Store) Set(ctx context.Context, key Key, value []byte) error {
	return sqlKV{q: s.db}.Set(ctx, key, value)
}

func (s *Store) Delete(ctx context.Context, key Key) error {
	return sqlKV{q: s.db}.Delete(ctx, key)
}

// Atomic runs fn inside a single transaction.
func (s *Store) Atomic(ctx context.Context, fn func(kv KV) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(sqlKV{q: tx}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Clear deletes every known key in one transaction.
func Clear(ctx context.Context, b Blobs) error {
	return b.Atomic(ctx, func(kv KV) error {
		for _, k := range Keys() {
			if err := kv.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadJSON decodes the blob at key into a T. Absent keys yield the zero
// value. A blob that fails to decode is logged and also yields the zero
// value, so a corrupted entry never blocks the caller.
func ReadJSON[T any](ctx context.Context, kv KV, key Key, log *zap.Logger) (T, error) {
	var value T
	raw, err := kv.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return value, err
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		if log != nil {
			log.Warn("discarding malformed blob", zap.String("key", string(key)), zap.Error(err))
		}
		var zero T
		return zero, nil
	}
	return value, nil
}

// WriteJSON encodes v and stores it at key.
func WriteJSON(ctx context.Context, kv KV, key Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return kv.Set(ctx, key, raw)
}
