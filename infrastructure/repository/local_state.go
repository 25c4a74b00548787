package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/adlink-api/infrastructure/cache"
	"github.com/vfg2006/adlink-api/infrastructure/database/postgres"
)

const localStateTable = "local_state"

// LocalStateStore implementa cache.Store sobre a tabela local_state(key, value, updated_at)
type LocalStateStore struct {
	conn *postgres.Connection
	now  func() time.Time
}

func NewLocalStateStore(conn *postgres.Connection) *LocalStateStore {
	return &LocalStateStore{
		conn: conn,
		now:  time.Now,
	}
}

func (r *LocalStateStore) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := squirrel.
		Select("value").
		From(localStateTable).
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var value []byte
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, cache.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar %s: %w", key, err)
	}

	return value, nil
}

// Set faz upsert pela chave; a última escrita vence
func (r *LocalStateStore) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := squirrel.
		Insert(localStateTable).
		Columns("key", "value", "updated_at").
		Values(key, value, r.now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao gravar %s: %w", key, err)
	}

	return nil
}

func (r *LocalStateStore) Delete(ctx context.Context, key string) error {
	query, args, err := squirrel.
		Delete(localStateTable).
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao remover %s: %w", key, err)
	}

	return nil
}
