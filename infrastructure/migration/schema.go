// Package migration cria as tabelas usadas pela API quando ainda não existem.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Transactor é o recorte da conexão Postgres usado pelo bootstrap
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

type statement struct {
	name string
	sql  string
}

var schema = []statement{
	{
		name: "local_state",
		sql: `CREATE TABLE IF NOT EXISTS local_state (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		name: "creatives",
		sql: `CREATE TABLE IF NOT EXISTS creatives (
	id          TEXT PRIMARY KEY,
	creator_id  TEXT NOT NULL,
	business_id TEXT,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	file_url    TEXT NOT NULL,
	file_type   TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'pending',
	feedback    TEXT,
	performance JSONB,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
)`,
	},
	{
		name: "creatives_creator_idx",
		sql:  `CREATE INDEX IF NOT EXISTS creatives_creator_idx ON creatives (creator_id)`,
	},
	{
		name: "creatives_status_idx",
		sql:  `CREATE INDEX IF NOT EXISTS creatives_status_idx ON creatives (status)`,
	},
}

// Migrate aplica o schema numa única transação. Todas as instruções são idempotentes.
func Migrate(ctx context.Context, conn Transactor) error {
	logrus.Infof("Iniciando bootstrap do schema (%d instruções)...", len(schema))
	startTime := time.Now()

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt.sql); err != nil {
				return fmt.Errorf("erro ao aplicar %s: %w", stmt.name, err)
			}
			logrus.Debugf("Schema %s aplicado", stmt.name)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.Infof("Bootstrap do schema concluído em %v", time.Since(startTime))
	return nil
}
