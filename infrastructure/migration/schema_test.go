package migration

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransactor struct {
	err    error
	called int
}

func (f *fakeTransactor) RunInTransaction(_ context.Context, _ func(*sql.Tx) error) error {
	f.called++
	return f.err
}

func TestMigrate(t *testing.T) {
	t.Run("propaga falha da transação", func(t *testing.T) {
		conn := &fakeTransactor{err: errors.New("conexão recusada")}

		err := Migrate(context.Background(), conn)

		require.Error(t, err)
		assert.Equal(t, 1, conn.called)
	})

	t.Run("instruções idempotentes", func(t *testing.T) {
		for _, stmt := range schema {
			assert.Contains(t, stmt.sql, "IF NOT EXISTS", stmt.name)
		}
	})
}
