// Package cache guarda o estado local de cada usuário (seleção, hierarquia e
// credenciais seladas) em um backend de chave/valor.
package cache

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("chave não encontrada no cache")

// Store é o contrato mínimo de um backend de cache
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
