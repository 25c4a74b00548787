package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/selection"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+s.Addr(), DefaultPrefix)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, s
}

func TestStores(t *testing.T) {
	ctx := context.Background()

	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "adlink", "state.toml"))
	require.NoError(t, err)

	redisStore, _ := setupTestRedis(t)

	stores := map[string]Store{
		"memória": NewMemoryStore(),
		"arquivo": fileStore,
		"redis":   redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "state:u1")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "state:u1", []byte(`{"version":2}`)))
			require.NoError(t, store.Set(ctx, "state:u2", []byte(`{"version":1}`)))

			got, err := store.Get(ctx, "state:u1")
			require.NoError(t, err)
			assert.Equal(t, `{"version":2}`, string(got))

			require.NoError(t, store.Set(ctx, "state:u1", []byte(`{"version":3}`)))
			got, err = store.Get(ctx, "state:u1")
			require.NoError(t, err)
			assert.Equal(t, `{"version":3}`, string(got))

			require.NoError(t, store.Delete(ctx, "state:u1"))
			_, err = store.Get(ctx, "state:u1")
			assert.ErrorIs(t, err, ErrNotFound)

			// Remover chave inexistente não é erro
			assert.NoError(t, store.Delete(ctx, "state:nao-existe"))

			got, err = store.Get(ctx, "state:u2")
			require.NoError(t, err)
			assert.Equal(t, `{"version":1}`, string(got))
		})
	}
}

func TestRedisStorePrefix(t *testing.T) {
	store, s := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Set(ctx, "state:u1", []byte("valor")))

	raw, err := s.Get("adlink:state:u1")
	require.NoError(t, err)
	assert.Equal(t, "valor", raw)
	assert.False(t, s.Exists("state:u1"))
}

func TestNewRedisStoreInvalidURL(t *testing.T) {
	_, err := NewRedisStore("://sem-esquema", DefaultPrefix)
	assert.Error(t, err)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache", "state.toml")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "state:u1", []byte(`{"selection":{"accounts":{"a1":true}}}`)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, cacheFileMode, info.Mode().Perm())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "version = 1")

	// Outra instância no mesmo caminho enxerga o valor gravado
	other, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := other.Get(ctx, "state:u1")
	require.NoError(t, err)
	assert.Equal(t, `{"selection":{"accounts":{"a1":true}}}`, string(got))

	t.Run("arquivo corrompido retorna erro", func(t *testing.T) {
		broken := filepath.Join(t.TempDir(), "state.toml")
		require.NoError(t, os.WriteFile(broken, []byte("isto = [nao é toml"), 0o600))

		store, err := NewFileStore(broken)
		require.NoError(t, err)
		_, err = store.Get(ctx, "state:u1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("contexto cancelado", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := store.Get(cancelled, "state:u1")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSealer(t *testing.T) {
	sealer := NewSealer("segredo")

	sealed, err := sealer.Seal([]byte("token-super-secreto"))
	require.NoError(t, err)
	assert.NotContains(t, sealed, "token-super-secreto")

	again, err := sealer.Seal([]byte("token-super-secreto"))
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "cada selagem usa um nonce novo")

	plain, err := sealer.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "token-super-secreto", string(plain))

	_, err = NewSealer("outro-segredo").Open(sealed)
	assert.ErrorIs(t, err, ErrUnsealable)

	_, err = sealer.Open("nao-e-base64!!")
	assert.ErrorIs(t, err, ErrUnsealable)

	empty, err := sealer.Seal(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func newTestRepository(store Store, secret string) *StateRepository {
	repo := NewStateRepository(store, NewSealer(secret))
	repo.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return repo
}

func fullState() *LocalState {
	state := NewLocalState()
	state.Status = domain.StatusHierarchyReady
	state.Credential = &domain.Credential{
		AccessToken: "EAAB-token",
		TokenType:   "bearer",
		ExpiresAt:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		LongLived:   true,
	}
	state.BackendToken = "jwt-backend"
	state.Identity = &domain.Identity{ID: "me1", Name: "Maria"}
	state.BusinessInfo = &domain.BusinessInfo{ID: "info-1", CompanyName: "ACME"}
	state.Hierarchy = &domain.Hierarchy{
		Businesses: []domain.Business{{ID: "b1", Name: "Loja"}},
		Accounts: []domain.AdAccount{
			{ID: "a1", Name: "Conta 1", BusinessID: "b1"},
			{ID: "a2", Name: "Conta 2", BusinessID: "b1"},
		},
	}
	state.Selection = selection.FromMap(map[string]bool{"a1": true, "a2": false})
	return state
}

func TestStateRepository(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func(t *testing.T, store *MemoryStore)
		secret   string
		validate func(t *testing.T, state *LocalState, store *MemoryStore)
	}{
		{
			name:   "estado ausente vira estado vazio",
			setup:  func(t *testing.T, store *MemoryStore) {},
			secret: "k",
			validate: func(t *testing.T, state *LocalState, store *MemoryStore) {
				assert.Equal(t, CurrentVersion, state.Version)
				assert.Equal(t, domain.StatusUnauthenticated, state.Status)
				assert.Equal(t, 0, state.Selection.SelectedCount())
				assert.Nil(t, state.Hierarchy)
			},
		},
		{
			name: "ida e volta preserva o estado e sela os segredos",
			setup: func(t *testing.T, store *MemoryStore) {
				require.NoError(t, newTestRepository(store, "k").Save(ctx, "u1", fullState()))
			},
			secret: "k",
			validate: func(t *testing.T, state *LocalState, store *MemoryStore) {
				raw, err := store.Get(ctx, StateKey("u1"))
				require.NoError(t, err)
				assert.NotContains(t, string(raw), "EAAB-token")
				assert.NotContains(t, string(raw), "jwt-backend")

				assert.Equal(t, domain.StatusHierarchyReady, state.Status)
				require.NotNil(t, state.Credential)
				assert.Equal(t, "EAAB-token", state.Credential.AccessToken)
				assert.True(t, state.Credential.LongLived)
				assert.Equal(t, "jwt-backend", state.BackendToken)
				assert.Equal(t, "info-1", state.BusinessInfo.ID)
				assert.Len(t, state.Hierarchy.Accounts, 2)
				assert.True(t, state.Selection.IsSelected("a1"))
				assert.False(t, state.Selection.IsSelected("a2"))
				assert.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), state.UpdatedAt)
			},
		},
		{
			name: "chave diferente descarta segredos e desconecta",
			setup: func(t *testing.T, store *MemoryStore) {
				require.NoError(t, newTestRepository(store, "k").Save(ctx, "u1", fullState()))
			},
			secret: "outra-chave",
			validate: func(t *testing.T, state *LocalState, store *MemoryStore) {
				assert.Nil(t, state.Credential)
				assert.Empty(t, state.BackendToken)
				assert.Equal(t, domain.StatusUnauthenticated, state.Status)
				// Hierarquia e seleção continuam disponíveis
				assert.Len(t, state.Hierarchy.Businesses, 1)
				assert.True(t, state.Selection.IsSelected("a1"))
			},
		},
		{
			name: "documento corrompido vira estado vazio",
			setup: func(t *testing.T, store *MemoryStore) {
				require.NoError(t, store.Set(ctx, StateKey("u1"), []byte("{isto não é json")))
			},
			secret: "k",
			validate: func(t *testing.T, state *LocalState, store *MemoryStore) {
				assert.Equal(t, domain.StatusUnauthenticated, state.Status)
				assert.Empty(t, state.Selection.Accounts)
			},
		},
		{
			name: "versão futura é tratada como corrompida",
			setup: func(t *testing.T, store *MemoryStore) {
				require.NoError(t, store.Set(ctx, StateKey("u1"), []byte(`{"version":9,"selection":{"accounts":{"a1":true}}}`)))
			},
			secret: "k",
			validate: func(t *testing.T, state *LocalState, store *MemoryStore) {
				assert.Empty(t, state.Selection.Accounts)
			},
		},
		{
			name: "formato v1 é migrado",
			setup: func(t *testing.T, store *MemoryStore) {
				legacy := `{
					"selectedBusinesses": {"b1": true},
					"selectedAdAccounts": {"a1": true, "a2": false},
					"facebook_user_data": {"id": "me1", "name": "Maria"},
					"facebook_businesses": [{"id": "b1", "name": "Loja"}],
					"facebook_ad_accounts": [
						{"id": "a1", "name": "Conta 1", "businessId": "b1", "businessName": "Loja"},
						{"id": "a2", "name": "Conta 2", "businessId": "b1", "businessName": "Loja"}
					]
				}`
				require.NoError(t, store.Set(ctx, StateKey("u1"), []byte(legacy)))
			},
			secret: "k",
			validate: func(t *testing.T, state *LocalState, store *MemoryStore) {
				assert.Equal(t, CurrentVersion, state.Version)
				assert.Equal(t, domain.StatusUnauthenticated, state.Status)
				assert.Equal(t, "me1", state.Identity.ID)
				assert.Equal(t, map[string]bool{"a1": true, "a2": false}, state.Selection.Accounts)
				require.NotNil(t, state.Hierarchy)
				assert.Equal(t, []domain.AdAccount{
					{ID: "a1", Name: "Conta 1", BusinessID: "b1"},
					{ID: "a2", Name: "Conta 2", BusinessID: "b1"},
				}, state.Hierarchy.Accounts)
				assert.False(t, selection.BusinessSelected(state.Selection, state.Hierarchy.Accounts, "b1"))
			},
		},
		{
			name: "busca interrompida volta ao último estado estável",
			setup: func(t *testing.T, store *MemoryStore) {
				state := fullState()
				state.Status = domain.StatusFetchingHierarchy
				require.NoError(t, newTestRepository(store, "k").Save(ctx, "u1", state))
			},
			secret: "k",
			validate: func(t *testing.T, state *LocalState, store *MemoryStore) {
				assert.Equal(t, domain.StatusHierarchyReady, state.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			tt.setup(t, store)

			state, err := newTestRepository(store, tt.secret).Load(ctx, "u1")
			require.NoError(t, err)
			tt.validate(t, state, store)
		})
	}
}

func TestStateRepositoryClear(t *testing.T) {
	ctx := context.Background()
	store, s := setupTestRedis(t)
	repo := newTestRepository(store, "k")

	require.NoError(t, repo.Save(ctx, "u1", fullState()))
	require.NoError(t, repo.Save(ctx, "u2", fullState()))
	assert.True(t, s.Exists("adlink:state:u1"))

	require.NoError(t, repo.Clear(ctx, "u1"))
	assert.False(t, s.Exists("adlink:state:u1"))
	assert.True(t, s.Exists("adlink:state:u2"))

	state, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnauthenticated, state.Status)
	assert.Nil(t, state.Credential)
}

func TestStateRepositoryStoreFailure(t *testing.T) {
	store, s := setupTestRedis(t)
	repo := newTestRepository(store, "k")
	s.Close()

	_, err := repo.Load(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "estado local"))
}
