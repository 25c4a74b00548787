package linking_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adlink-api/infrastructure/cache"
	backendmocks "github.com/vfg2006/adlink-api/infrastructure/integrator/backend/mocks"
	metamocks "github.com/vfg2006/adlink-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/selection"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
	"github.com/vfg2006/adlink-api/internal/usecases/linking/mocks"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

const (
	userID      = "user-1"
	redirectURI = "http://localhost:8000/v1/meta/callback"
)

type fixture struct {
	connector *metamocks.MockMetaConnector
	backend   *backendmocks.MockClient
	store     *cache.MemoryStore
	repo      *cache.StateRepository
	cfg       *config.Config
	service   linking.LinkingService
}

func newFixture(t *testing.T, opts ...func(cfg *config.Config)) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Meta.RedirectURI = redirectURI
	cfg.Meta.ConsentTimeout = time.Minute
	for _, opt := range opts {
		opt(cfg)
	}

	store := cache.NewMemoryStore()
	repo := cache.NewStateRepository(store, cache.NewSealer("segredo-de-teste"))

	f := &fixture{
		connector: metamocks.NewMockMetaConnector(ctrl),
		backend:   backendmocks.NewMockClient(ctrl),
		store:     store,
		repo:      repo,
		cfg:       cfg,
	}
	f.service = linking.NewService(cfg, linking.NewManager(repo), f.connector, f.backend)
	return f
}

// reload simula um reinício: novo Manager sobre o mesmo cache
func (f *fixture) reload() linking.LinkingService {
	return linking.NewService(f.cfg, linking.NewManager(f.repo), f.connector, f.backend)
}

func fixtureHierarchy() *domain.Hierarchy {
	return &domain.Hierarchy{
		Businesses: []domain.Business{
			{ID: "b1", Name: "Loja Centro"},
			{ID: "b2", Name: "Loja Norte"},
		},
		Accounts: []domain.AdAccount{
			{ID: "a1", Name: "Conta 1", BusinessID: "b1"},
			{ID: "a2", Name: "Conta 2", BusinessID: "b1"},
			{ID: "a3", Name: "Conta 3", BusinessID: "b2"},
		},
		FetchedAt: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func credential() *domain.Credential {
	return &domain.Credential{AccessToken: "EAAB-token", LongLived: true, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
}

// seed grava um estado conectado com hierarquia pronta
func (f *fixture) seed(t *testing.T, mutate func(state *cache.LocalState)) {
	state := cache.NewLocalState()
	state.Status = domain.StatusHierarchyReady
	state.Credential = credential()
	state.BackendToken = "jwt-backend"
	state.BusinessInfo = &domain.BusinessInfo{ID: "info-1", CompanyName: "ACME"}
	state.Hierarchy = fixtureHierarchy()
	state.Selection = selection.MergeFreshAccounts(selection.New(), state.Hierarchy.Accounts)
	if mutate != nil {
		mutate(state)
	}
	require.NoError(t, f.repo.Save(context.Background(), userID, state))
}

func requireCode(t *testing.T, err error, code string) *linking.LinkingError {
	t.Helper()
	require.Error(t, err)
	var linkingErr *linking.LinkingError
	require.True(t, errors.As(err, &linkingErr), "esperava LinkingError, veio %T", err)
	assert.Equal(t, code, linkingErr.Code)
	return linkingErr
}

func TestConnectFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("consentimento completo carrega identidade e hierarquia", func(t *testing.T) {
		f := newFixture(t)

		f.connector.EXPECT().AuthorizationURL(gomock.Any(), redirectURI).
			DoAndReturn(func(state, redirect string) (string, error) {
				return "https://www.facebook.com/v22.0/dialog/oauth?state=" + state, nil
			})

		start, err := f.service.BeginConnect(ctx, userID)
		require.NoError(t, err)
		assert.NotEmpty(t, start.State)
		assert.Contains(t, start.AuthURL, start.State)

		snap, err := f.service.Snapshot(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAuthenticating, snap.Status)

		gomock.InOrder(
			f.connector.EXPECT().CompleteConsent(gomock.Any(), "code-1", redirectURI).Return(credential(), nil),
			f.connector.EXPECT().FetchIdentity(gomock.Any(), gomock.Any()).Return(&domain.Identity{ID: "me1", Name: "Maria"}, nil),
			f.connector.EXPECT().FetchHierarchy(gomock.Any(), gomock.Any()).Return(fixtureHierarchy(), nil),
		)

		snap, err = f.service.CompleteConnect(ctx, start.State, "code-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusHierarchyReady, snap.Status)
		assert.Equal(t, "me1", snap.Identity.ID)
		require.Len(t, snap.Businesses, 2)
		assert.Equal(t, "b1", snap.Businesses[0].ID)
		assert.Equal(t, 0, snap.SelectedCount)

		// O nonce só vale uma vez
		_, err = f.service.CompleteConnect(ctx, start.State, "code-1")
		requireCode(t, err, apiErrors.ErrInvalidConsent)

		// A credencial foi gravada selada no cache
		state, err := f.repo.Load(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "EAAB-token", state.Credential.AccessToken)
		assert.Equal(t, domain.StatusHierarchyReady, state.Status)
	})

	t.Run("nonce desconhecido", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.CompleteConnect(ctx, "nao-existe", "code")
		requireCode(t, err, apiErrors.ErrInvalidConsent)
	})

	t.Run("novo início descarta o consentimento pendente", func(t *testing.T) {
		f := newFixture(t)
		f.connector.EXPECT().AuthorizationURL(gomock.Any(), redirectURI).Return("https://dialog", nil).Times(2)

		first, err := f.service.BeginConnect(ctx, userID)
		require.NoError(t, err)
		second, err := f.service.BeginConnect(ctx, userID)
		require.NoError(t, err)
		assert.NotEqual(t, first.State, second.State)

		_, err = f.service.CompleteConnect(ctx, first.State, "code")
		requireCode(t, err, apiErrors.ErrInvalidConsent)
	})

	t.Run("cancelamento volta para unauthenticated", func(t *testing.T) {
		f := newFixture(t)
		f.connector.EXPECT().AuthorizationURL(gomock.Any(), redirectURI).Return("https://dialog", nil)

		start, err := f.service.BeginConnect(ctx, userID)
		require.NoError(t, err)

		require.NoError(t, f.service.CancelConnect(ctx, start.State, "user_denied"))

		snap, err := f.service.Snapshot(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnauthenticated, snap.Status)
		assert.Equal(t, "user_denied", snap.LastError)

		err = f.service.CancelConnect(ctx, start.State, "user_denied")
		requireCode(t, err, apiErrors.ErrInvalidConsent)
	})

	t.Run("consentimento expirado", func(t *testing.T) {
		f := newFixture(t, func(cfg *config.Config) { cfg.Meta.ConsentTimeout = time.Nanosecond })
		f.connector.EXPECT().AuthorizationURL(gomock.Any(), redirectURI).Return("https://dialog", nil)

		start, err := f.service.BeginConnect(ctx, userID)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)

		_, err = f.service.CompleteConnect(ctx, start.State, "code")
		requireCode(t, err, apiErrors.ErrInvalidConsent)

		snap, err := f.service.Snapshot(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnauthenticated, snap.Status)
	})

	t.Run("callback sem código encerra o consentimento", func(t *testing.T) {
		f := newFixture(t)
		f.connector.EXPECT().AuthorizationURL(gomock.Any(), redirectURI).Return("https://dialog", nil)

		start, err := f.service.BeginConnect(ctx, userID)
		require.NoError(t, err)

		_, err = f.service.CompleteConnect(ctx, start.State, "")
		requireCode(t, err, apiErrors.ErrInvalidConsent)

		snap, err := f.service.Snapshot(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnauthenticated, snap.Status)

		_, err = f.service.CompleteConnect(ctx, start.State, "code")
		requireCode(t, err, apiErrors.ErrInvalidConsent)
	})

	t.Run("falha na troca do código", func(t *testing.T) {
		f := newFixture(t)
		f.connector.EXPECT().AuthorizationURL(gomock.Any(), redirectURI).Return("https://dialog", nil)
		f.connector.EXPECT().CompleteConsent(gomock.Any(), "code", redirectURI).
			Return(nil, &domain.RemoteError{Status: http.StatusBadRequest, Message: "code expired"})

		start, err := f.service.BeginConnect(ctx, userID)
		require.NoError(t, err)

		_, err = f.service.CompleteConnect(ctx, start.State, "code")
		linkingErr := requireCode(t, err, apiErrors.ErrRemoteRejected)
		assert.Equal(t, "status 400", linkingErr.Details)

		snap, err := f.service.Snapshot(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnauthenticated, snap.Status)
	})

	t.Run("conexão bloqueante pelo terminal", func(t *testing.T) {
		f := newFixture(t)

		var prompted string
		f.connector.EXPECT().Authenticate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, prompt func(string) error) (*domain.Credential, error) {
				if err := prompt("https://dialog?state=x"); err != nil {
					return nil, err
				}
				return credential(), nil
			})
		f.connector.EXPECT().FetchIdentity(gomock.Any(), gomock.Any()).Return(nil, errors.New("sem e-mail"))
		f.connector.EXPECT().FetchHierarchy(gomock.Any(), gomock.Any()).Return(fixtureHierarchy(), nil)

		snap, err := f.service.ConnectWith(ctx, userID, func(authURL string) error {
			prompted = authURL
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "https://dialog?state=x", prompted)
		assert.Equal(t, domain.StatusHierarchyReady, snap.Status)
		assert.Nil(t, snap.Identity)
	})

	t.Run("consentimento negado no terminal", func(t *testing.T) {
		f := newFixture(t)
		f.connector.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(nil, metaclient.ErrConsentCancelled)

		_, err := f.service.ConnectWith(ctx, userID, func(string) error { return nil })
		requireCode(t, err, apiErrors.ErrConsentCancelled)

		snap, err := f.service.Snapshot(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnauthenticated, snap.Status)
	})
}

func TestRefreshHierarchy(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		seed     func(state *cache.LocalState)
		setup    func(f *fixture)
		validate func(t *testing.T, f *fixture, snap *linking.Snapshot, err error)
	}{
		{
			name: "contas novas entram desmarcadas e a seleção existente é mantida",
			seed: func(state *cache.LocalState) {
				state.Hierarchy = &domain.Hierarchy{
					Businesses: []domain.Business{{ID: "b1", Name: "Loja Centro"}},
					Accounts:   []domain.AdAccount{{ID: "a1", Name: "Conta 1", BusinessID: "b1"}},
				}
				state.Selection = selection.FromMap(map[string]bool{"a1": true, "antiga": true})
			},
			setup: func(f *fixture) {
				f.connector.EXPECT().FetchHierarchy(gomock.Any(), gomock.Any()).Return(fixtureHierarchy(), nil)
			},
			validate: func(t *testing.T, f *fixture, snap *linking.Snapshot, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.StatusHierarchyReady, snap.Status)
				assert.Equal(t, 1, snap.SelectedCount)
				assert.True(t, snap.Businesses[0].Partial)

				state, err := f.repo.Load(context.Background(), userID)
				require.NoError(t, err)
				assert.Equal(t, map[string]bool{"a1": true, "a2": false, "a3": false, "antiga": true}, state.Selection.Accounts)
			},
		},
		{
			name: "falha parcial chega como aviso",
			setup: func(f *fixture) {
				h := fixtureHierarchy()
				h.Accounts = h.Accounts[:2]
				h.Warnings = []domain.FetchWarning{{BusinessID: "b2", Message: "rate limit"}}
				f.connector.EXPECT().FetchHierarchy(gomock.Any(), gomock.Any()).Return(h, nil)
			},
			validate: func(t *testing.T, f *fixture, snap *linking.Snapshot, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.StatusHierarchyReady, snap.Status)
				require.Len(t, snap.Warnings, 1)
				assert.Equal(t, "b2", snap.Warnings[0].BusinessID)
				assert.Empty(t, snap.Businesses[1].Accounts)
			},
		},
		{
			name: "falha de rede mantém a última hierarquia",
			setup: func(f *fixture) {
				f.connector.EXPECT().FetchHierarchy(gomock.Any(), gomock.Any()).
					Return(nil, &domain.TransportError{Op: "businesses", Err: errors.New("connection reset")})
			},
			validate: func(t *testing.T, f *fixture, snap *linking.Snapshot, err error) {
				requireCode(t, err, apiErrors.ErrCommunication)

				current, err := f.service.Snapshot(context.Background(), userID)
				require.NoError(t, err)
				assert.Equal(t, domain.StatusError, current.Status)
				assert.Len(t, current.Businesses, 2)
				assert.NotEmpty(t, current.LastError)
			},
		},
		{
			name: "credencial expirada desconecta e mantém a hierarquia",
			setup: func(f *fixture) {
				f.connector.EXPECT().FetchHierarchy(gomock.Any(), gomock.Any()).
					Return(nil, domain.NewAuthError(domain.ErrExpiredCredential, "Session has expired"))
			},
			validate: func(t *testing.T, f *fixture, snap *linking.Snapshot, err error) {
				requireCode(t, err, apiErrors.ErrPlatformCredential)

				current, err := f.service.Snapshot(context.Background(), userID)
				require.NoError(t, err)
				assert.Equal(t, domain.StatusUnauthenticated, current.Status)
				assert.Len(t, current.Businesses, 2)

				state, err := f.repo.Load(context.Background(), userID)
				require.NoError(t, err)
				assert.Nil(t, state.Credential)
			},
		},
		{
			name: "sem credencial não chama a plataforma",
			seed: func(state *cache.LocalState) {
				state.Credential = nil
				state.Status = domain.StatusUnauthenticated
			},
			setup: func(f *fixture) {},
			validate: func(t *testing.T, f *fixture, snap *linking.Snapshot, err error) {
				requireCode(t, err, apiErrors.ErrPlatformCredential)
				assert.ErrorIs(t, err, linking.ErrNotConnected)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seed(t, tt.seed)
			tt.setup(f)

			snap, err := f.service.RefreshHierarchy(ctx, userID)
			tt.validate(t, f, snap, err)
		})
	}
}

func TestRefreshHierarchyInProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	f.connector.EXPECT().FetchHierarchy(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cred *domain.Credential) (*domain.Hierarchy, error) {
			close(started)
			<-release
			return fixtureHierarchy(), nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := f.service.RefreshHierarchy(ctx, userID)
		done <- err
	}()

	<-started
	_, err := f.service.RefreshHierarchy(ctx, userID)
	requireCode(t, err, apiErrors.ErrBusy)

	// Leituras e seleção continuam disponíveis durante a busca
	snap, err := f.service.ToggleAccount(ctx, userID, "b1", "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFetchingHierarchy, snap.Status)

	close(release)
	require.NoError(t, <-done)

	snap, err = f.service.Snapshot(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.SelectedCount)
}

func TestTeardownDiscardsLateFetch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, nil)

	f.connector.EXPECT().FetchHierarchy(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cred *domain.Credential) (*domain.Hierarchy, error) {
			require.NoError(t, f.service.Teardown(ctx, userID))
			return fixtureHierarchy(), nil
		})

	_, err := f.service.RefreshHierarchy(ctx, userID)
	assert.ErrorIs(t, err, linking.ErrSessionClosed)

	_, err = f.store.Get(ctx, cache.StateKey(userID))
	assert.ErrorIs(t, err, cache.ErrNotFound, "o resultado atrasado não pode recriar o estado")
}

func TestSnapshotWithoutNetwork(t *testing.T) {
	f := newFixture(t)
	f.seed(t, func(state *cache.LocalState) {
		state.Credential.ExpiresAt = time.Now().Add(-time.Hour)
		state.Selection = selection.FromMap(map[string]bool{"a1": true, "a2": true})
	})

	// Nenhuma expectativa no conector: qualquer chamada de rede falha o teste
	snap, err := f.service.Snapshot(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusHierarchyReady, snap.Status)
	require.Len(t, snap.Businesses, 2)
	assert.True(t, snap.Businesses[0].Selected)
	assert.False(t, snap.Businesses[1].Selected)
	assert.Equal(t, 2, snap.SelectedCount)
	require.NotNil(t, snap.CredentialExpiresAt)
}

func TestToggles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, nil)

	snap, err := f.service.ToggleBusiness(ctx, userID, "b1")
	require.NoError(t, err)
	assert.True(t, snap.Businesses[0].Selected)
	assert.Equal(t, 2, snap.SelectedCount)

	snap, err = f.service.ToggleAccount(ctx, userID, "b1", "a1")
	require.NoError(t, err)
	assert.False(t, snap.Businesses[0].Selected)
	assert.True(t, snap.Businesses[0].Partial)

	// Ids desconhecidos não alteram nada
	snap, err = f.service.ToggleBusiness(ctx, userID, "nao-existe")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.SelectedCount)
	snap, err = f.service.ToggleAccount(ctx, userID, "b2", "a1")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.SelectedCount)

	// A seleção sobrevive a um reinício
	snap, err = f.reload().Snapshot(ctx, userID)
	require.NoError(t, err)
	assert.True(t, snap.Businesses[0].Partial)
	assert.Equal(t, 1, snap.SelectedCount)
}

func TestSave(t *testing.T) {
	ctx := context.Background()

	expectedRecord := &domain.LinkedAccountRecord{
		BusinessID: "info-1",
		MetaBusinesses: []domain.LinkedBusiness{{
			MetaBusinessID:   "b1",
			MetaBusinessName: "Loja Centro",
			Accounts:         []domain.LinkedAdAccount{{MetaAdAccountID: "a2", MetaAdAccountName: "Conta 2"}},
		}},
	}

	tests := []struct {
		name     string
		seed     func(state *cache.LocalState)
		setup    func(f *fixture)
		validate func(t *testing.T, f *fixture, record *domain.LinkedAccountRecord, err error)
	}{
		{
			name: "salva apenas as contas selecionadas",
			seed: func(state *cache.LocalState) {
				state.Selection = selection.FromMap(map[string]bool{"a1": false, "a2": true, "a3": false})
			},
			setup: func(f *fixture) {
				created := *expectedRecord
				created.ID = "rec-1"
				f.backend.EXPECT().CreateLinkedAccount(gomock.Any(), "jwt-backend", expectedRecord).Return(&created, nil)
			},
			validate: func(t *testing.T, f *fixture, record *domain.LinkedAccountRecord, err error) {
				require.NoError(t, err)
				assert.Equal(t, "rec-1", record.ID)
			},
		},
		{
			name:  "nada selecionado não chama o backend",
			setup: func(f *fixture) {},
			validate: func(t *testing.T, f *fixture, record *domain.LinkedAccountRecord, err error) {
				requireCode(t, err, apiErrors.ErrNothingSelected)
				assert.ErrorIs(t, err, selection.ErrNothingSelected)
				assert.Nil(t, record)
			},
		},
		{
			name: "busca a empresa quando não está em cache e guarda o resultado",
			seed: func(state *cache.LocalState) {
				state.BusinessInfo = nil
				state.Selection = selection.FromMap(map[string]bool{"a2": true})
			},
			setup: func(f *fixture) {
				f.backend.EXPECT().GetBusinessInfo(gomock.Any(), "jwt-backend").
					Return(&domain.BusinessInfo{ID: "info-1"}, nil).Times(1)
				f.backend.EXPECT().CreateLinkedAccount(gomock.Any(), "jwt-backend", expectedRecord).
					Return(expectedRecord, nil).Times(2)
			},
			validate: func(t *testing.T, f *fixture, record *domain.LinkedAccountRecord, err error) {
				require.NoError(t, err)

				_, err = f.service.Save(context.Background(), userID)
				require.NoError(t, err)

				state, err := f.repo.Load(context.Background(), userID)
				require.NoError(t, err)
				assert.Equal(t, "info-1", state.BusinessInfo.ID)
			},
		},
		{
			name: "sem token do backend",
			seed: func(state *cache.LocalState) {
				state.BackendToken = ""
				state.Selection = selection.FromMap(map[string]bool{"a2": true})
			},
			setup: func(f *fixture) {},
			validate: func(t *testing.T, f *fixture, record *domain.LinkedAccountRecord, err error) {
				requireCode(t, err, apiErrors.ErrInvalidToken)
			},
		},
		{
			name: "recusa do backend preserva o status original",
			seed: func(state *cache.LocalState) {
				state.Selection = selection.FromMap(map[string]bool{"a2": true})
			},
			setup: func(f *fixture) {
				f.backend.EXPECT().CreateLinkedAccount(gomock.Any(), "jwt-backend", gomock.Any()).
					Return(nil, &domain.RemoteError{Status: http.StatusUnprocessableEntity, Message: "duplicado"})
			},
			validate: func(t *testing.T, f *fixture, record *domain.LinkedAccountRecord, err error) {
				requireCode(t, err, apiErrors.ErrRemoteRejected)
				remoteErr, ok := domain.AsRemoteError(err)
				require.True(t, ok)
				assert.Equal(t, http.StatusUnprocessableEntity, remoteErr.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seed(t, tt.seed)
			tt.setup(f)

			record, err := f.service.Save(ctx, userID)
			tt.validate(t, f, record, err)
		})
	}
}

func TestSaveInProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, func(state *cache.LocalState) {
		state.Selection = selection.FromMap(map[string]bool{"a1": true})
	})

	started := make(chan struct{})
	release := make(chan struct{})
	f.backend.EXPECT().CreateLinkedAccount(gomock.Any(), "jwt-backend", gomock.Any()).
		DoAndReturn(func(ctx context.Context, token string, record *domain.LinkedAccountRecord) (*domain.LinkedAccountRecord, error) {
			close(started)
			<-release
			return record, nil
		})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = f.service.Save(ctx, userID)
	}()

	<-started
	_, err := f.service.Save(ctx, userID)
	requireCode(t, err, apiErrors.ErrSaveInProgress)

	snap, err := f.service.Snapshot(ctx, userID)
	require.NoError(t, err)
	assert.True(t, snap.Saving)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)

	snap, err = f.service.Snapshot(ctx, userID)
	require.NoError(t, err)
	assert.False(t, snap.Saving)
}

func TestLinkedAccountsPassThrough(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, nil)

	records := []domain.LinkedAccountRecord{{ID: "rec-1", BusinessID: "info-1"}}
	f.backend.EXPECT().ListLinkedAccounts(gomock.Any(), "jwt-backend").Return(records, nil)
	f.backend.EXPECT().GetLinkedAccount(gomock.Any(), "jwt-backend", "info-1").Return(&records[0], nil)
	f.backend.EXPECT().DeleteLinkedAccount(gomock.Any(), "jwt-backend", "rec-1").Return(nil)
	f.backend.EXPECT().DeleteLinkedAccount(gomock.Any(), "jwt-backend", "rec-x").
		Return(&domain.RemoteError{Status: http.StatusNotFound, Message: "not found"})

	list, err := f.service.ListLinked(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, records, list)

	record, err := f.service.GetLinked(ctx, userID, "info-1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", record.ID)

	require.NoError(t, f.service.DeleteLinked(ctx, userID, "rec-1"))

	err = f.service.DeleteLinked(ctx, userID, "rec-x")
	requireCode(t, err, apiErrors.ErrNotFound)
}

func TestDisconnectAndTeardown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, func(state *cache.LocalState) {
		state.Identity = &domain.Identity{ID: "me1"}
		state.Selection = selection.FromMap(map[string]bool{"a1": true})
	})

	snap, err := f.service.Disconnect(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.Identity)
	assert.Empty(t, snap.Businesses)

	state, err := f.repo.Load(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, state.Credential)
	assert.True(t, state.Selection.IsSelected("a1"), "a seleção sobrevive à desconexão")
	assert.Equal(t, "jwt-backend", state.BackendToken)

	require.NoError(t, f.service.Teardown(ctx, userID))
	_, err = f.store.Get(ctx, cache.StateKey(userID))
	assert.ErrorIs(t, err, cache.ErrNotFound)

	snap, err = f.service.Snapshot(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.SelectedCount)
}

func TestAttachBackendSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, nil)

	_, err := f.service.BackendToken(ctx, "outro-usuario")
	requireCode(t, err, apiErrors.ErrInvalidToken)

	require.NoError(t, f.service.AttachBackendSession(ctx, userID, "jwt-novo", &domain.User{ID: userID, Name: "Maria"}))

	token, err := f.service.BackendToken(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "jwt-novo", token)

	// Token novo invalida a empresa em cache
	f.backend.EXPECT().GetBusinessInfo(gomock.Any(), "jwt-novo").Return(&domain.BusinessInfo{ID: "info-2"}, nil)
	info, err := f.service.ResolveBusinessInfo(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "info-2", info.ID)
}

func TestRefreshAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, func(state *cache.LocalState) {
		state.Credential.ExpiresAt = time.Now().Add(-time.Hour)
	})

	// Carrega duas sessões: uma conectada e outra sem credencial
	_, err := f.service.Snapshot(ctx, userID)
	require.NoError(t, err)
	_, err = f.service.Snapshot(ctx, "user-2")
	require.NoError(t, err)

	renewed := credential()
	renewed.AccessToken = "EAAB-renovado"
	f.connector.EXPECT().RenewCredential(gomock.Any(), gomock.Any()).Return(renewed, nil)
	f.connector.EXPECT().FetchHierarchy(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cred *domain.Credential) (*domain.Hierarchy, error) {
			assert.Equal(t, "EAAB-renovado", cred.AccessToken)
			return fixtureHierarchy(), nil
		})

	summary, err := f.service.RefreshAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, &linking.RefreshSummary{Sessions: 2, Refreshed: 1, Renewed: 1, Skipped: 1}, summary)
}

func TestLoadStateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockStateRepository(ctrl)
	repo.EXPECT().Load(gomock.Any(), userID).Return(nil, errors.New("redis indisponível"))

	service := linking.NewService(&config.Config{}, linking.NewManager(repo), nil, nil)

	_, err := service.Snapshot(context.Background(), userID)
	requireCode(t, err, apiErrors.ErrDatabaseOperation)
}
