package meta

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/adlink-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_connector.go -package=mocks

// MetaConnector encapsula o fluxo de consentimento e a leitura da hierarquia
// business -> contas de anúncio
type MetaConnector interface {
	Authenticate(ctx context.Context, prompt func(authURL string) error) (*domain.Credential, error)
	AuthorizationURL(state, redirectURI string) (string, error)
	CompleteConsent(ctx context.Context, code, redirectURI string) (*domain.Credential, error)
	RenewCredential(ctx context.Context, cred *domain.Credential) (*domain.Credential, error)
	FetchIdentity(ctx context.Context, cred *domain.Credential) (*domain.Identity, error)
	FetchBusinesses(ctx context.Context, cred *domain.Credential) ([]domain.Business, error)
	FetchAdAccountsForBusinesses(ctx context.Context, cred *domain.Credential, businesses []domain.Business) (*AccountsResult, error)
	FetchHierarchy(ctx context.Context, cred *domain.Credential) (*domain.Hierarchy, error)
}

// AccountsResult agrega as contas de vários businesses. Falhas individuais viram
// Warnings e lista vazia para o business.
type AccountsResult struct {
	Accounts   []domain.AdAccount
	ByBusiness map[string][]domain.AdAccount
	Warnings   []domain.FetchWarning
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
	now    func() time.Time
}

func New(cfg *config.Config, client metaclient.Client) MetaConnector {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

// Authenticate executa o consentimento completo com um listener local e bloqueia
// até o callback. Cada chamada começa do zero.
func (s *MetaIntegrator) Authenticate(ctx context.Context, prompt func(authURL string) error) (*domain.Credential, error) {
	state, err := metaclient.NewState()
	if err != nil {
		return nil, err
	}

	server, err := metaclient.StartCallbackServer(s.cfg.Meta.CallbackAddr, state)
	if err != nil {
		return nil, err
	}
	defer server.Close()

	authURL, err := s.Client.AuthorizationURL(state, server.RedirectURI())
	if err != nil {
		return nil, err
	}

	if err := prompt(authURL); err != nil {
		return nil, err
	}

	timeout := s.cfg.Meta.ConsentTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	code, err := server.WaitForCode(ctx, timeout)
	if err != nil {
		if errors.Is(err, metaclient.ErrConsentCancelled) {
			logrus.Info("meta: consentimento cancelado pelo usuário")
		}
		return nil, err
	}

	return s.CompleteConsent(ctx, code, server.RedirectURI())
}

func (s *MetaIntegrator) AuthorizationURL(state, redirectURI string) (string, error) {
	return s.Client.AuthorizationURL(state, redirectURI)
}

// CompleteConsent troca o código e tenta promover o token para longa duração.
// Se a promoção falhar, o token de curta duração é mantido.
func (s *MetaIntegrator) CompleteConsent(ctx context.Context, code, redirectURI string) (*domain.Credential, error) {
	shortLived, err := s.Client.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		logrus.WithError(err).Error("meta: falha ao trocar o código de autorização")
		return nil, err
	}

	longLived, err := s.Client.GetLongLivedToken(ctx, shortLived.AccessToken)
	if err != nil {
		logrus.WithError(err).Warn("meta: falha ao obter token de longa duração, usando token de curta duração")
		return metaclient.ToCredential(shortLived, s.now(), false), nil
	}

	return metaclient.ToCredential(longLived, s.now(), true), nil
}

// RenewCredential troca a credencial atual por um novo token de longa duração
func (s *MetaIntegrator) RenewCredential(ctx context.Context, cred *domain.Credential) (*domain.Credential, error) {
	if cred.IsZero() {
		return nil, domain.NewAuthError(domain.ErrMissingCredential, "")
	}

	if !cred.ExpiresAt.IsZero() && !s.now().Before(cred.ExpiresAt.Add(24*time.Hour)) {
		logrus.Warn("Token está muito próximo da expiração ou já expirou - pode ser necessária reautorização manual")
	}

	tokenResp, err := s.Client.GetLongLivedToken(ctx, cred.AccessToken)
	if err != nil {
		return nil, err
	}

	renewed := metaclient.ToCredential(tokenResp, s.now(), true)
	if renewed.AccessToken == cred.AccessToken {
		logrus.Info("Token renovado, mas não mudou")
	}

	return renewed, nil
}

func (s *MetaIntegrator) FetchIdentity(ctx context.Context, cred *domain.Credential) (*domain.Identity, error) {
	if cred.IsZero() {
		return nil, domain.NewAuthError(domain.ErrMissingCredential, "")
	}

	me, err := s.Client.GetMe(ctx, cred.AccessToken)
	observeFetch("me", err)
	if err != nil {
		return nil, err
	}

	return &domain.Identity{
		ID:    me.ID,
		Name:  me.Name,
		Email: me.Email,
	}, nil
}

func (s *MetaIntegrator) FetchBusinesses(ctx context.Context, cred *domain.Credential) ([]domain.Business, error) {
	if cred.IsZero() {
		return nil, domain.NewAuthError(domain.ErrMissingCredential, "")
	}

	bms, err := s.Client.GetBusinesses(ctx, cred.AccessToken)
	observeFetch("businesses", err)
	if err != nil {
		logrus.WithError(err).Error("meta: falha ao buscar businesses")
		return nil, err
	}

	businesses := make([]domain.Business, 0, len(bms))
	for _, b := range bms {
		businesses = append(businesses, domain.Business{ID: b.ID, Name: b.Name})
	}

	return businesses, nil
}

// FetchAdAccountsForBusinesses busca as contas de cada business em paralelo,
// limitado por META_MAX_CONCURRENT_FETCHES. A falha de um business vira warning
// e lista vazia para ele. Só quando todos falham por credencial o AuthError é
// devolvido.
func (s *MetaIntegrator) FetchAdAccountsForBusinesses(
	ctx context.Context,
	cred *domain.Credential,
	businesses []domain.Business,
) (*AccountsResult, error) {
	if cred.IsZero() {
		return nil, domain.NewAuthError(domain.ErrMissingCredential, "")
	}

	perBusiness := make([][]metadomain.AdAccount, len(businesses))
	failures := make([]error, len(businesses))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrentFetches())

	for i, b := range businesses {
		g.Go(func() error {
			accounts, err := s.Client.GetAdAccountsByBusinessID(ctx, cred.AccessToken, b.ID)
			observeFetch("owned_ad_accounts", err)
			if err != nil {
				failures[i] = err
				return nil
			}
			perBusiness[i] = accounts
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := allAuthFailures(failures); err != nil {
		return nil, err
	}

	result := &AccountsResult{
		Accounts:   make([]domain.AdAccount, 0),
		ByBusiness: make(map[string][]domain.AdAccount, len(businesses)),
		Warnings:   make([]domain.FetchWarning, 0),
	}

	for i, b := range businesses {
		accounts := make([]domain.AdAccount, 0, len(perBusiness[i]))

		if failures[i] != nil {
			logrus.WithFields(logrus.Fields{
				"business_id": b.ID,
				"error":       failures[i].Error(),
			}).Warn("meta: falha ao buscar contas do business")

			result.Warnings = append(result.Warnings, domain.FetchWarning{
				BusinessID: b.ID,
				Message:    failures[i].Error(),
			})
		}

		for _, acc := range perBusiness[i] {
			accounts = append(accounts, domain.AdAccount{
				ID:         acc.ID,
				Name:       acc.Name,
				BusinessID: b.ID,
			})
		}

		result.ByBusiness[b.ID] = accounts
		result.Accounts = append(result.Accounts, accounts...)
	}

	logrus.WithFields(logrus.Fields{
		"businesses":     len(businesses),
		"total_accounts": len(result.Accounts),
		"warnings":       len(result.Warnings),
	}).Info("meta: contas de anúncio carregadas")

	return result, nil
}

// FetchHierarchy busca os businesses e em seguida as contas de cada um
func (s *MetaIntegrator) FetchHierarchy(ctx context.Context, cred *domain.Credential) (*domain.Hierarchy, error) {
	businesses, err := s.FetchBusinesses(ctx, cred)
	if err != nil {
		return nil, err
	}

	accounts, err := s.FetchAdAccountsForBusinesses(ctx, cred, businesses)
	if err != nil {
		return nil, err
	}

	return &domain.Hierarchy{
		Businesses: businesses,
		Accounts:   accounts.Accounts,
		Warnings:   accounts.Warnings,
		FetchedAt:  s.now(),
	}, nil
}

func (s *MetaIntegrator) maxConcurrentFetches() int {
	if s.cfg.Meta.MaxConcurrentFetches < 1 {
		return 1
	}
	return s.cfg.Meta.MaxConcurrentFetches
}

// allAuthFailures devolve o primeiro AuthError quando todos os businesses
// falharam por credencial
func allAuthFailures(failures []error) error {
	if len(failures) == 0 {
		return nil
	}
	for _, err := range failures {
		if err == nil || !domain.IsAuthError(err) {
			return nil
		}
	}
	return failures[0]
}
