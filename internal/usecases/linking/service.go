package linking

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/backend/backendclient"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/meta"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/selection"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
	"github.com/vfg2006/adlink-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type LinkingService interface {
	AttachBackendSession(ctx context.Context, userID, token string, profile *domain.User) error
	BackendToken(ctx context.Context, userID string) (string, error)
	ResolveBusinessInfo(ctx context.Context, userID string) (*domain.BusinessInfo, error)

	BeginConnect(ctx context.Context, userID string) (*ConsentStart, error)
	CompleteConnect(ctx context.Context, nonce, code string) (*Snapshot, error)
	CancelConnect(ctx context.Context, nonce, reason string) error
	ConnectWith(ctx context.Context, userID string, prompt func(authURL string) error) (*Snapshot, error)
	RefreshHierarchy(ctx context.Context, userID string) (*Snapshot, error)
	Snapshot(ctx context.Context, userID string) (*Snapshot, error)
	ToggleBusiness(ctx context.Context, userID, businessID string) (*Snapshot, error)
	ToggleAccount(ctx context.Context, userID, businessID, accountID string) (*Snapshot, error)
	Save(ctx context.Context, userID string) (*domain.LinkedAccountRecord, error)
	ListLinked(ctx context.Context, userID string) ([]domain.LinkedAccountRecord, error)
	GetLinked(ctx context.Context, userID, id string) (*domain.LinkedAccountRecord, error)
	DeleteLinked(ctx context.Context, userID, id string) error
	Disconnect(ctx context.Context, userID string) (*Snapshot, error)
	Teardown(ctx context.Context, userID string) error
	RefreshAll(ctx context.Context) (*RefreshSummary, error)
}

// ConsentStart é o que a camada de apresentação precisa para abrir o diálogo de consentimento
type ConsentStart struct {
	AuthURL   string    `json:"auth_url"`
	State     string    `json:"state"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RefreshSummary resume uma execução agendada de RefreshAll
type RefreshSummary struct {
	Sessions  int `json:"sessions"`
	Refreshed int `json:"refreshed"`
	Renewed   int `json:"renewed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type Service struct {
	cfg       *config.Config
	manager   *Manager
	connector meta.MetaConnector
	backend   backendclient.Client
	now       func() time.Time
}

func NewService(
	cfg *config.Config,
	manager *Manager,
	connector meta.MetaConnector,
	backend backendclient.Client,
) LinkingService {
	return &Service{
		cfg:       cfg,
		manager:   manager,
		connector: connector,
		backend:   backend,
		now:       time.Now,
	}
}

func (s *Service) session(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, NewLinkingError(domain.ErrMissingCredential, apiErrors.ErrInvalidToken, "", "usuário não identificado")
	}

	sess, err := s.manager.Session(ctx, userID)
	if err != nil {
		return nil, NewLinkingError(err, apiErrors.ErrDatabaseOperation, userID, "Falha ao carregar o estado local")
	}
	return sess, nil
}

// AttachBackendSession guarda o token do backend e o perfil após login ou cadastro
func (s *Service) AttachBackendSession(ctx context.Context, userID, token string, profile *domain.User) error {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state.BackendToken != token {
		// Outro login pode pertencer a outra empresa
		sess.state.BusinessInfo = nil
	}
	sess.state.BackendToken = token
	if profile != nil {
		sess.state.Profile = profile
	}
	sess.persist(ctx)
	return nil
}

func (s *Service) BackendToken(ctx context.Context, userID string) (string, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state.BackendToken == "" {
		return "", NewLinkingError(ErrMissingBackendJWT, apiErrors.ErrInvalidToken, userID, "Faça login novamente")
	}
	return sess.state.BackendToken, nil
}

// ResolveBusinessInfo devolve a empresa em cache ou busca no backend e guarda
func (s *Service) ResolveBusinessInfo(ctx context.Context, userID string) (*domain.BusinessInfo, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if info := sess.state.BusinessInfo; info != nil && info.ID != "" {
		copied := *info
		sess.mu.Unlock()
		return &copied, nil
	}
	token := sess.state.BackendToken
	epoch := sess.epoch
	sess.mu.Unlock()

	if token == "" {
		return nil, NewLinkingError(ErrMissingBackendJWT, apiErrors.ErrInvalidToken, userID, "Faça login novamente")
	}

	info, err := s.backend.GetBusinessInfo(ctx, token)
	if err != nil {
		return nil, classify(err, userID, false)
	}

	sess.mu.Lock()
	if sess.current(epoch) {
		sess.state.BusinessInfo = info
		sess.persist(ctx)
	}
	sess.mu.Unlock()

	return info, nil
}

// BeginConnect inicia o consentimento. Um consentimento pendente anterior é descartado.
func (s *Service) BeginConnect(ctx context.Context, userID string) (*ConsentStart, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	nonce, err := metaclient.NewState()
	if err != nil {
		return nil, NewLinkingError(err, apiErrors.ErrInternalServer, userID, "Falha ao gerar o estado do consentimento")
	}

	redirectURI := s.cfg.Meta.RedirectURI
	authURL, err := s.connector.AuthorizationURL(nonce, redirectURI)
	if err != nil {
		return nil, NewLinkingError(err, apiErrors.ErrInternalServer, userID, "Falha ao montar a URL de consentimento")
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.transition(domain.StatusAuthenticating); err != nil {
		return nil, err
	}

	if sess.consent != nil {
		s.manager.dropConsent(sess.consent.nonce)
	}

	expiresAt := s.now().Add(s.consentTimeout())
	sess.consent = &pendingConsent{
		nonce:       nonce,
		redirectURI: redirectURI,
		expiresAt:   expiresAt,
	}
	sess.lastError = ""
	sess.persist(ctx)
	s.manager.registerConsent(nonce, userID)

	log.ForContext(ctx).WithFields(log.Fields{"user_id": userID}).Info("Consentimento da plataforma iniciado")

	return &ConsentStart{
		AuthURL:   authURL,
		State:     nonce,
		ExpiresAt: expiresAt,
	}, nil
}

// CompleteConnect valida o nonce, troca o código pela credencial e carrega a hierarquia
func (s *Service) CompleteConnect(ctx context.Context, nonce, code string) (*Snapshot, error) {
	userID, ok := s.manager.takeConsent(nonce)
	if !ok {
		return nil, NewLinkingError(ErrInvalidConsent, apiErrors.ErrInvalidConsent, "", "")
	}

	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	consent := sess.consent
	if consent == nil || consent.nonce != nonce || sess.state.Status != domain.StatusAuthenticating {
		sess.mu.Unlock()
		return nil, NewLinkingError(ErrInvalidConsent, apiErrors.ErrInvalidConsent, userID, "")
	}
	sess.consent = nil

	if s.now().After(consent.expiresAt) {
		_ = sess.transition(domain.StatusUnauthenticated)
		sess.persist(ctx)
		sess.mu.Unlock()
		return nil, NewLinkingError(ErrInvalidConsent, apiErrors.ErrInvalidConsent, userID, "consentimento expirado")
	}

	if code == "" {
		_ = sess.transition(domain.StatusUnauthenticated)
		sess.persist(ctx)
		sess.mu.Unlock()
		return nil, classify(metaclient.ErrMissingCode, userID, true)
	}

	epoch := sess.epoch
	sess.mu.Unlock()

	cred, err := s.connector.CompleteConsent(ctx, code, consent.redirectURI)
	return s.finishConnect(ctx, sess, epoch, cred, err)
}

// CancelConnect volta de authenticating para unauthenticated
func (s *Service) CancelConnect(ctx context.Context, nonce, reason string) error {
	userID, ok := s.manager.takeConsent(nonce)
	if !ok {
		return NewLinkingError(ErrInvalidConsent, apiErrors.ErrInvalidConsent, "", "")
	}

	sess, err := s.session(ctx, userID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.consent == nil || sess.consent.nonce != nonce {
		return NewLinkingError(ErrInvalidConsent, apiErrors.ErrInvalidConsent, userID, "")
	}

	sess.consent = nil
	sess.state.Credential = nil
	if err := sess.transition(domain.StatusUnauthenticated); err != nil {
		return err
	}
	sess.lastError = reason
	sess.persist(ctx)

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id": userID,
		"reason":  reason,
	}).Info("Consentimento cancelado pelo usuário")

	return nil
}

// ConnectWith executa o consentimento bloqueante (cliente de terminal)
func (s *Service) ConnectWith(ctx context.Context, userID string, prompt func(authURL string) error) (*Snapshot, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if err := sess.transition(domain.StatusAuthenticating); err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	if sess.consent != nil {
		s.manager.dropConsent(sess.consent.nonce)
		sess.consent = nil
	}
	sess.lastError = ""
	sess.persist(ctx)
	epoch := sess.epoch
	sess.mu.Unlock()

	cred, err := s.connector.Authenticate(ctx, prompt)
	return s.finishConnect(ctx, sess, epoch, cred, err)
}

func (s *Service) finishConnect(
	ctx context.Context,
	sess *Session,
	epoch uint64,
	cred *domain.Credential,
	connectErr error,
) (*Snapshot, error) {
	userID := sess.userID

	sess.mu.Lock()
	if !sess.current(epoch) {
		sess.mu.Unlock()
		return nil, NewLinkingError(ErrSessionClosed, apiErrors.ErrInvalidRequest, userID, "")
	}

	if connectErr != nil {
		sess.state.Credential = nil
		_ = sess.transition(domain.StatusUnauthenticated)
		sess.lastError = connectErr.Error()
		sess.persist(ctx)
		sess.mu.Unlock()

		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": userID,
			"error":   connectErr.Error(),
		}).Warn("Falha ao concluir o consentimento da plataforma")
		return nil, classify(connectErr, userID, true)
	}

	if err := sess.transition(domain.StatusAuthenticated); err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	sess.state.Credential = cred
	if sess.consent != nil {
		s.manager.dropConsent(sess.consent.nonce)
		sess.consent = nil
	}
	sess.persist(ctx)
	credential := copyCredential(cred)
	sess.mu.Unlock()

	identity, err := s.connector.FetchIdentity(ctx, credential)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Falha ao buscar a identidade na plataforma")
	} else {
		sess.mu.Lock()
		if sess.current(epoch) {
			sess.state.Identity = identity
			sess.persist(ctx)
		}
		sess.mu.Unlock()
	}

	return s.RefreshHierarchy(ctx, userID)
}

// RefreshHierarchy busca businesses e contas e funde com a seleção. Em caso de
// erro a última hierarquia válida é mantida.
func (s *Service) RefreshHierarchy(ctx context.Context, userID string) (*Snapshot, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.state.Status == domain.StatusFetchingHierarchy {
		sess.mu.Unlock()
		return nil, NewLinkingError(ErrRefreshInProgress, apiErrors.ErrBusy, userID, "")
	}
	if sess.state.Credential.IsZero() {
		sess.mu.Unlock()
		return nil, NewLinkingError(ErrNotConnected, apiErrors.ErrPlatformCredential, userID, "Conecte a conta da plataforma")
	}
	if err := sess.transition(domain.StatusFetchingHierarchy); err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	sess.lastError = ""
	sess.persist(ctx)
	epoch := sess.epoch
	credential := copyCredential(sess.state.Credential)
	sess.mu.Unlock()

	hierarchy, fetchErr := s.connector.FetchHierarchy(ctx, credential)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.current(epoch) {
		log.ForContext(ctx).WithFields(log.Fields{"user_id": userID}).Info("Resultado da busca descartado: sessão desconectada durante a busca")
		return nil, NewLinkingError(ErrSessionClosed, apiErrors.ErrInvalidRequest, userID, "")
	}

	if fetchErr != nil {
		sess.lastError = fetchErr.Error()
		if domain.IsAuthError(fetchErr) {
			// Credencial inválida: volta para unauthenticated mantendo a hierarquia
			sess.state.Credential = nil
			_ = sess.transition(domain.StatusUnauthenticated)
		} else {
			_ = sess.transition(domain.StatusError)
		}
		sess.persist(ctx)

		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": userID,
			"error":   fetchErr.Error(),
		}).Error("Falha ao atualizar a hierarquia")
		return nil, classify(fetchErr, userID, true)
	}

	sess.state.Hierarchy = hierarchy
	sess.state.Selection = selection.MergeFreshAccounts(sess.state.Selection, hierarchy.Accounts)
	if err := sess.transition(domain.StatusHierarchyReady); err != nil {
		return nil, err
	}
	sess.persist(ctx)

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"businesses": len(hierarchy.Businesses),
		"accounts":   len(hierarchy.Accounts),
		"warnings":   len(hierarchy.Warnings),
	}).Info("Hierarquia atualizada")

	return sess.snapshot(), nil
}

// Snapshot lê apenas o estado local, sem rede
func (s *Service) Snapshot(ctx context.Context, userID string) (*Snapshot, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

func (s *Service) ToggleBusiness(ctx context.Context, userID, businessID string) (*Snapshot, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.state.Selection = selection.ToggleBusiness(sess.state.Selection, sess.hierarchy().Accounts, businessID)
	sess.persist(ctx)
	return sess.snapshot(), nil
}

func (s *Service) ToggleAccount(ctx context.Context, userID, businessID, accountID string) (*Snapshot, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.state.Selection = selection.ToggleAccount(sess.state.Selection, sess.hierarchy().Accounts, accountID, businessID)
	sess.persist(ctx)
	return sess.snapshot(), nil
}

// Save envia a seleção ao backend. Só um salvamento por sessão por vez.
func (s *Service) Save(ctx context.Context, userID string) (*domain.LinkedAccountRecord, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.saving {
		sess.mu.Unlock()
		return nil, NewLinkingError(ErrSaveInProgress, apiErrors.ErrSaveInProgress, userID, "")
	}

	token := sess.state.BackendToken
	if token == "" {
		sess.mu.Unlock()
		return nil, NewLinkingError(ErrMissingBackendJWT, apiErrors.ErrInvalidToken, userID, "Faça login novamente")
	}

	hierarchy := sess.hierarchy()
	businesses, accounts, current := hierarchy.Businesses, hierarchy.Accounts, sess.state.Selection

	ownerID := ""
	if sess.state.BusinessInfo != nil {
		ownerID = sess.state.BusinessInfo.ID
	}

	record, err := selection.BuildSavePayload(businesses, accounts, current, ownerID)
	if err != nil && !errors.Is(err, selection.ErrMissingOwner) {
		sess.mu.Unlock()
		observeSave(err)
		return nil, classify(err, userID, false)
	}

	sess.saving = true
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		sess.saving = false
		sess.mu.Unlock()
	}()

	if record == nil {
		info, err := s.ResolveBusinessInfo(ctx, userID)
		if err != nil {
			observeSave(err)
			return nil, err
		}

		record, err = selection.BuildSavePayload(businesses, accounts, current, info.ID)
		if err != nil {
			observeSave(err)
			return nil, classify(err, userID, false)
		}
	}

	created, err := s.backend.CreateLinkedAccount(ctx, token, record)
	observeSave(err)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Falha ao salvar contas vinculadas")
		return nil, classify(err, userID, false)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"record_id":  created.ID,
		"businesses": len(created.MetaBusinesses),
		"accounts":   created.AccountCount(),
	}).Info("Contas vinculadas salvas")

	return created, nil
}

func (s *Service) ListLinked(ctx context.Context, userID string) ([]domain.LinkedAccountRecord, error) {
	token, err := s.BackendToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.backend.ListLinkedAccounts(ctx, token)
	if err != nil {
		return nil, classify(err, userID, false)
	}
	return records, nil
}

func (s *Service) GetLinked(ctx context.Context, userID, id string) (*domain.LinkedAccountRecord, error) {
	token, err := s.BackendToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	record, err := s.backend.GetLinkedAccount(ctx, token, id)
	if err != nil {
		return nil, classify(err, userID, false)
	}
	return record, nil
}

func (s *Service) DeleteLinked(ctx context.Context, userID, id string) error {
	token, err := s.BackendToken(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.backend.DeleteLinkedAccount(ctx, token, id); err != nil {
		return classify(err, userID, false)
	}
	return nil
}

// Disconnect descarta credencial, identidade e hierarquia. A seleção é mantida.
func (s *Service) Disconnect(ctx context.Context, userID string) (*Snapshot, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.consent != nil {
		s.manager.dropConsent(sess.consent.nonce)
	}
	sess.epoch++
	sess.dropConnection()
	sess.persist(ctx)

	log.ForContext(ctx).WithFields(log.Fields{"user_id": userID}).Info("Conta da plataforma desconectada")
	return sess.snapshot(), nil
}

// Teardown encerra a sessão no logout e apaga o estado local
func (s *Service) Teardown(ctx context.Context, userID string) error {
	if sess := s.manager.Remove(userID); sess != nil {
		sess.mu.Lock()
		sess.epoch++
		sess.closed = true
		sess.consent = nil
		sess.mu.Unlock()
	}

	if err := s.manager.clear(ctx, userID); err != nil {
		return NewLinkingError(err, apiErrors.ErrDatabaseOperation, userID, "Falha ao remover o estado local")
	}
	return nil
}

// RefreshAll atualiza todas as sessões carregadas que têm credencial, renovando
// antes os tokens de longa duração perto de expirar
func (s *Service) RefreshAll(ctx context.Context) (*RefreshSummary, error) {
	sessions := s.manager.Loaded()
	summary := &RefreshSummary{Sessions: len(sessions)}

	for _, sess := range sessions {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		sess.mu.Lock()
		credential := copyCredential(sess.state.Credential)
		status := sess.state.Status
		epoch := sess.epoch
		sess.mu.Unlock()

		if credential.IsZero() || status == domain.StatusFetchingHierarchy || status == domain.StatusAuthenticating {
			summary.Skipped++
			continue
		}

		if credential.LongLived && metaclient.NeedsRenewal(credential, s.now()) {
			renewed, err := s.connector.RenewCredential(ctx, credential)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id": sess.userID,
					"error":   err.Error(),
				}).Warn("Falha ao renovar credencial da plataforma")
			} else {
				sess.mu.Lock()
				if sess.current(epoch) {
					sess.state.Credential = renewed
					sess.persist(ctx)
					summary.Renewed++
				}
				sess.mu.Unlock()
			}
		}

		if _, err := s.RefreshHierarchy(ctx, sess.userID); err != nil {
			summary.Failed++
			continue
		}
		summary.Refreshed++
	}

	logrus.WithFields(logrus.Fields{
		"sessions":  summary.Sessions,
		"refreshed": summary.Refreshed,
		"renewed":   summary.Renewed,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
	}).Info("Atualização agendada das hierarquias concluída")

	return summary, nil
}

func (s *Service) consentTimeout() time.Duration {
	if s.cfg.Meta.ConsentTimeout <= 0 {
		return 5 * time.Minute
	}
	return s.cfg.Meta.ConsentTimeout
}
