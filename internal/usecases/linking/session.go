package linking

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/adlink-api/infrastructure/cache"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/selection"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
	"github.com/vfg2006/adlink-api/pkg/log"
)

// Session é o estado de vinculação de um usuário. Toda mutação acontece com mu
// travado e é gravada no cache em seguida.
type Session struct {
	mu     sync.Mutex
	userID string
	repo   StateRepository
	state  *cache.LocalState

	// epoch muda a cada desconexão ou logout; resultados de buscas iniciadas
	// em outra época são descartados
	epoch     uint64
	closed    bool
	saving    bool
	lastError string
	consent   *pendingConsent
}

type pendingConsent struct {
	nonce       string
	redirectURI string
	expiresAt   time.Time
}

// Snapshot é a visão da sessão entregue à camada de apresentação
type Snapshot struct {
	Status              domain.ConnectionStatus  `json:"status"`
	Identity            *domain.Identity         `json:"identity,omitempty"`
	Businesses          []selection.BusinessView `json:"businesses"`
	Warnings            []domain.FetchWarning    `json:"warnings"`
	SelectedCount       int                      `json:"selected_count"`
	FetchedAt           *time.Time               `json:"fetched_at,omitempty"`
	CredentialExpiresAt *time.Time               `json:"credential_expires_at,omitempty"`
	LastError           string                   `json:"last_error,omitempty"`
	Saving              bool                     `json:"saving"`
}

func newSession(userID string, state *cache.LocalState, repo StateRepository) *Session {
	if state == nil {
		state = cache.NewLocalState()
	}
	return &Session{
		userID: userID,
		repo:   repo,
		state:  state,
	}
}

func (s *Session) UserID() string {
	return s.userID
}

// transition valida e aplica a mudança de status. Repetir o status atual é permitido.
func (s *Session) transition(next domain.ConnectionStatus) error {
	current := s.state.Status
	if current == next {
		return nil
	}
	if !current.CanTransition(next) {
		return NewLinkingError(ErrInvalidTransition, apiErrors.ErrInvalidRequest, s.userID, string(current)+" -> "+string(next))
	}
	s.state.Status = next
	return nil
}

// persist grava o estado no cache. Falha de gravação não desfaz a mutação em memória.
func (s *Session) persist(ctx context.Context) {
	if s.closed {
		return
	}
	if err := s.repo.Save(ctx, s.userID, s.state); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": s.userID,
			"error":   err.Error(),
		}).Error("Erro ao gravar estado local da sessão")
	}
}

// current indica se a sessão ainda está na mesma época de quando a operação começou
func (s *Session) current(epoch uint64) bool {
	return !s.closed && s.epoch == epoch
}

// dropConnection remove credencial, identidade e hierarquia. A seleção é mantida.
func (s *Session) dropConnection() {
	s.state.Credential = nil
	s.state.Identity = nil
	s.state.Hierarchy = nil
	s.state.Status = domain.StatusUnauthenticated
	s.consent = nil
	s.lastError = ""
}

func (s *Session) snapshot() *Snapshot {
	snap := &Snapshot{
		Status:     s.state.Status,
		Identity:   s.state.Identity,
		Businesses: make([]selection.BusinessView, 0),
		Warnings:   make([]domain.FetchWarning, 0),
		LastError:  s.lastError,
		Saving:     s.saving,
	}

	if h := s.state.Hierarchy; h != nil {
		snap.Businesses = selection.View(s.state.Selection, h.Businesses, h.Accounts)
		if len(h.Warnings) > 0 {
			snap.Warnings = append(snap.Warnings, h.Warnings...)
		}
		if !h.FetchedAt.IsZero() {
			fetchedAt := h.FetchedAt
			snap.FetchedAt = &fetchedAt
		}
	}

	for _, business := range snap.Businesses {
		for _, account := range business.Accounts {
			if account.Selected {
				snap.SelectedCount++
			}
		}
	}

	if cred := s.state.Credential; !cred.IsZero() && !cred.ExpiresAt.IsZero() {
		expiresAt := cred.ExpiresAt
		snap.CredentialExpiresAt = &expiresAt
	}

	return snap
}

func (s *Session) hierarchy() *domain.Hierarchy {
	if s.state.Hierarchy == nil {
		return &domain.Hierarchy{}
	}
	return s.state.Hierarchy
}

func copyCredential(cred *domain.Credential) *domain.Credential {
	if cred == nil {
		return nil
	}
	copied := *cred
	return &copied
}
