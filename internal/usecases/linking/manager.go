package linking

import (
	"context"
	"sync"

	"github.com/vfg2006/adlink-api/infrastructure/cache"
)

//go:generate mockgen -source=manager.go -destination=mocks/mock_state_repository.go -package=mocks

// StateRepository persiste o estado local de cada usuário
type StateRepository interface {
	Load(ctx context.Context, userID string) (*cache.LocalState, error)
	Save(ctx context.Context, userID string, state *cache.LocalState) error
	Clear(ctx context.Context, userID string) error
}

// Manager guarda uma Session por usuário, criada no primeiro acesso a partir do
// cache e removida no logout
type Manager struct {
	mu       sync.Mutex
	repo     StateRepository
	sessions map[string]*Session
	consents map[string]string // nonce -> userID
}

func NewManager(repo StateRepository) *Manager {
	return &Manager{
		repo:     repo,
		sessions: make(map[string]*Session),
		consents: make(map[string]string),
	}
}

// Session devolve a sessão do usuário, carregando o estado do cache se necessário
func (m *Manager) Session(ctx context.Context, userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[userID]; ok {
		return session, nil
	}

	state, err := m.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	session := newSession(userID, state, m.repo)
	m.sessions[userID] = session
	return session, nil
}

// Remove tira a sessão da memória e devolve a instância removida, se houver
func (m *Manager) Remove(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[userID]
	if !ok {
		return nil
	}
	delete(m.sessions, userID)

	for nonce, owner := range m.consents {
		if owner == userID {
			delete(m.consents, nonce)
		}
	}
	return session
}

// Loaded retorna as sessões carregadas no momento
func (m *Manager) Loaded() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

func (m *Manager) registerConsent(nonce, userID string) {
	m.mu.Lock()
	m.consents[nonce] = userID
	m.mu.Unlock()
}

// takeConsent consome o nonce; cada nonce só pode ser usado uma vez
func (m *Manager) takeConsent(nonce string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userID, ok := m.consents[nonce]
	if ok {
		delete(m.consents, nonce)
	}
	return userID, ok
}

func (m *Manager) dropConsent(nonce string) {
	m.mu.Lock()
	delete(m.consents, nonce)
	m.mu.Unlock()
}

func (m *Manager) clear(ctx context.Context, userID string) error {
	return m.repo.Clear(ctx, userID)
}
