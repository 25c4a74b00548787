package cache

import (
	"time"

	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/selection"
)

// CurrentVersion é a versão do documento gravado por este código
const CurrentVersion = 2

// LocalState é o estado completo de um usuário, já com os segredos abertos
type LocalState struct {
	Version      int
	Status       domain.ConnectionStatus
	Credential   *domain.Credential
	BackendToken string
	Identity     *domain.Identity
	Profile      *domain.User
	BusinessInfo *domain.BusinessInfo
	Hierarchy    *domain.Hierarchy
	Selection    selection.State
	UpdatedAt    time.Time
}

func NewLocalState() *LocalState {
	return &LocalState{
		Version:   CurrentVersion,
		Status:    domain.StatusUnauthenticated,
		Selection: selection.New(),
	}
}

// stateDocument é o formato persistido (v2). Credencial e token do backend vão selados.
type stateDocument struct {
	Version      int                     `json:"version"`
	Status       domain.ConnectionStatus `json:"status"`
	Credential   string                  `json:"credential,omitempty"`
	BackendToken string                  `json:"backend_token,omitempty"`
	Identity     *domain.Identity        `json:"identity,omitempty"`
	Profile      *domain.User            `json:"profile,omitempty"`
	BusinessInfo *domain.BusinessInfo    `json:"business_info,omitempty"`
	Hierarchy    *domain.Hierarchy       `json:"hierarchy,omitempty"`
	Selection    selection.State         `json:"selection"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// legacyDocument é o formato v1, com as chaves soltas que a primeira versão do painel gravava
type legacyDocument struct {
	Version            int               `json:"version"`
	SelectedBusinesses map[string]bool   `json:"selectedBusinesses"`
	SelectedAdAccounts map[string]bool   `json:"selectedAdAccounts"`
	UserData           *domain.Identity  `json:"facebook_user_data"`
	Businesses         []domain.Business `json:"facebook_businesses"`
	AdAccounts         []legacyAdAccount `json:"facebook_ad_accounts"`
}

type legacyAdAccount struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BusinessID   string `json:"businessId"`
	BusinessName string `json:"businessName"`
}

type versionProbe struct {
	Version int `json:"version"`
}

// migrateLegacy converte o v1 para o estado atual. O mapa por business é
// descartado; o estado do business passa a ser derivado das contas.
func migrateLegacy(doc legacyDocument) *LocalState {
	state := NewLocalState()
	state.Identity = doc.UserData
	state.Selection = selection.FromMap(doc.SelectedAdAccounts)

	if len(doc.Businesses) > 0 || len(doc.AdAccounts) > 0 {
		hierarchy := &domain.Hierarchy{
			Businesses: doc.Businesses,
			Accounts:   make([]domain.AdAccount, 0, len(doc.AdAccounts)),
		}
		for _, acc := range doc.AdAccounts {
			hierarchy.Accounts = append(hierarchy.Accounts, domain.AdAccount{
				ID:         acc.ID,
				Name:       acc.Name,
				BusinessID: acc.BusinessID,
			})
		}
		state.Hierarchy = hierarchy
	}

	return state
}
