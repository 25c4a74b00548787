// Package selection mantém o estado de seleção de businesses e contas de anúncio.
//
// A seleção por conta é a única fonte de verdade. O estado de um business
// (totalmente ou parcialmente selecionado) é sempre calculado na leitura a partir
// das contas conhecidas daquele business. Todas as operações são puras: recebem um
// State e devolvem um novo State, sem alterar o original.
package selection

import (
	"github.com/vfg2006/adlink-api/internal/domain"
)

// State é o mapa de seleção por conta
type State struct {
	Accounts map[string]bool `json:"accounts"`
}

func New() State {
	return State{Accounts: make(map[string]bool)}
}

// FromMap cria um State a partir de um mapa já existente (ex.: cache)
func FromMap(accounts map[string]bool) State {
	s := New()
	for id, selected := range accounts {
		s.Accounts[id] = selected
	}
	return s
}

func (s State) clone() State {
	return FromMap(s.Accounts)
}

// IsSelected informa se a conta está selecionada. Contas desconhecidas não estão.
func (s State) IsSelected(accountID string) bool {
	return s.Accounts[accountID]
}

// SelectedCount retorna quantas contas estão selecionadas, incluindo entradas antigas
func (s State) SelectedCount() int {
	total := 0
	for _, selected := range s.Accounts {
		if selected {
			total++
		}
	}
	return total
}

// MergeFreshAccounts insere como não selecionada toda conta nova. Contas que não
// vieram na busca são mantidas, para que uma falha transitória não descarte a
// escolha do usuário.
func MergeFreshAccounts(existing State, fresh []domain.AdAccount) State {
	merged := existing.clone()
	for _, acc := range fresh {
		if _, ok := merged.Accounts[acc.ID]; !ok {
			merged.Accounts[acc.ID] = false
		}
	}
	return merged
}

// ToggleBusiness seleciona ou desmarca todas as contas do business. Se o business
// estiver totalmente selecionado, todas as contas são desmarcadas; caso contrário
// todas são selecionadas, sobrescrevendo escolhas individuais.
func ToggleBusiness(s State, accounts []domain.AdAccount, businessID string) State {
	siblings := accountsOf(accounts, businessID)
	if len(siblings) == 0 {
		return s
	}

	value := !allSelected(s, siblings)

	next := s.clone()
	for _, acc := range siblings {
		next.Accounts[acc.ID] = value
	}
	return next
}

// ToggleAccount inverte a seleção de uma conta conhecida do business informado.
// Referências desconhecidas não alteram o estado.
func ToggleAccount(s State, accounts []domain.AdAccount, accountID, businessID string) State {
	found := false
	for _, acc := range accounts {
		if acc.ID == accountID && acc.BusinessID == businessID {
			found = true
			break
		}
	}
	if !found {
		return s
	}

	next := s.clone()
	next.Accounts[accountID] = !s.Accounts[accountID]
	return next
}

// BusinessSelected é verdadeiro quando o business tem ao menos uma conta conhecida
// e todas estão selecionadas
func BusinessSelected(s State, accounts []domain.AdAccount, businessID string) bool {
	siblings := accountsOf(accounts, businessID)
	return len(siblings) > 0 && allSelected(s, siblings)
}

// BusinessPartiallySelected é verdadeiro quando algumas, mas não todas, as contas
// do business estão selecionadas
func BusinessPartiallySelected(s State, accounts []domain.AdAccount, businessID string) bool {
	siblings := accountsOf(accounts, businessID)
	selected := countSelected(s, siblings)
	return selected > 0 && selected < len(siblings)
}

// BusinessSelectionMap calcula o mapa business -> totalmente selecionado
func BusinessSelectionMap(s State, businesses []domain.Business, accounts []domain.AdAccount) map[string]bool {
	result := make(map[string]bool, len(businesses))
	for _, b := range businesses {
		result[b.ID] = BusinessSelected(s, accounts, b.ID)
	}
	return result
}

func accountsOf(accounts []domain.AdAccount, businessID string) []domain.AdAccount {
	siblings := make([]domain.AdAccount, 0)
	for _, acc := range accounts {
		if acc.BusinessID == businessID {
			siblings = append(siblings, acc)
		}
	}
	return siblings
}

func allSelected(s State, accounts []domain.AdAccount) bool {
	return countSelected(s, accounts) == len(accounts)
}

func countSelected(s State, accounts []domain.AdAccount) int {
	total := 0
	for _, acc := range accounts {
		if s.Accounts[acc.ID] {
			total++
		}
	}
	return total
}
