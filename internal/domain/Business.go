package domain

import "time"

// Business é a entidade de agrupamento da plataforma externa (Business Manager)
type Business struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AdAccount pertence a exatamente um Business
type AdAccount struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BusinessID string `json:"business_id"`
}

// Identity é o usuário autenticado na plataforma externa
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// FetchWarning registra uma falha parcial ao buscar as contas de um business
type FetchWarning struct {
	BusinessID string `json:"business_id"`
	Message    string `json:"message"`
}

// Hierarchy é o resultado de um ciclo completo de busca (businesses -> contas)
type Hierarchy struct {
	Businesses []Business     `json:"businesses"`
	Accounts   []AdAccount    `json:"accounts"`
	Warnings   []FetchWarning `json:"warnings,omitempty"`
	FetchedAt  time.Time      `json:"fetched_at"`
}

func (h *Hierarchy) IsEmpty() bool {
	return h == nil || len(h.Businesses) == 0
}

// AccountsOf retorna as contas conhecidas de um business, na ordem da busca
func (h *Hierarchy) AccountsOf(businessID string) []AdAccount {
	if h == nil {
		return nil
	}

	accounts := make([]AdAccount, 0)
	for _, acc := range h.Accounts {
		if acc.BusinessID == businessID {
			accounts = append(accounts, acc)
		}
	}

	return accounts
}

// Credential é o token de acesso obtido pelo fluxo de consentimento
type Credential struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
	LongLived   bool      `json:"long_lived"`
}

func (c *Credential) IsZero() bool {
	return c == nil || c.AccessToken == ""
}
