package domain

import "time"

// LinkedAccountRecord é a representação durável, no backend, das contas vinculadas
type LinkedAccountRecord struct {
	ID             string           `json:"_id,omitempty"`
	BusinessID     string           `json:"businessId"`
	MetaBusinesses []LinkedBusiness `json:"meta_businesses"`
	CreatedAt      *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time       `json:"updatedAt,omitempty"`
}

type LinkedBusiness struct {
	MetaBusinessID   string            `json:"meta_business_id"`
	MetaBusinessName string            `json:"meta_business_name"`
	Accounts         []LinkedAdAccount `json:"accounts"`
}

type LinkedAdAccount struct {
	MetaAdAccountID   string `json:"meta_ad_account_id"`
	MetaAdAccountName string `json:"meta_ad_account_name"`
}

// AccountCount retorna o total de contas em todos os businesses do registro
func (r *LinkedAccountRecord) AccountCount() int {
	total := 0
	for _, b := range r.MetaBusinesses {
		total += len(b.Accounts)
	}
	return total
}
