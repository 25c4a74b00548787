package metadomain

// AdAccount é a conta de anúncio retornada por /{business}/owned_ad_accounts
type AdAccount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountStatus int    `json:"account_status,omitempty"`
}

// Business é o Business Manager retornado por /me/businesses
type Business struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Me é o usuário dono do token
type Me struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Paging struct {
	Cursors struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next,omitempty"`
}

// ListResponse é o envelope de listas da Graph API
type ListResponse[T any] struct {
	Data   []T     `json:"data"`
	Paging *Paging `json:"paging,omitempty"`
}

// HasNextPage indica se a Graph API tem mais páginas além desta
func (r *ListResponse[T]) HasNextPage() bool {
	return r.Paging != nil && r.Paging.Next != ""
}
