package selection

import "github.com/vfg2006/adlink-api/internal/domain"

type AccountView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

type BusinessView struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Selected bool          `json:"selected"`
	Partial  bool          `json:"partial"`
	Accounts []AccountView `json:"accounts"`
}

// View monta o modelo de renderização na ordem da busca
func View(s State, businesses []domain.Business, accounts []domain.AdAccount) []BusinessView {
	views := make([]BusinessView, 0, len(businesses))
	for _, b := range businesses {
		siblings := accountsOf(accounts, b.ID)

		accountViews := make([]AccountView, 0, len(siblings))
		for _, acc := range siblings {
			accountViews = append(accountViews, AccountView{
				ID:       acc.ID,
				Name:     acc.Name,
				Selected: s.Accounts[acc.ID],
			})
		}

		selected := countSelected(s, siblings)
		views = append(views, BusinessView{
			ID:       b.ID,
			Name:     b.Name,
			Selected: len(siblings) > 0 && selected == len(siblings),
			Partial:  selected > 0 && selected < len(siblings),
			Accounts: accountViews,
		})
	}
	return views
}
