package selection

import (
	"errors"

	"github.com/vfg2006/adlink-api/internal/domain"
)

var (
	ErrNothingSelected = errors.New("selecione ao menos uma conta de anúncio para salvar")
	ErrMissingOwner    = errors.New("identificador do dono das contas é obrigatório")
)

// BuildSavePayload transforma a seleção no registro enviado ao backend. Apenas
// businesses com ao menos uma conta selecionada entram, e cada um lista somente as
// contas selecionadas. A seleção por conta decide a inclusão. Seleção vazia é
// verificada antes do dono.
func BuildSavePayload(
	businesses []domain.Business,
	accounts []domain.AdAccount,
	s State,
	ownerBusinessID string,
) (*domain.LinkedAccountRecord, error) {
	entries := make([]domain.LinkedBusiness, 0)
	for _, b := range businesses {
		linked := make([]domain.LinkedAdAccount, 0)
		for _, acc := range accountsOf(accounts, b.ID) {
			if !s.Accounts[acc.ID] {
				continue
			}
			linked = append(linked, domain.LinkedAdAccount{
				MetaAdAccountID:   acc.ID,
				MetaAdAccountName: acc.Name,
			})
		}

		if len(linked) == 0 {
			continue
		}

		entries = append(entries, domain.LinkedBusiness{
			MetaBusinessID:   b.ID,
			MetaBusinessName: b.Name,
			Accounts:         linked,
		})
	}

	if len(entries) == 0 {
		return nil, &domain.ValidationError{Err: ErrNothingSelected, Field: "meta_businesses"}
	}

	if ownerBusinessID == "" {
		return nil, &domain.ValidationError{Err: ErrMissingOwner, Field: "businessId"}
	}

	return &domain.LinkedAccountRecord{
		BusinessID:     ownerBusinessID,
		MetaBusinesses: entries,
	}, nil
}
