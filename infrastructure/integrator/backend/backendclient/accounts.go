package backendclient

import (
	"context"
	"net/http"

	"github.com/vfg2006/adlink-api/internal/domain"
)

// ListLinkedAccounts aceita data como lista de registros ou como um único
// registro com meta_businesses
func (c *BackendClient) ListLinkedAccounts(ctx context.Context, token string) ([]domain.LinkedAccountRecord, error) {
	body, err := c.do(ctx, request{
		op:       "list-accounts",
		method:   http.MethodGet,
		resource: "/accounts",
		token:    token,
	})
	if err != nil {
		return nil, err
	}

	raw := unwrapData(body)
	records := make([]domain.LinkedAccountRecord, 0)

	if isNull(raw) {
		return records, nil
	}

	if isArray(raw) {
		if err := decode("list-accounts", raw, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var record domain.LinkedAccountRecord
	if err := decode("list-accounts", raw, &record); err != nil {
		return nil, err
	}
	if record.MetaBusinesses != nil {
		records = append(records, record)
	}

	return records, nil
}

// CreateLinkedAccount não é idempotente: cada chamada cria um registro novo
func (c *BackendClient) CreateLinkedAccount(ctx context.Context, token string, record *domain.LinkedAccountRecord) (*domain.LinkedAccountRecord, error) {
	body, err := c.do(ctx, request{
		op:       "create-account",
		method:   http.MethodPost,
		resource: "/accounts",
		token:    token,
		payload:  record,
	})
	if err != nil {
		return nil, err
	}

	var created domain.LinkedAccountRecord
	if err := decode("create-account", unwrapData(body), &created); err != nil {
		return nil, err
	}

	// Alguns retornos trazem apenas {message, _id}
	if created.BusinessID == "" {
		created.BusinessID = record.BusinessID
	}
	if created.MetaBusinesses == nil {
		created.MetaBusinesses = record.MetaBusinesses
	}

	return &created, nil
}

func (c *BackendClient) DeleteLinkedAccount(ctx context.Context, token, id string) error {
	segment, err := pathSegment("id", id)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, request{
		op:       "delete-account",
		method:   http.MethodDelete,
		resource: "/accounts/" + segment,
		token:    token,
	})
	return err
}

func (c *BackendClient) GetLinkedAccount(ctx context.Context, token, id string) (*domain.LinkedAccountRecord, error) {
	segment, err := pathSegment("id", id)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, request{
		op:       "get-account",
		method:   http.MethodGet,
		resource: "/accounts/business/" + segment,
		token:    token,
	})
	if err != nil {
		return nil, err
	}

	var record domain.LinkedAccountRecord
	if err := decode("get-account", unwrapData(body), &record); err != nil {
		return nil, err
	}

	return &record, nil
}
