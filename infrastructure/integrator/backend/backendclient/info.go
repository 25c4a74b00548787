package backendclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/vfg2006/adlink-api/internal/domain"
)

var ErrBusinessInfoNotFound = errors.New("identificador da empresa não encontrado na resposta")

type businessInfoPayload struct {
	CompanyName    string `json:"companyName"`
	IndustryName   string `json:"industryName"`
	CompanyWebsite string `json:"companyWebsite"`
	CompanyType    string `json:"companyType"`
}

func (c *BackendClient) CreateBusinessInfo(ctx context.Context, token string, info *domain.BusinessInfo) (*domain.BusinessInfo, error) {
	body, err := c.do(ctx, request{
		op:       "create-info",
		method:   http.MethodPost,
		resource: "/api/info",
		token:    token,
		payload: businessInfoPayload{
			CompanyName:    info.CompanyName,
			IndustryName:   info.IndustryName,
			CompanyWebsite: info.CompanyWebsite,
			CompanyType:    info.CompanyType,
		},
	})
	if err != nil {
		return nil, err
	}

	created, err := decodeBusinessInfo("create-info", body)
	if err != nil {
		// A empresa foi criada, mas a resposta não trouxe o _id
		if errors.Is(err, ErrBusinessInfoNotFound) {
			copied := *info
			return &copied, nil
		}
		return nil, err
	}

	return created, nil
}

// GetBusinessInfo retorna a empresa do usuário. O _id pode vir em data._id ou no topo.
func (c *BackendClient) GetBusinessInfo(ctx context.Context, token string) (*domain.BusinessInfo, error) {
	body, err := c.do(ctx, request{
		op:       "info",
		method:   http.MethodGet,
		resource: "/api/info",
		token:    token,
	})
	if err != nil {
		return nil, err
	}

	return decodeBusinessInfo("info", body)
}

func decodeBusinessInfo(op string, body []byte) (*domain.BusinessInfo, error) {
	raw := unwrapData(body)

	if isArray(raw) {
		var infos []domain.BusinessInfo
		if err := decode(op, raw, &infos); err != nil {
			return nil, err
		}
		if len(infos) == 0 || infos[0].ID == "" {
			return nil, ErrBusinessInfoNotFound
		}
		return &infos[0], nil
	}

	var info domain.BusinessInfo
	if err := decode(op, raw, &info); err != nil {
		return nil, err
	}

	if info.ID == "" {
		return nil, ErrBusinessInfoNotFound
	}

	return &info, nil
}

// GetAdSpend lista os lançamentos de investimento da empresa ({success, count, data[]})
func (c *BackendClient) GetAdSpend(ctx context.Context, token, businessInfoID string) ([]domain.AdSpendEntry, error) {
	if businessInfoID == "" {
		return nil, &domain.ValidationError{Err: ErrBusinessInfoNotFound, Field: "businessInfoId"}
	}

	segment, err := pathSegment("businessInfoId", businessInfoID)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, request{
		op:       "ad-spend",
		method:   http.MethodGet,
		resource: "/api/info/business/" + segment,
		token:    token,
	})
	if err != nil {
		return nil, err
	}

	raw := unwrapData(body)
	if !isArray(raw) {
		return []domain.AdSpendEntry{}, nil
	}

	entries := make([]domain.AdSpendEntry, 0)
	if err := decode("ad-spend", raw, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
