package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/adlink-api/infrastructure/integrator/meta/domain"
)

// TODO fazer iteração para pegar todos os dados
func (c *MetaClient) GetAdAccountsByBusinessID(ctx context.Context, accessToken, businessID string) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Add("fields", "id,name")
	params.Add("access_token", accessToken)

	resource := fmt.Sprintf("%s/owned_ad_accounts", url.PathEscape(businessID))

	var response metadomain.ListResponse[metadomain.AdAccount]
	if err := c.get(ctx, "owned_ad_accounts", resource, params, &response); err != nil {
		return nil, err
	}

	if response.Data == nil {
		return []metadomain.AdAccount{}, nil
	}

	return response.Data, nil
}
