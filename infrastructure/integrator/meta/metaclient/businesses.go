package metaclient

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/adlink-api/infrastructure/integrator/meta/domain"
)

// GetBusinesses retorna os Business Managers do usuário.
// Apenas a primeira página (até 100) é lida.
func (c *MetaClient) GetBusinesses(ctx context.Context, accessToken string) ([]metadomain.Business, error) {
	params := url.Values{}
	params.Add("fields", "id,name")
	params.Add("limit", "100")
	params.Add("access_token", accessToken)

	var response metadomain.ListResponse[metadomain.Business]
	if err := c.get(ctx, "me/businesses", "me/businesses", params, &response); err != nil {
		return nil, err
	}

	if response.HasNextPage() {
		logrus.WithField("total", len(response.Data)).Warn("meta: usuário tem mais businesses do que a primeira página")
	}

	if response.Data == nil {
		return []metadomain.Business{}, nil
	}

	return response.Data, nil
}
