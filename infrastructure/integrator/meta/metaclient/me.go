package metaclient

import (
	"context"
	"net/url"

	metadomain "github.com/vfg2006/adlink-api/infrastructure/integrator/meta/domain"
)

func (c *MetaClient) GetMe(ctx context.Context, accessToken string) (*metadomain.Me, error) {
	params := url.Values{}
	params.Add("fields", "id,name,email")
	params.Add("access_token", accessToken)

	var me metadomain.Me
	if err := c.get(ctx, "me", "me", params, &me); err != nil {
		return nil, err
	}

	return &me, nil
}
