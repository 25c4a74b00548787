package metaclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/adlink-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/adlink-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks

type Client interface {
	AuthorizationURL(state, redirectURI string) (string, error)
	ExchangeCode(ctx context.Context, code, redirectURI string) (*metadomain.TokenResponse, error)
	GetLongLivedToken(ctx context.Context, accessToken string) (*metadomain.TokenResponse, error)
	GetMe(ctx context.Context, accessToken string) (*metadomain.Me, error)
	GetBusinesses(ctx context.Context, accessToken string) ([]metadomain.Business, error)
	GetAdAccountsByBusinessID(ctx context.Context, accessToken, businessID string) ([]metadomain.AdAccount, error)
}

type MetaClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	timeout := cfg.Meta.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &MetaClient{
		Cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}
