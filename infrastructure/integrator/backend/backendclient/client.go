package backendclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks

// Client fala com o backend que guarda usuários, empresas, contas vinculadas e
// lançamentos de investimento. Nenhuma chamada é repetida automaticamente.
type Client interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.Session, error)
	GetProfile(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, token string, req *domain.UpdateProfileRequest) (*domain.User, error)

	CreateBusinessInfo(ctx context.Context, token string, info *domain.BusinessInfo) (*domain.BusinessInfo, error)
	GetBusinessInfo(ctx context.Context, token string) (*domain.BusinessInfo, error)
	GetAdSpend(ctx context.Context, token, businessInfoID string) ([]domain.AdSpendEntry, error)

	ListLinkedAccounts(ctx context.Context, token string) ([]domain.LinkedAccountRecord, error)
	CreateLinkedAccount(ctx context.Context, token string, record *domain.LinkedAccountRecord) (*domain.LinkedAccountRecord, error)
	DeleteLinkedAccount(ctx context.Context, token, id string) error
	GetLinkedAccount(ctx context.Context, token, id string) (*domain.LinkedAccountRecord, error)
}

type BackendClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	timeout := cfg.Backend.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &BackendClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}
