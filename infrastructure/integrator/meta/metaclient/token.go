package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/adlink-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/adlink-api/internal/domain"
)

// renewalBuffer antecipa a renovação para antes da expiração real
const renewalBuffer = 24 * time.Hour

// ExchangeCode troca o código do callback de consentimento por um token de curta duração
func (c *MetaClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*metadomain.TokenResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("código de autorização não pode ser vazio")
	}

	params := url.Values{}
	params.Add("client_id", c.Cfg.Meta.AppID)
	params.Add("client_secret", c.Cfg.Meta.AppSecret)
	params.Add("redirect_uri", redirectURI)
	params.Add("code", code)

	var tokenResp metadomain.TokenResponse
	if err := c.get(ctx, "oauth/access_token", "oauth/access_token", params, &tokenResp); err != nil {
		return nil, err
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	return &tokenResp, nil
}

// GetLongLivedToken obtém um token de longa duração do Meta
// usando um token de curta duração (ou renova um de longa duração)
func (c *MetaClient) GetLongLivedToken(ctx context.Context, accessToken string) (*metadomain.TokenResponse, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("token de acesso não pode ser vazio")
	}

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", c.Cfg.Meta.AppID)
	params.Add("client_secret", c.Cfg.Meta.AppSecret)
	params.Add("fb_exchange_token", accessToken)

	var tokenResp metadomain.TokenResponse
	if err := c.get(ctx, "fb_exchange_token", "oauth/access_token", params, &tokenResp); err != nil {
		return nil, err
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	logrus.Infof("Token de longa duração obtido com sucesso. Expira em %s.", FormatDuration(tokenResp.ExpiresIn))

	return &tokenResp, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}

// CalculateTokenExpiration calcula quando o token deve ser renovado.
// Sem expires_in o token não expira e o retorno é o tempo zero.
func CalculateTokenExpiration(now time.Time, expiresIn int64) time.Time {
	if expiresIn <= 0 {
		return time.Time{}
	}

	buffer := int64(renewalBuffer / time.Second)
	safeExpiresIn := expiresIn - buffer

	if safeExpiresIn < 0 {
		safeExpiresIn = expiresIn / 2 // Se for muito curto, usamos metade do tempo
	}

	return now.Add(time.Duration(safeExpiresIn) * time.Second)
}

// NeedsRenewal indica se a credencial já passou do ponto de renovação
func NeedsRenewal(cred *domain.Credential, now time.Time) bool {
	if cred.IsZero() || cred.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(cred.ExpiresAt)
}

// ToCredential converte a resposta de token na credencial de domínio
func ToCredential(tokenResp *metadomain.TokenResponse, now time.Time, longLived bool) *domain.Credential {
	return &domain.Credential{
		AccessToken: tokenResp.AccessToken,
		TokenType:   tokenResp.TokenType,
		ExpiresAt:   CalculateTokenExpiration(now, tokenResp.ExpiresIn),
		LongLived:   longLived,
	}
}
