package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/adlink-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/adlink-api/internal/domain"
)

const maxResponseBytes = 4 << 20

// get executa um GET na Graph API e decodifica o corpo em out.
// O access_token vai na query e por isso a URL nunca é logada.
func (c *MetaClient) get(ctx context.Context, op, resource string, params url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(c.Cfg.Meta.URL, "/"), strings.TrimLeft(resource, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"op":    op,
			"error": err.Error(),
		}).Warn("meta: erro ao fazer a requisição")
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := HandleResponse(resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("erro ao decodificar resposta de %s: %w", op, err)
	}

	return nil
}

// ParseErrorResponse tenta parsear um erro da API do Meta
func ParseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	err := json.Unmarshal(body, &errorResp)
	if err != nil {
		return nil, err
	}
	return &errorResp, nil
}

// HandleResponse devolve o corpo de respostas 2xx e classifica as demais em
// AuthError (token expirado ou inválido) ou RemoteError
func HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.TransportError{Op: "leitura da resposta", Err: err}
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return body, nil
	}

	return nil, classifyError(resp.StatusCode, body)
}

func classifyError(status int, body []byte) error {
	message := strings.TrimSpace(string(body))

	errorResp, parseErr := ParseErrorResponse(body)
	if parseErr == nil && !errorResp.IsEmpty() {
		message = errorResp.Error.Message

		if errorResp.IsTokenExpired() {
			logrus.Warnf("Token expirado detectado pela API Meta. Código: %d, Subcódigo: %d",
				errorResp.Error.Code, errorResp.Error.ErrorSubcode)
			return domain.NewAuthError(domain.ErrExpiredCredential, message)
		}
	}

	if status == http.StatusUnauthorized || metadomain.ContainsTokenExpirationMessage(message) {
		return domain.NewAuthError(domain.ErrExpiredCredential, message)
	}

	if message == "" {
		message = http.StatusText(status)
	}

	return &domain.RemoteError{Status: status, Message: message}
}
