package backendclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/internal/domain"
)

const maxResponseBytes = 4 << 20

var ErrEmptyToken = errors.New("token do backend ausente")

// pathSegment valida um identificador vindo do usuário e o escapa como um único
// segmento de caminho
func pathSegment(field, id string) (string, error) {
	if id == "" || id == "." || id == ".." {
		return "", &domain.ValidationError{Err: fmt.Errorf("identificador inválido: %q", id), Field: field}
	}
	return url.PathEscape(id), nil
}

type request struct {
	op       string
	method   string
	resource string
	token    string
	public   bool
	payload  interface{}
}

// do executa a requisição e devolve o corpo de respostas 2xx. Rotas autenticadas
// sem token falham antes de qualquer chamada de rede.
func (c *BackendClient) do(ctx context.Context, r request) ([]byte, error) {
	if !r.public && r.token == "" {
		return nil, domain.NewAuthError(domain.ErrMissingCredential, ErrEmptyToken.Error())
	}

	endpoint, err := url.Parse(c.config.Backend.URL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint = endpoint.JoinPath(r.resource)

	var body io.Reader
	if r.payload != nil {
		raw, err := json.Marshal(r.payload)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar a requisição: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if r.payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"op":    r.op,
			"error": err.Error(),
		}).Warn("backend: erro ao executar a requisição")
		return nil, &domain.TransportError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.TransportError{Op: r.op, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		remoteErr := &domain.RemoteError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, respBody),
		}
		logrus.WithFields(logrus.Fields{
			"op":     r.op,
			"status": resp.StatusCode,
		}).Warn("backend: requisição rejeitada")
		return nil, remoteErr
	}

	return respBody, nil
}

// errorMessage extrai a mensagem do corpo de erro ({message} ou {error})
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" || strings.HasPrefix(text, "{") {
		return http.StatusText(status)
	}
	return text
}

// unwrapData aceita o envelope {data: ...} ou o objeto puro
func unwrapData(body []byte) []byte {
	var envelope map[string]jsoniter.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if data, ok := envelope["data"]; ok && !isNull(data) {
			return data
		}
	}
	return body
}

func isNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

func isArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func decode(op string, body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("erro ao decodificar a resposta de %s: %w", op, err)
	}
	return nil
}
