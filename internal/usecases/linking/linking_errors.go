package linking

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/vfg2006/adlink-api/infrastructure/integrator/backend/backendclient"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/selection"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
)

var (
	// Erros de fluxo
	ErrSaveInProgress    = errors.New("já existe um salvamento em andamento")
	ErrRefreshInProgress = errors.New("já existe uma atualização da hierarquia em andamento")
	ErrInvalidTransition = errors.New("transição de estado inválida")
	ErrInvalidConsent    = errors.New("estado de consentimento inválido ou expirado")
	ErrSessionClosed     = errors.New("sessão encerrada durante a operação")

	// Erros de credencial
	ErrNotConnected      = errors.New("conta da plataforma de anúncios não conectada")
	ErrMissingBackendJWT = errors.New("sessão do backend ausente")
)

// LinkingError é um erro com contexto adicional para o fluxo de vinculação
type LinkingError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	UserID  string // Usuário dono da sessão
	Details string // Detalhes adicionais
}

func (e *LinkingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *LinkingError) Unwrap() error {
	return e.Err
}

func NewLinkingError(err error, code string, userID string, details string) *LinkingError {
	return &LinkingError{
		Err:     err,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}

// classify converte erros dos clientes remotos em LinkingError com o código da API.
// platform indica se o erro veio da plataforma de anúncios ou do backend.
func classify(err error, userID string, platform bool) error {
	if err == nil {
		return nil
	}

	var linkingErr *LinkingError
	if errors.As(err, &linkingErr) {
		return err
	}

	code := apiErrors.ErrInternalServer
	details := ""

	switch {
	case errors.Is(err, selection.ErrNothingSelected):
		code = apiErrors.ErrNothingSelected
	case errors.Is(err, backendclient.ErrBusinessInfoNotFound):
		code = apiErrors.ErrMissingRequiredData
		details = "cadastro da empresa não encontrado"
	case domain.IsValidationError(err):
		code = apiErrors.ErrMissingRequiredData
	case errors.Is(err, metaclient.ErrConsentCancelled):
		code = apiErrors.ErrConsentCancelled
	case errors.Is(err, metaclient.ErrStateMismatch),
		errors.Is(err, metaclient.ErrCallbackTimeout),
		errors.Is(err, metaclient.ErrMissingCode),
		errors.Is(err, metaclient.ErrMissingState):
		code = apiErrors.ErrInvalidConsent
	case domain.IsAuthError(err):
		code = apiErrors.ErrInvalidToken
		if platform {
			code = apiErrors.ErrPlatformCredential
		}
	case domain.IsTransportError(err),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		code = apiErrors.ErrCommunication
	default:
		if remoteErr, ok := domain.AsRemoteError(err); ok {
			code = apiErrors.ErrRemoteRejected
			if remoteErr.Status == http.StatusNotFound {
				code = apiErrors.ErrNotFound
			}
			details = fmt.Sprintf("status %d", remoteErr.Status)
		}
	}

	return NewLinkingError(err, code, userID, details)
}
