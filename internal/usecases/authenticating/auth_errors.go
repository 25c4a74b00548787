package authenticating

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vfg2006/adlink-api/infrastructure/integrator/backend/backendclient"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
)

// Tipos de erros de autenticação personalizados
var (
	// Erros de autenticação
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrInvalidToken       = errors.New("token inválido")
	ErrExpiredToken       = errors.New("token expirado")
	ErrUserAlreadyExists  = errors.New("usuário já existe")

	// Erros de validação
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrInvalidFormat       = errors.New("formato de dados inválido")

	// Erros do backend
	ErrBackendUnavailable = errors.New("backend indisponível")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	UserID  string // ID do usuário envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsCredentialsError verifica se o erro está relacionado a credenciais inválidas
func IsCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

// IsAuthorizationError verifica se o erro está relacionado a problemas de autorização
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken)
}

// NewAuthError cria um novo erro de autenticação
func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewUserAuthError cria um novo erro de autenticação com contexto de usuário
func NewUserAuthError(baseErr error, code string, userID string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}

// fromBackend traduz a falha de uma chamada ao backend. op é "login", "signup" ou "profile".
func fromBackend(err error, op string) *AuthError {
	if remoteErr, ok := domain.AsRemoteError(err); ok {
		switch {
		case op == "login" && (remoteErr.Status == http.StatusUnauthorized || remoteErr.Status == http.StatusBadRequest || remoteErr.Status == http.StatusNotFound):
			return &AuthError{Err: ErrInvalidCredentials, Code: apiErrors.ErrInvalidCredentials, Details: remoteErr.Message}
		case op == "signup" && (remoteErr.Status == http.StatusConflict || remoteErr.Status == http.StatusBadRequest):
			return &AuthError{Err: ErrUserAlreadyExists, Code: apiErrors.ErrUserAlreadyExists, Details: remoteErr.Message}
		case remoteErr.Status == http.StatusUnauthorized:
			return &AuthError{Err: ErrExpiredToken, Code: apiErrors.ErrExpiredToken, Details: "Faça login novamente"}
		}
		return &AuthError{Err: err, Code: apiErrors.ErrRemoteRejected, Details: fmt.Sprintf("status %d", remoteErr.Status)}
	}

	if domain.IsTransportError(err) {
		return &AuthError{Err: fmt.Errorf("%w: %v", ErrBackendUnavailable, err), Code: apiErrors.ErrCommunication}
	}

	if errors.Is(err, backendclient.ErrMissingSessionToken) {
		return &AuthError{Err: err, Code: apiErrors.ErrExternalService}
	}

	return &AuthError{Err: err, Code: apiErrors.ErrInternalServer}
}
