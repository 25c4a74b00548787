package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredential = errors.New("credencial ausente")
	ErrExpiredCredential = errors.New("credencial inválida ou expirada")
)

// AuthError indica credencial ausente ou inválida. Recuperável com um novo login.
type AuthError struct {
	Err     error
	Details string
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuthError(err error, details string) *AuthError {
	return &AuthError{Err: err, Details: details}
}

// TransportError indica falha de rede. Recuperável com nova tentativa.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("falha de comunicação em %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError é uma resposta não-2xx de um serviço remoto
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("serviço remoto respondeu %d: %s", e.Status, e.Message)
}

// ValidationError bloqueia a ação localmente, sem chamada de rede
type ValidationError struct {
	Err   error
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// AsRemoteError extrai o RemoteError da cadeia, se houver
func AsRemoteError(err error) (*RemoteError, bool) {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr, true
	}
	return nil, false
}
