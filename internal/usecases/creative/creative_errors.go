package creative

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de criativos
var (
	// Erros de validação
	ErrInvalidTitle       = errors.New("título inválido")
	ErrInvalidDescription = errors.New("descrição inválida")
	ErrInvalidFile        = errors.New("arquivo do criativo inválido")
	ErrInvalidStatus      = errors.New("status de revisão inválido")
	ErrFeedbackRequired   = errors.New("feedback é obrigatório ao rejeitar")
	ErrInvalidPerformance = errors.New("métricas de desempenho inválidas")

	// Erros de fluxo
	ErrCreativeNotFound  = errors.New("criativo não encontrado")
	ErrNotReviewable     = errors.New("apenas criativos pendentes podem ser revisados")
	ErrNotRunnable       = errors.New("apenas criativos aprovados ou ativos recebem desempenho")
	ErrForbidden         = errors.New("operação não permitida para este papel")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrGenerateID        = errors.New("erro ao gerar identificador")
)

// CreativeError é um erro com contexto adicional para criativos
type CreativeError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	CreativeID string // ID do criativo envolvido (quando aplicável)
	Details    string // Detalhes adicionais
}

func (e *CreativeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CreativeError) Unwrap() error {
	return e.Err
}

func NewCreativeError(err error, code, creativeID, details string) *CreativeError {
	return &CreativeError{
		Err:        err,
		Code:       code,
		CreativeID: creativeID,
		Details:    details,
	}
}
