package reporting

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange = errors.New("período inválido: a data inicial é posterior à final")
	ErrFetchAdSpend = errors.New("erro ao buscar lançamentos de investimento")
)

// ReportError é um erro com contexto adicional para relatórios
type ReportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}
