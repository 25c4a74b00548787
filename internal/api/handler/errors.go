package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/usecases/authenticating"
	"github.com/vfg2006/adlink-api/internal/usecases/creative"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
	"github.com/vfg2006/adlink-api/internal/usecases/reporting"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
	"github.com/vfg2006/adlink-api/pkg/log"
	"github.com/vfg2006/adlink-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// handleServiceError converte os erros tipados dos casos de uso na resposta padronizada
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	code := apiErrors.ErrInternalServer
	message := fallback
	var details any

	var (
		linkingErr  *linking.LinkingError
		authErr     *authenticating.AuthError
		creativeErr *creative.CreativeError
		reportErr   *reporting.ReportError
	)

	switch {
	case errors.As(err, &linkingErr):
		code, message = linkingErr.Code, linkingErr.Error()
	case errors.As(err, &authErr):
		code, message = authErr.Code, authErr.Error()
		if authErr.UserID != "" {
			details = map[string]any{"user_id": authErr.UserID}
		}
	case errors.As(err, &creativeErr):
		code, message = creativeErr.Code, creativeErr.Error()
		if creativeErr.CreativeID != "" {
			details = map[string]any{"creative_id": creativeErr.CreativeID}
		}
	case errors.As(err, &reportErr):
		code, message = reportErr.Code, reportErr.Error()
	}

	if remoteErr, ok := domain.AsRemoteError(err); ok && details == nil {
		details = map[string]any{"status": remoteErr.Status}
	}

	entry := log.ForContext(r.Context()).WithError(err).WithFields(log.Fields{
		"code": code,
		"path": r.URL.Path,
	})
	if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
		entry.Error(fallback)
	} else {
		entry.Warn(fallback)
	}

	apiErrors.WriteError(w, code, message, details)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

// currentUser lê o usuário colocado no contexto pela AuthMiddleware
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}
	return claims, true
}
