package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
	"github.com/vfg2006/adlink-api/pkg/log"
)

// ConnectMeta inicia o consentimento e devolve a URL do diálogo
func ConnectMeta(service linking.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		start, err := service.BeginConnect(r.Context(), userClaims.UserID)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao iniciar conexão com a plataforma")
			return
		}

		writeJSON(w, http.StatusOK, start)
	}
}

// MetaCallback recebe o retorno do diálogo de consentimento. O usuário é
// identificado pelo state, por isso a rota é pública.
func MetaCallback(service linking.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		state := query.Get("state")
		if state == "" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidConsent, "Parâmetro state ausente", nil)
			return
		}

		if reason := query.Get("error"); reason != "" {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"reason":      reason,
				"description": query.Get("error_description"),
			}).Info("Consentimento recusado pelo usuário")

			if err := service.CancelConnect(r.Context(), state, reason); err != nil {
				handleServiceError(w, r, err, "Erro ao cancelar consentimento")
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrConsentCancelled, "Consentimento cancelado", map[string]any{"reason": reason})
			return
		}

		// sem code o serviço ainda consome o nonce e encerra o consentimento pendente
		snapshot, err := service.CompleteConnect(r.Context(), state, query.Get("code"))
		if err != nil {
			handleServiceError(w, r, err, "Erro ao concluir conexão com a plataforma")
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

func DisconnectMeta(service linking.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		snapshot, err := service.Disconnect(r.Context(), userClaims.UserID)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao desconectar a plataforma")
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

// GetHierarchy devolve o estado atual sem chamadas remotas
func GetHierarchy(service linking.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		snapshot, err := service.Snapshot(r.Context(), userClaims.UserID)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao carregar a hierarquia")
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

func RefreshHierarchy(service linking.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RefreshHierarchy")

		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		snapshot, err := service.RefreshHierarchy(r.Context(), userClaims.UserID)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao atualizar a hierarquia")
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

func ToggleBusiness(service linking.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		businessID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		snapshot, err := service.ToggleBusiness(r.Context(), userClaims.UserID, businessID)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao alterar seleção da empresa")
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

func ToggleAccount(service linking.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		params := httprouter.ParamsFromContext(r.Context())

		snapshot, err := service.ToggleAccount(r.Context(), userClaims.UserID, params.ByName("id"), params.ByName("account_id"))
		if err != nil {
			handleServiceError(w, r, err, "Erro ao alterar seleção da conta")
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}
