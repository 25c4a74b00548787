package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
)

// SaveLinkedAccounts grava no backend as contas selecionadas
func SaveLinkedAccounts(service linking.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SaveLinkedAccounts")

		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		record, err := service.Save(r.Context(), userClaims.UserID)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao salvar contas vinculadas")
			return
		}

		writeJSON(w, http.StatusCreated, record)
	}
}

func ListLinkedAccounts(service linking.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		records, err := service.ListLinked(r.Context(), userClaims.UserID)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao listar contas vinculadas")
			return
		}

		writeJSON(w, http.StatusOK, records)
	}
}

func GetLinkedAccount(service linking.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do vínculo não fornecido", nil)
			return
		}

		record, err := service.GetLinked(r.Context(), userClaims.UserID, id)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao obter conta vinculada")
			return
		}

		writeJSON(w, http.StatusOK, record)
	}
}

func DeleteLinkedAccount(service linking.LinkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do vínculo não fornecido", nil)
			return
		}

		if err := service.DeleteLinked(r.Context(), userClaims.UserID, id); err != nil {
			handleServiceError(w, r, err, "Erro ao remover conta vinculada")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
