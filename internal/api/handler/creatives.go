package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/usecases/creative"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
)

func ListCreatives(service creative.CreativeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		creatives, err := service.List(r.Context(), userClaims, parseStatuses(r.URL.Query()["status"]))
		if err != nil {
			handleServiceError(w, r, err, "Erro ao listar criativos")
			return
		}

		if creatives == nil {
			creatives = []*domain.Creative{}
		}

		writeJSON(w, http.StatusOK, creatives)
	}
}

// parseStatuses aceita ?status=a&status=b e ?status=a,b
func parseStatuses(values []string) []domain.CreativeStatus {
	var statuses []domain.CreativeStatus
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				statuses = append(statuses, domain.CreativeStatus(part))
			}
		}
	}
	return statuses
}

func UploadCreative(service creative.CreativeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UploadCreative")

		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req domain.UploadCreativeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := service.Upload(r.Context(), userClaims, &req)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao enviar criativo")
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func GetCreative(service creative.CreativeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		found, err := service.Get(r.Context(), userClaims, id)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao obter criativo")
			return
		}

		writeJSON(w, http.StatusOK, found)
	}
}

func ReviewCreative(service creative.CreativeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req domain.ReviewCreativeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		reviewed, err := service.Review(r.Context(), userClaims, id, &req)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao revisar criativo")
			return
		}

		writeJSON(w, http.StatusOK, reviewed)
	}
}

func UpdateCreativePerformance(service creative.CreativeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req domain.CreativePerformance
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		updated, err := service.UpdatePerformance(r.Context(), userClaims, id, &req)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao atualizar desempenho do criativo")
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}
