package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/usecases/authenticating"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		result, err := service.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao realizar login")
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{Token: result.Token, User: result.User})
	}
}

// Register cadastra o usuário no backend e já devolve a sessão
func Register(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - Register")

		var req domain.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		result, err := service.Register(r.Context(), &req)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao cadastrar usuário")
			return
		}

		writeJSON(w, http.StatusCreated, AuthResponse{Token: result.Token, User: result.User})
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		user, err := service.GetProfile(r.Context(), userClaims.UserID)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao obter dados do usuário")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func UpdateMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req domain.UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		user, err := service.UpdateProfile(r.Context(), userClaims.UserID, &req)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao atualizar perfil")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// Logout encerra a sessão de vinculação do usuário; o JWT expira sozinho
func Logout(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		if err := service.Logout(r.Context(), userClaims.UserID); err != nil {
			handleServiceError(w, r, err, "Erro ao encerrar sessão")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
