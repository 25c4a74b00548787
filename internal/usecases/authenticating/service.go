package authenticating

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/backend/backendclient"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

const (
	minPasswordLength = 6
	defaultExpiration = 24 * time.Hour
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, req *domain.RegisterRequest) (*AuthResult, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.User, error)
	Logout(ctx context.Context, userID string) error
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// AuthResult é a resposta de login e cadastro: o token deste serviço e o perfil
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type Service struct {
	backend backendclient.Client
	linking linking.LinkingService
	cfg     *config.Config
	now     func() time.Time
}

func NewService(backend backendclient.Client, linkingService linking.LinkingService, cfg *config.Config) Authenticator {
	return &Service{
		backend: backend,
		linking: linkingService,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	// Validação de entrada
	if email == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	session, err := s.backend.Login(ctx, email, password)
	if err != nil {
		logrus.WithFields(logrus.Fields{"email": email, "error": err.Error()}).Warn("Falha no login junto ao backend")
		return nil, fromBackend(err, "login")
	}

	if session.User.Email == "" {
		session.User.Email = email
	}

	return s.startSession(ctx, session)
}

// Register cadastra o usuário e, em seguida, a empresa dele no backend
func (s *Service) Register(ctx context.Context, req *domain.RegisterRequest) (*AuthResult, error) {
	if req.Email == "" || req.Name == "" || req.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email, nome e senha são obrigatórios")
	}

	if len(req.Password) < minPasswordLength {
		return nil, NewAuthError(ErrInvalidFormat, apiErrors.ErrInvalidFormat, fmt.Sprintf("A senha deve ter pelo menos %d caracteres", minPasswordLength))
	}

	if req.Role == "" {
		req.Role = domain.UserRoleBrand
	}
	if !req.Role.IsValid() {
		return nil, NewAuthError(ErrInvalidFormat, apiErrors.ErrInvalidFormat, fmt.Sprintf("Papel inválido: %s", req.Role))
	}

	req.Email = handleEmail(req.Email)

	session, err := s.backend.Register(ctx, req)
	if err != nil {
		logrus.WithFields(logrus.Fields{"email": req.Email, "error": err.Error()}).Warn("Falha no cadastro junto ao backend")
		return nil, fromBackend(err, "signup")
	}

	result, err := s.startSession(ctx, session)
	if err != nil {
		return nil, err
	}

	_, err = s.backend.CreateBusinessInfo(ctx, session.Token, &domain.BusinessInfo{
		CompanyName:    req.CompanyName,
		IndustryName:   req.Industry,
		CompanyWebsite: req.Website,
		CompanyType:    req.Role.CompanyType(),
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": result.User.ID,
			"error":   err.Error(),
		}).Error("Usuário criado, mas o cadastro da empresa falhou")
		authErr := fromBackend(err, "info")
		authErr.UserID = result.User.ID
		return nil, authErr
	}

	return result, nil
}

// startSession guarda o token do backend no estado local e emite o token deste serviço
func (s *Service) startSession(ctx context.Context, session *domain.Session) (*AuthResult, error) {
	user := session.User
	if user.ID == "" {
		// Alguns endpoints não devolvem o id; o email identifica o estado local
		user.ID = user.Email
	}

	if err := s.linking.AttachBackendSession(ctx, user.ID, session.Token, user); err != nil {
		return nil, err
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, NewUserAuthError(err, apiErrors.ErrInternalServer, user.ID, "Erro ao gerar token de autenticação")
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("Sessão iniciada")

	return &AuthResult{Token: token, User: user}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	token, err := s.linking.BackendToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.backend.GetProfile(ctx, token)
	if err != nil {
		authErr := fromBackend(err, "profile")
		authErr.UserID = userID
		return nil, authErr
	}

	return s.keepProfile(ctx, userID, token, user), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.User, error) {
	token, err := s.linking.BackendToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.backend.UpdateProfile(ctx, token, req)
	if err != nil {
		authErr := fromBackend(err, "profile")
		authErr.UserID = userID
		return nil, authErr
	}

	return s.keepProfile(ctx, userID, token, user), nil
}

// keepProfile atualiza o perfil em cache. O id local prevalece sobre o devolvido.
func (s *Service) keepProfile(ctx context.Context, userID, token string, user *domain.User) *domain.User {
	user.ID = userID
	if err := s.linking.AttachBackendSession(ctx, userID, token, user); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Falha ao atualizar perfil em cache")
	}
	return user
}

// Logout encerra a sessão de vinculação e apaga o estado local do usuário
func (s *Service) Logout(ctx context.Context, userID string) error {
	return s.linking.Teardown(ctx, userID)
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	expiration := s.cfg.Auth.Expiration
	if expiration <= 0 {
		expiration = defaultExpiration
	}

	now := s.now()
	claims := domain.Claims{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		UserRole:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}
