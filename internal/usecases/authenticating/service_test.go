package authenticating

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	backendmocks "github.com/vfg2006/adlink-api/infrastructure/integrator/backend/mocks"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/domain"
	linkingmocks "github.com/vfg2006/adlink-api/internal/usecases/linking/mocks"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *backendmocks.MockClient, *linkingmocks.MockLinkingService) {
	ctrl := gomock.NewController(t)
	backend := backendmocks.NewMockClient(ctrl)
	linkingService := linkingmocks.NewMockLinkingService(ctrl)

	cfg := &config.Config{}
	cfg.Auth.Secret = "segredo"
	cfg.Auth.Expiration = time.Hour

	s := NewService(backend, linkingService, cfg).(*Service)
	s.now = func() time.Time { return fixedNow }
	return s, backend, linkingService
}

func requireAuthCode(t *testing.T, err error, code string) *AuthError {
	t.Helper()
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr), "esperava AuthError, veio %v", err)
	assert.Equal(t, code, authErr.Code)
	return authErr
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(backend *backendmocks.MockClient, linking *linkingmocks.MockLinkingService)
		validate func(t *testing.T, s *Service, result *AuthResult, err error)
	}{
		{
			name:     "login com sucesso emite token próprio",
			email:    " Maria@Loja.com ",
			password: "123456",
			setup: func(backend *backendmocks.MockClient, linking *linkingmocks.MockLinkingService) {
				user := &domain.User{ID: "u1", Name: "Maria", Role: domain.UserRoleBrand}
				backend.EXPECT().Login(gomock.Any(), "maria@loja.com", "123456").
					Return(&domain.Session{Token: "jwt-backend", User: user}, nil)
				linking.EXPECT().AttachBackendSession(gomock.Any(), "u1", "jwt-backend", user).Return(nil)
			},
			validate: func(t *testing.T, s *Service, result *AuthResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, "maria@loja.com", result.User.Email)
				assert.NotEqual(t, "jwt-backend", result.Token)

				claims, err := s.ValidateToken(result.Token)
				require.NoError(t, err)
				assert.Equal(t, "u1", claims.UserID)
				assert.Equal(t, domain.UserRoleBrand, claims.UserRole)
				assert.Equal(t, fixedNow.Add(time.Hour), claims.ExpiresAt.Time.UTC())
			},
		},
		{
			name:     "sem id usa o email como chave do estado",
			email:    "ana@loja.com",
			password: "123456",
			setup: func(backend *backendmocks.MockClient, linking *linkingmocks.MockLinkingService) {
				backend.EXPECT().Login(gomock.Any(), "ana@loja.com", "123456").
					Return(&domain.Session{Token: "jwt", User: &domain.User{}}, nil)
				linking.EXPECT().AttachBackendSession(gomock.Any(), "ana@loja.com", "jwt", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, s *Service, result *AuthResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, "ana@loja.com", result.User.ID)
			},
		},
		{
			name:  "campos obrigatórios",
			email: "maria@loja.com",
			setup: func(backend *backendmocks.MockClient, linking *linkingmocks.MockLinkingService) {},
			validate: func(t *testing.T, s *Service, result *AuthResult, err error) {
				requireAuthCode(t, err, apiErrors.ErrMissingRequiredData)
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
		{
			name:     "senha incorreta",
			email:    "maria@loja.com",
			password: "errada",
			setup: func(backend *backendmocks.MockClient, linking *linkingmocks.MockLinkingService) {
				backend.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, &domain.RemoteError{Status: http.StatusUnauthorized, Message: "Invalid credentials"})
			},
			validate: func(t *testing.T, s *Service, result *AuthResult, err error) {
				requireAuthCode(t, err, apiErrors.ErrInvalidCredentials)
				assert.True(t, IsCredentialsError(err))
			},
		},
		{
			name:     "backend fora do ar",
			email:    "maria@loja.com",
			password: "123456",
			setup: func(backend *backendmocks.MockClient, linking *linkingmocks.MockLinkingService) {
				backend.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, &domain.TransportError{Op: "login", Err: errors.New("connection refused")})
			},
			validate: func(t *testing.T, s *Service, result *AuthResult, err error) {
				requireAuthCode(t, err, apiErrors.ErrCommunication)
				assert.ErrorIs(t, err, ErrBackendUnavailable)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, backend, linking := newTestService(t)
			tt.setup(backend, linking)

			result, err := s.Login(ctx, tt.email, tt.password)
			tt.validate(t, s, result, err)
		})
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		req      *domain.RegisterRequest
		setup    func(backend *backendmocks.MockClient, linking *linkingmocks.MockLinkingService)
		validate func(t *testing.T, result *AuthResult, err error)
	}{
		{
			name: "cadastra usuário e empresa",
			req: &domain.RegisterRequest{
				Email: "maria@loja.com", Password: "123456", Name: "Maria",
				Role: domain.UserRoleBrand, CompanyName: "Loja", Industry: "Varejo", Website: "https://loja.com",
			},
			setup: func(backend *backendmocks.MockClient, linking *linkingmocks.MockLinkingService) {
				backend.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(&domain.Session{Token: "jwt", User: &domain.User{ID: "u1", Email: "maria@loja.com", Role: domain.UserRoleBrand}}, nil)
				linking.EXPECT().AttachBackendSession(gomock.Any(), "u1", "jwt", gomock.Any()).Return(nil)
				backend.EXPECT().CreateBusinessInfo(gomock.Any(), "jwt", &domain.BusinessInfo{
					CompanyName:    "Loja",
					IndustryName:   "Varejo",
					CompanyWebsite: "https://loja.com",
					CompanyType:    "Brand",
				}).Return(&domain.BusinessInfo{ID: "info-1"}, nil)
			},
			validate: func(t *testing.T, result *AuthResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, "u1", result.User.ID)
				assert.NotEmpty(t, result.Token)
			},
		},
		{
			name:  "senha curta",
			req:   &domain.RegisterRequest{Email: "a@b.com", Password: "123", Name: "A"},
			setup: func(backend *backendmocks.MockClient, linking *linkingmocks.MockLinkingService) {},
			validate: func(t *testing.T, result *AuthResult, err error) {
				requireAuthCode(t, err, apiErrors.ErrInvalidFormat)
			},
		},
		{
			name:  "papel inválido",
			req:   &domain.RegisterRequest{Email: "a@b.com", Password: "123456", Name: "A", Role: "admin"},
			setup: func(backend *backendmocks.MockClient, linking *linkingmocks.MockLinkingService) {},
			validate: func(t *testing.T, result *AuthResult, err error) {
				requireAuthCode(t, err, apiErrors.ErrInvalidFormat)
			},
		},
		{
			name: "email já cadastrado",
			req:  &domain.RegisterRequest{Email: "a@b.com", Password: "123456", Name: "A"},
			setup: func(backend *backendmocks.MockClient, linking *linkingmocks.MockLinkingService) {
				backend.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(nil, &domain.RemoteError{Status: http.StatusConflict, Message: "User already exists"})
			},
			validate: func(t *testing.T, result *AuthResult, err error) {
				requireAuthCode(t, err, apiErrors.ErrUserAlreadyExists)
			},
		},
		{
			name: "falha ao cadastrar a empresa",
			req:  &domain.RegisterRequest{Email: "a@b.com", Password: "123456", Name: "A", Role: domain.UserRoleCreator},
			setup: func(backend *backendmocks.MockClient, linking *linkingmocks.MockLinkingService) {
				backend.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(&domain.Session{Token: "jwt", User: &domain.User{ID: "u2"}}, nil)
				linking.EXPECT().AttachBackendSession(gomock.Any(), "u2", "jwt", gomock.Any()).Return(nil)
				backend.EXPECT().CreateBusinessInfo(gomock.Any(), "jwt", gomock.Any()).
					Return(nil, &domain.RemoteError{Status: http.StatusInternalServerError, Message: "boom"})
			},
			validate: func(t *testing.T, result *AuthResult, err error) {
				authErr := requireAuthCode(t, err, apiErrors.ErrRemoteRejected)
				assert.Equal(t, "u2", authErr.UserID)
				assert.Equal(t, "status 500", authErr.Details)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, backend, linking := newTestService(t)
			tt.setup(backend, linking)

			result, err := s.Register(ctx, tt.req)
			tt.validate(t, result, err)
		})
	}
}

func TestProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("perfil atualizado volta para o cache", func(t *testing.T) {
		s, backend, linking := newTestService(t)
		name := "Maria Souza"
		req := &domain.UpdateProfileRequest{Name: &name}

		linking.EXPECT().BackendToken(gomock.Any(), "u1").Return("jwt", nil)
		backend.EXPECT().UpdateProfile(gomock.Any(), "jwt", req).Return(&domain.User{ID: "outro", Name: name}, nil)
		linking.EXPECT().AttachBackendSession(gomock.Any(), "u1", "jwt", &domain.User{ID: "u1", Name: name}).Return(nil)

		user, err := s.UpdateProfile(ctx, "u1", req)
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("token do backend expirado", func(t *testing.T) {
		s, backend, linking := newTestService(t)
		linking.EXPECT().BackendToken(gomock.Any(), "u1").Return("jwt", nil)
		backend.EXPECT().GetProfile(gomock.Any(), "jwt").
			Return(nil, &domain.RemoteError{Status: http.StatusUnauthorized, Message: "jwt expired"})

		_, err := s.GetProfile(ctx, "u1")
		requireAuthCode(t, err, apiErrors.ErrExpiredToken)
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("logout encerra a sessão de vinculação", func(t *testing.T) {
		s, _, linking := newTestService(t)
		linking.EXPECT().Teardown(gomock.Any(), "u1").Return(nil)

		require.NoError(t, s.Logout(ctx, "u1"))
	})
}

func TestValidateToken(t *testing.T) {
	s, _, _ := newTestService(t)

	valid, err := s.generateJWT(&domain.User{ID: "u1", Role: domain.UserRoleCreator})
	require.NoError(t, err)

	t.Run("token válido", func(t *testing.T) {
		claims, err := s.ValidateToken(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.UserRoleCreator, claims.UserRole)
	})

	t.Run("token expirado", func(t *testing.T) {
		later := *s
		later.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }

		_, err := later.ValidateToken(valid)
		requireAuthCode(t, err, apiErrors.ErrExpiredToken)
	})

	t.Run("assinatura de outro segredo", func(t *testing.T) {
		other := *s
		otherCfg := *s.cfg
		otherCfg.Auth.Secret = "outro"
		other.cfg = &otherCfg

		_, err := other.ValidateToken(valid)
		requireAuthCode(t, err, apiErrors.ErrInvalidToken)
	})

	t.Run("algoritmo diferente de HMAC", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, domain.Claims{UserID: "u1"})
		unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = s.ValidateToken(unsigned)
		requireAuthCode(t, err, apiErrors.ErrInvalidToken)
	})
}
