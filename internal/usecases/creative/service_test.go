package creative

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adlink-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var (
	fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	brand    = &domain.Claims{UserID: "brand-1", UserRole: domain.UserRoleBrand}
	creator  = &domain.Claims{UserID: "creator-1", UserRole: domain.UserRoleCreator}
)

func newTestService(t *testing.T) (*Service, *mocks.MockCreativeRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCreativeRepository(ctrl)

	cfg := &config.Config{}
	cfg.Creative.MaxTitleLength = 20

	s := NewService(repo, cfg).(*Service)
	s.now = func() time.Time { return fixedNow }
	return s, repo
}

func requireCreativeCode(t *testing.T, err error, code string) {
	t.Helper()
	var creativeErr *CreativeError
	require.True(t, errors.As(err, &creativeErr), "esperava CreativeError, veio %v", err)
	assert.Equal(t, code, creativeErr.Code)
}

func pendingCreative() *domain.Creative {
	return &domain.Creative{
		ID:        "c1",
		CreatorID: "creator-1",
		Title:     "Verão",
		Status:    domain.CreativeStatusPending,
	}
}

func TestUpload(t *testing.T) {
	valid := domain.UploadCreativeRequest{
		Title:       "  Campanha de verão ",
		Description: "Vídeo curto para stories",
		FileURL:     "https://cdn.exemplo.com/v.mp4",
		FileType:    domain.CreativeFileTypeVideo,
	}

	tests := []struct {
		name     string
		actor    *domain.Claims
		mutate   func(req *domain.UploadCreativeRequest)
		setup    func(repo *mocks.MockCreativeRepository)
		validate func(t *testing.T, creative *domain.Creative, err error)
	}{
		{
			name:  "criador envia criativo pendente",
			actor: creator,
			setup: func(repo *mocks.MockCreativeRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, creative *domain.Creative, err error) {
				require.NoError(t, err)
				assert.Len(t, creative.ID, 12)
				assert.Equal(t, "creator-1", creative.CreatorID)
				assert.Equal(t, "Campanha de verão", creative.Title)
				assert.Equal(t, domain.CreativeStatusPending, creative.Status)
				assert.Equal(t, fixedNow, creative.CreatedAt)
			},
		},
		{
			name:  "marca não envia criativo",
			actor: brand,
			validate: func(t *testing.T, creative *domain.Creative, err error) {
				requireCreativeCode(t, err, apiErrors.ErrInsufficientPrivilege)
			},
		},
		{
			name:   "título acima do limite configurado",
			actor:  creator,
			mutate: func(req *domain.UploadCreativeRequest) { req.Title = "Um título comprido demais para o limite" },
			validate: func(t *testing.T, creative *domain.Creative, err error) {
				requireCreativeCode(t, err, apiErrors.ErrInvalidFormat)
				assert.ErrorIs(t, err, ErrInvalidTitle)
			},
		},
		{
			name:   "descrição curta",
			actor:  creator,
			mutate: func(req *domain.UploadCreativeRequest) { req.Description = "curta" },
			validate: func(t *testing.T, creative *domain.Creative, err error) {
				assert.ErrorIs(t, err, ErrInvalidDescription)
			},
		},
		{
			name:   "tipo de arquivo desconhecido",
			actor:  creator,
			mutate: func(req *domain.UploadCreativeRequest) { req.FileType = "pdf" },
			validate: func(t *testing.T, creative *domain.Creative, err error) {
				assert.ErrorIs(t, err, ErrInvalidFile)
			},
		},
		{
			name:  "falha no banco",
			actor: creator,
			setup: func(repo *mocks.MockCreativeRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, creative *domain.Creative, err error) {
				requireCreativeCode(t, err, apiErrors.ErrDatabaseOperation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newTestService(t)
			if tt.setup != nil {
				tt.setup(repo)
			}

			req := valid
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			creative, err := s.Upload(context.Background(), tt.actor, &req)
			tt.validate(t, creative, err)
		})
	}
}

func TestListAndGet(t *testing.T) {
	ctx := context.Background()

	t.Run("criador lista apenas os próprios", func(t *testing.T) {
		s, repo := newTestService(t)
		repo.EXPECT().List(gomock.Any(), domain.CreativeFilters{CreatorID: "creator-1"}).
			Return([]*domain.Creative{{ID: "c1", Performance: &domain.CreativePerformance{Spend: 123.4}}}, nil)

		creatives, err := s.List(ctx, creator, nil)
		require.NoError(t, err)
		require.Len(t, creatives, 1)
		assert.Equal(t, 12.34, creatives[0].Commission)
	})

	t.Run("marca lista todos com filtro de status", func(t *testing.T) {
		s, repo := newTestService(t)
		status := []domain.CreativeStatus{domain.CreativeStatusPending}
		repo.EXPECT().List(gomock.Any(), domain.CreativeFilters{Status: status}).Return([]*domain.Creative{}, nil)

		creatives, err := s.List(ctx, brand, status)
		require.NoError(t, err)
		assert.Empty(t, creatives)
	})

	t.Run("criador não enxerga criativo de outro", func(t *testing.T) {
		s, repo := newTestService(t)
		other := pendingCreative()
		other.CreatorID = "creator-2"
		repo.EXPECT().GetByID(gomock.Any(), "c1").Return(other, nil)

		_, err := s.Get(ctx, creator, "c1")
		requireCreativeCode(t, err, apiErrors.ErrNotFound)
	})

	t.Run("criativo inexistente", func(t *testing.T) {
		s, repo := newTestService(t)
		repo.EXPECT().GetByID(gomock.Any(), "c9").Return(nil, nil)

		_, err := s.Get(ctx, brand, "c9")
		requireCreativeCode(t, err, apiErrors.ErrNotFound)
	})
}

func TestReview(t *testing.T) {
	feedback := "Trocar a trilha"
	empty := " "

	tests := []struct {
		name     string
		actor    *domain.Claims
		req      *domain.ReviewCreativeRequest
		current  *domain.Creative
		validate func(t *testing.T, creative *domain.Creative, err error)
	}{
		{
			name:    "aprova pendente",
			actor:   brand,
			req:     &domain.ReviewCreativeRequest{Status: domain.CreativeStatusApproved},
			current: pendingCreative(),
			validate: func(t *testing.T, creative *domain.Creative, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.CreativeStatusApproved, creative.Status)
				assert.Equal(t, fixedNow, creative.UpdatedAt)
			},
		},
		{
			name:    "rejeita com feedback",
			actor:   brand,
			req:     &domain.ReviewCreativeRequest{Status: domain.CreativeStatusRejected, Feedback: &feedback},
			current: pendingCreative(),
			validate: func(t *testing.T, creative *domain.Creative, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.CreativeStatusRejected, creative.Status)
				assert.Equal(t, feedback, *creative.Feedback)
			},
		},
		{
			name:  "rejeição sem feedback",
			actor: brand,
			req:   &domain.ReviewCreativeRequest{Status: domain.CreativeStatusRejected, Feedback: &empty},
			validate: func(t *testing.T, creative *domain.Creative, err error) {
				assert.ErrorIs(t, err, ErrFeedbackRequired)
			},
		},
		{
			name:  "status ativo não é revisão",
			actor: brand,
			req:   &domain.ReviewCreativeRequest{Status: domain.CreativeStatusActive},
			validate: func(t *testing.T, creative *domain.Creative, err error) {
				assert.ErrorIs(t, err, ErrInvalidStatus)
			},
		},
		{
			name:  "já revisado",
			actor: brand,
			req:   &domain.ReviewCreativeRequest{Status: domain.CreativeStatusApproved},
			current: func() *domain.Creative {
				c := pendingCreative()
				c.Status = domain.CreativeStatusRejected
				return c
			}(),
			validate: func(t *testing.T, creative *domain.Creative, err error) {
				requireCreativeCode(t, err, apiErrors.ErrInvalidRequest)
				assert.ErrorIs(t, err, ErrNotReviewable)
			},
		},
		{
			name:  "criador não revisa",
			actor: creator,
			req:   &domain.ReviewCreativeRequest{Status: domain.CreativeStatusApproved},
			validate: func(t *testing.T, creative *domain.Creative, err error) {
				requireCreativeCode(t, err, apiErrors.ErrInsufficientPrivilege)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newTestService(t)
			if tt.current != nil {
				repo.EXPECT().GetByID(gomock.Any(), "c1").Return(tt.current, nil)
				if tt.current.Status == domain.CreativeStatusPending {
					repo.EXPECT().Update(gomock.Any(), tt.current).Return(nil)
				}
			}

			creative, err := s.Review(context.Background(), tt.actor, "c1", tt.req)
			tt.validate(t, creative, err)
		})
	}
}

func TestUpdatePerformance(t *testing.T) {
	ctx := context.Background()

	t.Run("aprovado vira ativo e calcula comissão", func(t *testing.T) {
		s, repo := newTestService(t)
		current := pendingCreative()
		current.Status = domain.CreativeStatusApproved
		repo.EXPECT().GetByID(gomock.Any(), "c1").Return(current, nil)
		repo.EXPECT().Update(gomock.Any(), current).Return(nil)

		creative, err := s.UpdatePerformance(ctx, brand, "c1", &domain.CreativePerformance{Spend: 250, Clicks: 40})
		require.NoError(t, err)
		assert.Equal(t, domain.CreativeStatusActive, creative.Status)
		assert.Equal(t, 25.0, creative.Commission)
	})

	t.Run("pendente não recebe desempenho", func(t *testing.T) {
		s, repo := newTestService(t)
		repo.EXPECT().GetByID(gomock.Any(), "c1").Return(pendingCreative(), nil)

		_, err := s.UpdatePerformance(ctx, brand, "c1", &domain.CreativePerformance{Spend: 10})
		assert.ErrorIs(t, err, ErrNotRunnable)
	})

	t.Run("valores negativos", func(t *testing.T) {
		s, _ := newTestService(t)
		_, err := s.UpdatePerformance(ctx, brand, "c1", &domain.CreativePerformance{Spend: -1})
		requireCreativeCode(t, err, apiErrors.ErrInvalidFormat)
	})

	t.Run("falha ao gravar", func(t *testing.T) {
		s, repo := newTestService(t)
		current := pendingCreative()
		current.Status = domain.CreativeStatusActive
		repo.EXPECT().GetByID(gomock.Any(), "c1").Return(current, nil)
		repo.EXPECT().Update(gomock.Any(), current).Return(errors.New("timeout"))

		_, err := s.UpdatePerformance(ctx, brand, "c1", &domain.CreativePerformance{Spend: 10})
		requireCreativeCode(t, err, apiErrors.ErrDatabaseOperation)
	})
}
