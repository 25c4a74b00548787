package creative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/infrastructure/repository"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
	"github.com/vfg2006/adlink-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

const (
	minTitleLength       = 3
	minDescriptionLength = 10
	defaultMaxTitle      = 120
)

type CreativeService interface {
	Upload(ctx context.Context, actor *domain.Claims, req *domain.UploadCreativeRequest) (*domain.Creative, error)
	List(ctx context.Context, actor *domain.Claims, status []domain.CreativeStatus) ([]*domain.Creative, error)
	Get(ctx context.Context, actor *domain.Claims, id string) (*domain.Creative, error)
	Review(ctx context.Context, actor *domain.Claims, id string, req *domain.ReviewCreativeRequest) (*domain.Creative, error)
	UpdatePerformance(ctx context.Context, actor *domain.Claims, id string, performance *domain.CreativePerformance) (*domain.Creative, error)
}

type Service struct {
	repo repository.CreativeRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewService(repo repository.CreativeRepository, cfg *config.Config) CreativeService {
	return &Service{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

// Upload registra um criativo enviado por um criador, sempre como pendente
func (s *Service) Upload(ctx context.Context, actor *domain.Claims, req *domain.UploadCreativeRequest) (*domain.Creative, error) {
	if actor.UserRole != domain.UserRoleCreator {
		return nil, NewCreativeError(ErrForbidden, apiErrors.ErrInsufficientPrivilege, "", "Apenas criadores enviam criativos")
	}

	title := strings.TrimSpace(req.Title)
	if len(title) < minTitleLength || len(title) > s.maxTitleLength() {
		return nil, NewCreativeError(ErrInvalidTitle, apiErrors.ErrInvalidFormat, "",
			fmt.Sprintf("O título deve ter entre %d e %d caracteres", minTitleLength, s.maxTitleLength()))
	}

	description := strings.TrimSpace(req.Description)
	if len(description) < minDescriptionLength {
		return nil, NewCreativeError(ErrInvalidDescription, apiErrors.ErrInvalidFormat, "",
			fmt.Sprintf("A descrição deve ter pelo menos %d caracteres", minDescriptionLength))
	}

	if req.FileURL == "" {
		return nil, NewCreativeError(ErrInvalidFile, apiErrors.ErrMissingRequiredData, "", "file_url é obrigatório")
	}
	if req.FileType != domain.CreativeFileTypeImage && req.FileType != domain.CreativeFileTypeVideo {
		return nil, NewCreativeError(ErrInvalidFile, apiErrors.ErrInvalidFormat, "", "file_type deve ser image ou video")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewCreativeError(ErrGenerateID, apiErrors.ErrInternalServer, "", err.Error())
	}

	now := s.now().UTC()
	creative := &domain.Creative{
		ID:          id,
		CreatorID:   actor.UserID,
		BusinessID:  req.BusinessID,
		Title:       title,
		Description: description,
		FileURL:     req.FileURL,
		FileType:    req.FileType,
		Status:      domain.CreativeStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, creative); err != nil {
		logrus.WithFields(logrus.Fields{"creator_id": actor.UserID, "error": err.Error()}).Error("Erro ao gravar criativo")
		return nil, NewCreativeError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, err.Error())
	}

	logrus.WithFields(logrus.Fields{"creative_id": id, "creator_id": actor.UserID}).Info("Criativo enviado")

	return creative, nil
}

// List devolve os criativos do criador ou, para marcas, todos os criativos
func (s *Service) List(ctx context.Context, actor *domain.Claims, status []domain.CreativeStatus) ([]*domain.Creative, error) {
	filters := domain.CreativeFilters{Status: status}
	if actor.UserRole != domain.UserRoleBrand {
		filters.CreatorID = actor.UserID
	}

	creatives, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, NewCreativeError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "", err.Error())
	}

	for _, c := range creatives {
		c.Commission = c.CalculateCommission()
	}

	return creatives, nil
}

func (s *Service) Get(ctx context.Context, actor *domain.Claims, id string) (*domain.Creative, error) {
	creative, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	// Criador só enxerga os próprios criativos
	if actor.UserRole != domain.UserRoleBrand && creative.CreatorID != actor.UserID {
		return nil, NewCreativeError(ErrCreativeNotFound, apiErrors.ErrNotFound, id, "")
	}

	creative.Commission = creative.CalculateCommission()
	return creative, nil
}

// Review aprova ou rejeita um criativo pendente. Rejeição exige feedback.
func (s *Service) Review(ctx context.Context, actor *domain.Claims, id string, req *domain.ReviewCreativeRequest) (*domain.Creative, error) {
	if actor.UserRole != domain.UserRoleBrand {
		return nil, NewCreativeError(ErrForbidden, apiErrors.ErrInsufficientPrivilege, id, "Apenas marcas revisam criativos")
	}

	if req.Status != domain.CreativeStatusApproved && req.Status != domain.CreativeStatusRejected {
		return nil, NewCreativeError(ErrInvalidStatus, apiErrors.ErrInvalidFormat, id, string(req.Status))
	}

	if req.Status == domain.CreativeStatusRejected && (req.Feedback == nil || strings.TrimSpace(*req.Feedback) == "") {
		return nil, NewCreativeError(ErrFeedbackRequired, apiErrors.ErrMissingRequiredData, id, "")
	}

	creative, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if creative.Status != domain.CreativeStatusPending {
		return nil, NewCreativeError(ErrNotReviewable, apiErrors.ErrInvalidRequest, id, string(creative.Status))
	}

	creative.Status = req.Status
	creative.Feedback = req.Feedback
	creative.UpdatedAt = s.now().UTC()

	if err := s.update(ctx, creative); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"creative_id": id,
		"status":      creative.Status,
		"reviewer_id": actor.UserID,
	}).Info("Criativo revisado")

	creative.Commission = creative.CalculateCommission()
	return creative, nil
}

// UpdatePerformance grava as métricas de veiculação e marca o criativo como ativo
func (s *Service) UpdatePerformance(ctx context.Context, actor *domain.Claims, id string, performance *domain.CreativePerformance) (*domain.Creative, error) {
	if actor.UserRole != domain.UserRoleBrand {
		return nil, NewCreativeError(ErrForbidden, apiErrors.ErrInsufficientPrivilege, id, "Apenas marcas informam desempenho")
	}

	if performance == nil || performance.Spend < 0 || performance.Impressions < 0 || performance.Clicks < 0 || performance.Conversions < 0 {
		return nil, NewCreativeError(ErrInvalidPerformance, apiErrors.ErrInvalidFormat, id, "Valores não podem ser negativos")
	}

	creative, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if creative.Status != domain.CreativeStatusApproved && creative.Status != domain.CreativeStatusActive {
		return nil, NewCreativeError(ErrNotRunnable, apiErrors.ErrInvalidRequest, id, string(creative.Status))
	}

	creative.Performance = performance
	creative.Status = domain.CreativeStatusActive
	creative.UpdatedAt = s.now().UTC()

	if err := s.update(ctx, creative); err != nil {
		return nil, err
	}

	creative.Commission = creative.CalculateCommission()
	return creative, nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Creative, error) {
	if id == "" {
		return nil, NewCreativeError(ErrCreativeNotFound, apiErrors.ErrMissingRequiredData, "", "ID do criativo não fornecido")
	}

	creative, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, NewCreativeError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	if creative == nil {
		return nil, NewCreativeError(ErrCreativeNotFound, apiErrors.ErrNotFound, id, "")
	}
	return creative, nil
}

func (s *Service) update(ctx context.Context, creative *domain.Creative) error {
	if err := s.repo.Update(ctx, creative); err != nil {
		logrus.WithFields(logrus.Fields{"creative_id": creative.ID, "error": err.Error()}).Error("Erro ao atualizar criativo")
		return NewCreativeError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, creative.ID, err.Error())
	}
	return nil
}

func (s *Service) maxTitleLength() int {
	if s.cfg == nil || s.cfg.Creative.MaxTitleLength <= 0 {
		return defaultMaxTitle
	}
	return s.cfg.Creative.MaxTitleLength
}
