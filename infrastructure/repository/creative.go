package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/adlink-api/infrastructure/database/postgres"
	"github.com/vfg2006/adlink-api/internal/domain"
)

const creativesTable = "creatives"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var creativeColumns = []string{
	"id", "creator_id", "business_id", "title", "description", "file_url", "file_type",
	"status", "feedback", "performance", "created_at", "updated_at",
}

//go:generate mockgen -source=creative.go -destination=mocks/mock_creative.go -package=mocks

type CreativeRepository interface {
	Create(ctx context.Context, creative *domain.Creative) error
	GetByID(ctx context.Context, id string) (*domain.Creative, error)
	List(ctx context.Context, filters domain.CreativeFilters) ([]*domain.Creative, error)
	Update(ctx context.Context, creative *domain.Creative) error
}

type creativeRepository struct {
	conn *postgres.Connection
}

func NewCreativeRepository(conn *postgres.Connection) CreativeRepository {
	return &creativeRepository{
		conn: conn,
	}
}

func (r *creativeRepository) Create(ctx context.Context, creative *domain.Creative) error {
	performanceJSON, err := marshalPerformance(creative.Performance)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert(creativesTable).
		Columns(creativeColumns...).
		Values(
			creative.ID,
			creative.CreatorID,
			nullString(creative.BusinessID),
			creative.Title,
			creative.Description,
			creative.FileURL,
			string(creative.FileType),
			string(creative.Status),
			creative.Feedback,
			performanceJSON,
			creative.CreatedAt,
			creative.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// GetByID retorna nil, nil quando o criativo não existe
func (r *creativeRepository) GetByID(ctx context.Context, id string) (*domain.Creative, error) {
	query, args, err := squirrel.
		Select(creativeColumns...).
		From(creativesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	creative, err := scanCreative(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear criativo: %w", err)
	}

	return creative, nil
}

func (r *creativeRepository) List(ctx context.Context, filters domain.CreativeFilters) ([]*domain.Creative, error) {
	queryBuilder := squirrel.
		Select(creativeColumns...).
		From(creativesTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.CreatorID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"creator_id": filters.CreatorID})
	}

	if len(filters.Status) > 0 {
		statuses := make([]string, 0, len(filters.Status))
		for _, status := range filters.Status {
			statuses = append(statuses, string(status))
		}
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": statuses})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	creatives := make([]*domain.Creative, 0)
	for rows.Next() {
		creative, err := scanCreative(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear criativos: %w", err)
		}
		creatives = append(creatives, creative)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar criativos: %w", err)
	}

	return creatives, nil
}

// Update grava status, feedback e desempenho
func (r *creativeRepository) Update(ctx context.Context, creative *domain.Creative) error {
	performanceJSON, err := marshalPerformance(creative.Performance)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Update(creativesTable).
		Set("status", string(creative.Status)).
		Set("feedback", creative.Feedback).
		Set("performance", performanceJSON).
		Set("updated_at", creative.UpdatedAt).
		Where(squirrel.Eq{"id": creative.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCreative(row rowScanner) (*domain.Creative, error) {
	creative := &domain.Creative{}
	var (
		businessID      sql.NullString
		fileType        string
		status          string
		feedback        sql.NullString
		performanceJSON []byte
	)

	err := row.Scan(
		&creative.ID,
		&creative.CreatorID,
		&businessID,
		&creative.Title,
		&creative.Description,
		&creative.FileURL,
		&fileType,
		&status,
		&feedback,
		&performanceJSON,
		&creative.CreatedAt,
		&creative.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	creative.BusinessID = businessID.String
	creative.FileType = domain.CreativeFileType(fileType)
	creative.Status = domain.CreativeStatus(status)
	if feedback.Valid {
		creative.Feedback = &feedback.String
	}

	if len(performanceJSON) > 0 {
		performance := &domain.CreativePerformance{}
		if err := json.Unmarshal(performanceJSON, performance); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de performance: %w", err)
		}
		creative.Performance = performance
	}
	creative.Commission = creative.CalculateCommission()

	return creative, nil
}

func marshalPerformance(performance *domain.CreativePerformance) ([]byte, error) {
	if performance == nil {
		return nil, nil
	}

	data, err := json.Marshal(performance)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar performance para JSON: %w", err)
	}
	return data, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
