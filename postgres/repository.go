package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver

	"github.com/nearview/location-insights/models"
)

type repository struct {
	db *sql.DB
}

// NewRepository creates a PostgreSQL implementation of
// models.AnalysisRepository. The schema is managed by migrations, not here.
func NewRepository(db *sql.DB) (models.AnalysisRepository, error) {
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &repository{db: db}, nil
}

func (repo *repository) Get(ctx context.Context, id string) (models.Analysis, error) {
	const q = `SELECT id, name, status, COALESCE(failure_reason, ''), data, COALESCE(groups, ''), extract(epoch from created_at)
		FROM analyses WHERE id = $1`

	row := repo.db.QueryRowContext(ctx, q, id)

	return rowToAnalysis(row)
}

func (repo *repository) Create(ctx context.Context, analysis *models.Analysis) error {
	item, err := analysisToRow(analysis)
	if err != nil {
		return err
	}

	const q = `INSERT INTO analyses (id, name, status, failure_reason, data, groups, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, to_timestamp($7), to_timestamp($8))`

	_, err = repo.db.ExecContext(ctx, q,
		item.ID, item.Name, item.Status, item.FailureReason, item.Data, item.Groups, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	return nil
}

func (repo *repository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM analyses WHERE id = $1`

	result, err := repo.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (repo *repository) Select(ctx context.Context, params models.SelectParams) ([]models.Analysis, error) {
	q := `SELECT id, name, status, COALESCE(failure_reason, ''), data, COALESCE(groups, ''), extract(epoch from created_at)
		FROM analyses`

	var args []any

	if params.Status != "" {
		q += ` WHERE status = $1`

		args = append(args, params.Status)
	}

	q += ` ORDER BY created_at DESC`

	if params.Limit > 0 {
		q += fmt.Sprintf(` LIMIT $%d`, len(args)+1)

		args = append(args, params.Limit)
	}

	rows, err := repo.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select analyses: %w", err)
	}

	defer rows.Close()

	var ans []models.Analysis

	for rows.Next() {
		analysis, err := rowToAnalysis(rows)
		if err != nil {
			return nil, err
		}

		ans = append(ans, analysis)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ans, nil
}

func (repo *repository) Update(ctx context.Context, analysis *models.Analysis) error {
	item, err := analysisToRow(analysis)
	if err != nil {
		return err
	}

	const q = `UPDATE analyses SET name = $1, status = $2, failure_reason = $3, data = $4, groups = $5, updated_at = to_timestamp($6)
		WHERE id = $7`

	result, err := repo.db.ExecContext(ctx, q,
		item.Name, item.Status, item.FailureReason, item.Data, item.Groups, item.UpdatedAt, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update analysis: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}

	return nil
}

type analysisRow struct {
	ID            string
	Name          string
	Status        string
	FailureReason string
	Data          string
	Groups        string
	CreatedAt     int64
	UpdatedAt     int64
}

func analysisToRow(analysis *models.Analysis) (analysisRow, error) {
	data, err := json.Marshal(analysis.Data)
	if err != nil {
		return analysisRow{}, err
	}

	groups := ""

	if analysis.Groups != nil {
		raw, err := json.Marshal(analysis.Groups)
		if err != nil {
			return analysisRow{}, err
		}

		groups = string(raw)
	}

	return analysisRow{
		ID:            analysis.ID,
		Name:          analysis.Name,
		Status:        analysis.Status,
		FailureReason: analysis.FailureReason,
		Data:          string(data),
		Groups:        groups,
		CreatedAt:     analysis.Date.Unix(),
		UpdatedAt:     time.Now().UTC().Unix(),
	}, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func rowToAnalysis(row scannable) (models.Analysis, error) {
	var (
		item  analysisRow
		epoch float64
	)

	err := row.Scan(&item.ID, &item.Name, &item.Status, &item.FailureReason, &item.Data, &item.Groups, &epoch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Analysis{}, models.ErrNotFound
		}

		return models.Analysis{}, err
	}

	ans := models.Analysis{
		ID:            item.ID,
		Name:          item.Name,
		Status:        item.Status,
		FailureReason: item.FailureReason,
		Date:          time.Unix(int64(epoch), 0).UTC(),
	}

	if err := json.Unmarshal([]byte(item.Data), &ans.Data); err != nil {
		return models.Analysis{}, err
	}

	if item.Groups != "" {
		if err := json.Unmarshal([]byte(item.Groups), &ans.Groups); err != nil {
			return models.Analysis{}, err
		}
	}

	return ans, nil
}
