package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/nearview/location-insights/models"
)

type repo struct {
	db *sql.DB
}

// New opens (and if needed initializes) the analyses database at path.
func New(path string) (models.AnalysisRepository, error) {
	db, err := initDatabase(path)
	if err != nil {
		return nil, err
	}

	return &repo{db: db}, nil
}

func initDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	const q = `CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		failure_reason TEXT NOT NULL DEFAULT '',
		data TEXT NOT NULL,
		groups TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`

	if _, err := db.Exec(q); err != nil {
		_ = db.Close()

		return nil, err
	}

	return db, nil
}

func (repo *repo) Get(ctx context.Context, id string) (models.Analysis, error) {
	const q = `SELECT id, name, status, failure_reason, data, groups, created_at FROM analyses WHERE id = ?`

	row := repo.db.QueryRowContext(ctx, q, id)

	return rowToAnalysis(row)
}

func (repo *repo) Create(ctx context.Context, analysis *models.Analysis) error {
	item, err := analysisToRow(analysis)
	if err != nil {
		return err
	}

	const q = `INSERT INTO analyses (id, name, status, failure_reason, data, groups, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = repo.db.ExecContext(ctx, q,
		item.ID, item.Name, item.Status, item.FailureReason, item.Data, item.Groups, item.CreatedAt, item.UpdatedAt)

	return err
}

func (repo *repo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM analyses WHERE id = ?`

	result, err := repo.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (repo *repo) Select(ctx context.Context, params models.SelectParams) ([]models.Analysis, error) {
	q := `SELECT id, name, status, failure_reason, data, groups, created_at FROM analyses`

	var args []any

	if params.Status != "" {
		q += ` WHERE status = ?`

		args = append(args, params.Status)
	}

	q += " ORDER BY created_at DESC"

	if params.Limit > 0 {
		q += " LIMIT ?"

		args = append(args, params.Limit)
	}

	rows, err := repo.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
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

func (repo *repo) Update(ctx context.Context, analysis *models.Analysis) error {
	item, err := analysisToRow(analysis)
	if err != nil {
		return err
	}

	const q = `UPDATE analyses SET name = ?, status = ?, failure_reason = ?, data = ?, groups = ?, updated_at = ? WHERE id = ?`

	result, err := repo.db.ExecContext(ctx, q,
		item.Name, item.Status, item.FailureReason, item.Data, item.Groups, item.UpdatedAt, item.ID)
	if err != nil {
		return err
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
	var item analysisRow

	err := row.Scan(&item.ID, &item.Name, &item.Status, &item.FailureReason, &item.Data, &item.Groups, &item.CreatedAt)
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
		Date:          time.Unix(item.CreatedAt, 0).UTC(),
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
