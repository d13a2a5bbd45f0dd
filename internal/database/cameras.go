package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lenscatalog/dpreview-scraper/internal/models"
)

type CameraStatus string

const (
	StatusPending   CameraStatus = "pending"
	StatusCompleted CameraStatus = "completed"
	StatusFailed    CameraStatus = "failed"
)

// CameraRow is one row of the cameras table. Record holds the full camera
// document as JSON and is only populated for completed rows.
type CameraRow struct {
	ProductCode  string          `db:"product_code"`
	Name         string          `db:"name"`
	URL          string          `db:"url"`
	ReviewScore  sql.NullInt32   `db:"review_score"`
	Record       json.RawMessage `db:"record"`
	Status       CameraStatus    `db:"status"`
	ErrorMessage sql.NullString  `db:"error_message"`
	ScrapedAt    sql.NullTime    `db:"scraped_at"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// Migrate creates the cameras table when it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS cameras (
			product_code  TEXT PRIMARY KEY,
			name          TEXT NOT NULL DEFAULT '',
			url           TEXT NOT NULL DEFAULT '',
			review_score  INTEGER,
			record        JSONB,
			status        TEXT NOT NULL DEFAULT 'pending',
			error_message TEXT,
			scraped_at    TIMESTAMPTZ,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`

	if _, err := db.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create cameras table: %w", err)
	}
	return nil
}

// UpsertCamera registers a discovered product. An existing row keeps its
// status and record; only name and url refresh.
func (db *DB) UpsertCamera(ctx context.Context, productCode, name, url string) error {
	query := `
		INSERT INTO cameras (product_code, name, url, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_code) DO UPDATE SET
			name = EXCLUDED.name,
			url = EXCLUDED.url,
			updated_at = CURRENT_TIMESTAMP`

	if _, err := db.pool.Exec(ctx, query, productCode, name, url, StatusPending); err != nil {
		return fmt.Errorf("failed to upsert camera: %w", err)
	}
	return nil
}

// SaveCameraRecord stores a parsed camera document and marks the row
// completed.
func (db *DB) SaveCameraRecord(ctx context.Context, camera *models.Camera) error {
	record, err := json.Marshal(camera)
	if err != nil {
		return fmt.Errorf("failed to marshal camera record: %w", err)
	}

	query := `
		INSERT INTO cameras (product_code, name, url, review_score, record, status, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		ON CONFLICT (product_code) DO UPDATE SET
			name = EXCLUDED.name,
			url = EXCLUDED.url,
			review_score = EXCLUDED.review_score,
			record = EXCLUDED.record,
			status = EXCLUDED.status,
			error_message = NULL,
			scraped_at = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP`

	_, err = db.pool.Exec(ctx, query,
		camera.ProductCode, camera.Name, camera.URL, camera.ReviewScore, record, StatusCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to save camera record: %w", err)
	}
	return nil
}

// UpdateCameraStatus updates the status and error message of one row.
func (db *DB) UpdateCameraStatus(ctx context.Context, productCode string, status CameraStatus, errorMsg string) error {
	query := `
		UPDATE cameras SET
			status = $2,
			error_message = $3,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_code = $1`

	if _, err := db.pool.Exec(ctx, query, productCode, status, errorMsg); err != nil {
		return fmt.Errorf("failed to update camera status: %w", err)
	}
	return nil
}

// GetCamera retrieves a single row by product code. Returns nil when the
// product is unknown.
func (db *DB) GetCamera(ctx context.Context, productCode string) (*CameraRow, error) {
	query := `
		SELECT product_code, name, url, review_score, record,
			   status, error_message, scraped_at, created_at, updated_at
		FROM cameras
		WHERE product_code = $1`

	row := &CameraRow{}
	err := db.pool.QueryRow(ctx, query, productCode).Scan(
		&row.ProductCode, &row.Name, &row.URL, &row.ReviewScore, &row.Record,
		&row.Status, &row.ErrorMessage, &row.ScrapedAt, &row.CreatedAt, &row.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get camera: %w", err)
	}

	return row, nil
}

// GetPendingCameras returns rows that still need crawling, oldest first.
func (db *DB) GetPendingCameras(ctx context.Context, limit int) ([]*CameraRow, error) {
	query := `
		SELECT product_code, name, url, status, created_at, updated_at
		FROM cameras
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2`

	rows, err := db.pool.Query(ctx, query, StatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending cameras: %w", err)
	}
	defer rows.Close()

	var cameras []*CameraRow
	for rows.Next() {
		row := &CameraRow{}
		err := rows.Scan(
			&row.ProductCode, &row.Name, &row.URL,
			&row.Status, &row.CreatedAt, &row.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan camera: %w", err)
		}
		cameras = append(cameras, row)
	}

	return cameras, nil
}

// ListCameras returns completed rows ordered by product code.
func (db *DB) ListCameras(ctx context.Context, limit, offset int) ([]*CameraRow, error) {
	query := `
		SELECT product_code, name, url, review_score, record,
			   status, error_message, scraped_at, created_at, updated_at
		FROM cameras
		WHERE status = $1
		ORDER BY product_code ASC
		LIMIT $2 OFFSET $3`

	rows, err := db.pool.Query(ctx, query, StatusCompleted, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list cameras: %w", err)
	}
	defer rows.Close()

	var cameras []*CameraRow
	for rows.Next() {
		row := &CameraRow{}
		err := rows.Scan(
			&row.ProductCode, &row.Name, &row.URL, &row.ReviewScore, &row.Record,
			&row.Status, &row.ErrorMessage, &row.ScrapedAt, &row.CreatedAt, &row.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan camera: %w", err)
		}
		cameras = append(cameras, row)
	}

	return cameras, nil
}

// CountCamerasByStatus returns row counts grouped by status.
func (db *DB) CountCamerasByStatus(ctx context.Context) (map[CameraStatus]int, error) {
	query := `
		SELECT status, COUNT(*) as count
		FROM cameras
		GROUP BY status`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count cameras: %w", err)
	}
	defer rows.Close()

	counts := make(map[CameraStatus]int)
	for rows.Next() {
		var status CameraStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = count
	}

	return counts, nil
}
