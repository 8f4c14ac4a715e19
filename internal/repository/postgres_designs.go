package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"dorry-backend/internal/domain"
)

// PostgresDesignsRepository implements the append-only design version
// store. designs has UNIQUE (project_id, version); the second of two
// racing inserts for the same version fails with ErrVersionConflict.
type PostgresDesignsRepository struct {
	db *sql.DB
}

func NewPostgresDesignsRepository(db *sql.DB) *PostgresDesignsRepository {
	return &PostgresDesignsRepository{db: db}
}

var _ DesignsRepository = (*PostgresDesignsRepository)(nil)

// uniqueViolation is the PostgreSQL error code for a unique constraint.
const uniqueViolation = "23505"

func (r *PostgresDesignsRepository) CreateDesign(ctx context.Context, d *domain.Design) (*domain.Design, error) {
	if d.ProjectID == 0 || d.Version < 1 {
		return nil, fmt.Errorf("design requires project_id and version >= 1: %w", domain.ErrInvalidInput)
	}

	designJSON, err := json.Marshal(d.DesignData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal design data: %w", err)
	}
	envJSON, err := json.Marshal(d.Environmental)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal environmental data: %w", err)
	}

	query := `
		INSERT INTO designs (project_id, design_data, environmental_data, version, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	created := *d
	err = r.db.QueryRowContext(ctx, query, d.ProjectID, designJSON, envJSON, d.Version).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("design version %d for project %d already exists: %w",
				d.Version, d.ProjectID, domain.ErrVersionConflict)
		}
		return nil, fmt.Errorf("failed to create design: %w", err)
	}
	return &created, nil
}

func (r *PostgresDesignsRepository) GetDesign(ctx context.Context, id int) (*domain.Design, error) {
	query := `
		SELECT id, project_id, design_data, environmental_data, version, created_at
		FROM designs
		WHERE id = $1
	`
	d, err := scanDesign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("design %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get design: %w", err)
	}
	return d, nil
}

func (r *PostgresDesignsRepository) GetLatestDesign(ctx context.Context, projectID int) (*domain.Design, error) {
	query := `
		SELECT id, project_id, design_data, environmental_data, version, created_at
		FROM designs
		WHERE project_id = $1
		ORDER BY version DESC
		LIMIT 1
	`
	d, err := scanDesign(r.db.QueryRowContext(ctx, query, projectID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no designs for project %d: %w", projectID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest design: %w", err)
	}
	return d, nil
}

func (r *PostgresDesignsRepository) ListDesignVersions(ctx context.Context, projectID int) ([]*domain.Design, error) {
	query := `
		SELECT id, project_id, design_data, environmental_data, version, created_at
		FROM designs
		WHERE project_id = $1
		ORDER BY version DESC
	`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	defer rows.Close()

	var designs []*domain.Design
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan design: %w", err)
		}
		designs = append(designs, d)
	}
	return designs, rows.Err()
}

func scanDesign(row interface{ Scan(...any) error }) (*domain.Design, error) {
	var d domain.Design
	var designJSON, envJSON []byte
	if err := row.Scan(&d.ID, &d.ProjectID, &designJSON, &envJSON, &d.Version, &d.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(designJSON, &d.DesignData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal design data: %w", err)
	}
	if len(envJSON) > 0 {
		if err := json.Unmarshal(envJSON, &d.Environmental); err != nil {
			return nil, fmt.Errorf("failed to unmarshal environmental data: %w", err)
		}
	}
	return &d, nil
}
