package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"dorry-backend/internal/domain"
)

// PostgresBOQRepository implements the single-record BOQ store. boqs
// has UNIQUE (project_id): the live estimate is updated in place,
// unlike designs which version forever.
type PostgresBOQRepository struct {
	db *sql.DB
}

func NewPostgresBOQRepository(db *sql.DB) *PostgresBOQRepository {
	return &PostgresBOQRepository{db: db}
}

var _ BOQRepository = (*PostgresBOQRepository)(nil)

func (r *PostgresBOQRepository) CreateBOQ(ctx context.Context, b *domain.BOQ) (*domain.BOQ, error) {
	if b.ProjectID == 0 {
		return nil, fmt.Errorf("boq requires project_id: %w", domain.ErrInvalidInput)
	}

	itemsJSON, err := json.Marshal(b.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal boq items: %w", err)
	}

	query := `
		INSERT INTO boqs (project_id, items, total_cost, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	created := *b
	err = r.db.QueryRowContext(ctx, query, b.ProjectID, itemsJSON, b.TotalCost).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create boq: %w", err)
	}
	return &created, nil
}

func (r *PostgresBOQRepository) GetBOQ(ctx context.Context, projectID int) (*domain.BOQ, error) {
	query := `
		SELECT id, project_id, items, total_cost, created_at, updated_at
		FROM boqs
		WHERE project_id = $1
	`

	var b domain.BOQ
	var itemsJSON []byte
	err := r.db.QueryRowContext(ctx, query, projectID).
		Scan(&b.ID, &b.ProjectID, &itemsJSON, &b.TotalCost, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no boq for project %d: %w", projectID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get boq: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &b.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal boq items: %w", err)
	}
	return &b, nil
}

func (r *PostgresBOQRepository) UpdateBOQ(ctx context.Context, id int, items []domain.BOQItem, totalCost float64) (*domain.BOQ, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal boq items: %w", err)
	}

	query := `
		UPDATE boqs
		SET items = $1, total_cost = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, project_id, items, total_cost, created_at, updated_at
	`

	var b domain.BOQ
	var outJSON []byte
	err = r.db.QueryRowContext(ctx, query, itemsJSON, totalCost, id).
		Scan(&b.ID, &b.ProjectID, &outJSON, &b.TotalCost, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("boq %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update boq: %w", err)
	}
	if err := json.Unmarshal(outJSON, &b.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal boq items: %w", err)
	}
	return &b, nil
}
