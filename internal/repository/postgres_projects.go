package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dorry-backend/internal/domain"
)

// PostgresProjectsRepository implements ProjectsRepository on the
// projects table.
type PostgresProjectsRepository struct {
	db *sql.DB
}

func NewPostgresProjectsRepository(db *sql.DB) *PostgresProjectsRepository {
	return &PostgresProjectsRepository{db: db}
}

var _ ProjectsRepository = (*PostgresProjectsRepository)(nil)

const projectColumns = `
	id, name, COALESCE(description, ''), COALESCE(type, ''),
	COALESCE(land_area, 0), COALESCE(budget, 0),
	COALESCE(latitude, 0), COALESCE(longitude, 0),
	COALESCE(location, ''), COALESCE(cultural_style, ''),
	COALESCE(status, 'concept'), COALESCE(thumbnail_url, ''),
	created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Type,
		&p.LandArea, &p.Budget,
		&p.Latitude, &p.Longitude,
		&p.Location, &p.CulturalStyle,
		&p.Status, &p.ThumbnailURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresProjectsRepository) CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("project name is required: %w", domain.ErrInvalidInput)
	}
	status := p.Status
	if status == "" {
		status = "concept"
	}

	query := `
		INSERT INTO projects (name, description, type, land_area, budget, latitude, longitude, location, cultural_style, status, thumbnail_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING ` + projectColumns

	row := r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Type, p.LandArea, p.Budget,
		p.Latitude, p.Longitude, p.Location, p.CulturalStyle,
		status, p.ThumbnailURL,
	)
	created, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

func (r *PostgresProjectsRepository) GetProject(ctx context.Context, id int) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (r *PostgresProjectsRepository) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *PostgresProjectsRepository) UpdateProject(ctx context.Context, id int, upd domain.ProjectUpdate) (*domain.Project, error) {
	set := []string{}
	args := []any{}
	argIdx := 1

	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, v)
		argIdx++
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Type != nil {
		add("type", *upd.Type)
	}
	if upd.LandArea != nil {
		add("land_area", *upd.LandArea)
	}
	if upd.Budget != nil {
		add("budget", *upd.Budget)
	}
	if upd.Latitude != nil {
		add("latitude", *upd.Latitude)
	}
	if upd.Longitude != nil {
		add("longitude", *upd.Longitude)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.CulturalStyle != nil {
		add("cultural_style", *upd.CulturalStyle)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.ThumbnailURL != nil {
		add("thumbnail_url", *upd.ThumbnailURL)
	}

	if len(set) == 0 {
		return r.GetProject(ctx, id)
	}
	set = append(set, "updated_at = NOW()")

	query := fmt.Sprintf(
		`UPDATE projects SET %s WHERE id = $%d RETURNING `+projectColumns,
		strings.Join(set, ", "), argIdx,
	)
	args = append(args, id)

	p, err := scanProject(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return p, nil
}

func (r *PostgresProjectsRepository) DeleteProject(ctx context.Context, id int) error {
	// Child rows first: designs, boqs and chat_messages reference
	// projects(id) without ON DELETE CASCADE.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"chat_messages", "boqs", "designs"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, table), id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}

	return tx.Commit()
}
