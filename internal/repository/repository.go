package repository

import (
	"context"

	"dorry-backend/internal/domain"
)

// ProjectsRepository manages project rows.
type ProjectsRepository interface {
	CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetProject(ctx context.Context, id int) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, id int, upd domain.ProjectUpdate) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int) error
}

// DesignsRepository is an append-only version store: designs are only
// ever inserted, and (project_id, version) is unique. A duplicate
// version insert fails with domain.ErrVersionConflict so concurrent
// mutations cannot silently overwrite each other.
type DesignsRepository interface {
	CreateDesign(ctx context.Context, d *domain.Design) (*domain.Design, error)
	GetDesign(ctx context.Context, id int) (*domain.Design, error)
	GetLatestDesign(ctx context.Context, projectID int) (*domain.Design, error)
	ListDesignVersions(ctx context.Context, projectID int) ([]*domain.Design, error)
}

// BOQRepository is a single-record store: at most one live BOQ row per
// project, updated in place. The split from DesignsRepository keeps the
// versioned-vs-mutable distinction enforceable by the types.
type BOQRepository interface {
	CreateBOQ(ctx context.Context, b *domain.BOQ) (*domain.BOQ, error)
	GetBOQ(ctx context.Context, projectID int) (*domain.BOQ, error)
	UpdateBOQ(ctx context.Context, id int, items []domain.BOQItem, totalCost float64) (*domain.BOQ, error)
}

// ChatRepository stores the per-project conversation.
type ChatRepository interface {
	CreateChatMessage(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error)
	GetChatHistory(ctx context.Context, projectID int) ([]*domain.ChatMessage, error)
}
