package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"dorry-backend/internal/domain"
)

// In-memory repositories for local dev without a DB and for unit
// tests. They enforce the same invariants as the Postgres versions:
// append-only designs with a unique (project_id, version) pair, and a
// single BOQ row per project.

type MemoryProjectsRepo struct {
	mu       sync.RWMutex
	nextID   int
	projects map[int]*domain.Project
}

func NewMemoryProjectsRepo() *MemoryProjectsRepo {
	return &MemoryProjectsRepo{nextID: 1, projects: map[int]*domain.Project{}}
}

var _ ProjectsRepository = (*MemoryProjectsRepo)(nil)

func (r *MemoryProjectsRepo) CreateProject(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("project name is required: %w", domain.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *p
	created.ID = r.nextID
	r.nextID++
	if created.Status == "" {
		created.Status = "concept"
	}
	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now
	r.projects[created.ID] = &created

	out := created
	return &out, nil
}

func (r *MemoryProjectsRepo) GetProject(_ context.Context, id int) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	out := *p
	return &out, nil
}

func (r *MemoryProjectsRepo) ListProjects(_ context.Context) ([]*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryProjectsRepo) UpdateProject(_ context.Context, id int, upd domain.ProjectUpdate) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Type != nil {
		p.Type = *upd.Type
	}
	if upd.LandArea != nil {
		p.LandArea = *upd.LandArea
	}
	if upd.Budget != nil {
		p.Budget = *upd.Budget
	}
	if upd.Latitude != nil {
		p.Latitude = *upd.Latitude
	}
	if upd.Longitude != nil {
		p.Longitude = *upd.Longitude
	}
	if upd.Location != nil {
		p.Location = *upd.Location
	}
	if upd.CulturalStyle != nil {
		p.CulturalStyle = *upd.CulturalStyle
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.ThumbnailURL != nil {
		p.ThumbnailURL = *upd.ThumbnailURL
	}
	p.UpdatedAt = time.Now()

	out := *p
	return &out, nil
}

func (r *MemoryProjectsRepo) DeleteProject(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	delete(r.projects, id)
	return nil
}

type MemoryDesignsRepo struct {
	mu      sync.RWMutex
	nextID  int
	designs []*domain.Design
}

func NewMemoryDesignsRepo() *MemoryDesignsRepo {
	return &MemoryDesignsRepo{nextID: 1}
}

var _ DesignsRepository = (*MemoryDesignsRepo)(nil)

func (r *MemoryDesignsRepo) CreateDesign(_ context.Context, d *domain.Design) (*domain.Design, error) {
	if d.ProjectID == 0 || d.Version < 1 {
		return nil, fmt.Errorf("design requires project_id and version >= 1: %w", domain.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.designs {
		if existing.ProjectID == d.ProjectID && existing.Version == d.Version {
			return nil, fmt.Errorf("design version %d for project %d already exists: %w",
				d.Version, d.ProjectID, domain.ErrVersionConflict)
		}
	}

	created := *d
	created.ID = r.nextID
	r.nextID++
	created.CreatedAt = time.Now()
	created.DesignData = d.DesignData.Clone()
	r.designs = append(r.designs, &created)

	out := created
	out.DesignData = created.DesignData.Clone()
	return &out, nil
}

func (r *MemoryDesignsRepo) GetDesign(_ context.Context, id int) (*domain.Design, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.designs {
		if d.ID == id {
			out := *d
			out.DesignData = d.DesignData.Clone()
			return &out, nil
		}
	}
	return nil, fmt.Errorf("design %d: %w", id, domain.ErrNotFound)
}

func (r *MemoryDesignsRepo) GetLatestDesign(_ context.Context, projectID int) (*domain.Design, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *domain.Design
	for _, d := range r.designs {
		if d.ProjectID != projectID {
			continue
		}
		if latest == nil || d.Version > latest.Version {
			latest = d
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("no designs for project %d: %w", projectID, domain.ErrNotFound)
	}
	out := *latest
	out.DesignData = latest.DesignData.Clone()
	return &out, nil
}

func (r *MemoryDesignsRepo) ListDesignVersions(_ context.Context, projectID int) ([]*domain.Design, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Design
	for _, d := range r.designs {
		if d.ProjectID == projectID {
			cp := *d
			cp.DesignData = d.DesignData.Clone()
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

type MemoryBOQRepo struct {
	mu     sync.RWMutex
	nextID int
	boqs   map[int]*domain.BOQ // keyed by project id
}

func NewMemoryBOQRepo() *MemoryBOQRepo {
	return &MemoryBOQRepo{nextID: 1, boqs: map[int]*domain.BOQ{}}
}

var _ BOQRepository = (*MemoryBOQRepo)(nil)

func (r *MemoryBOQRepo) CreateBOQ(_ context.Context, b *domain.BOQ) (*domain.BOQ, error) {
	if b.ProjectID == 0 {
		return nil, fmt.Errorf("boq requires project_id: %w", domain.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *b
	created.ID = r.nextID
	r.nextID++
	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now
	created.Items = append([]domain.BOQItem(nil), b.Items...)
	r.boqs[b.ProjectID] = &created

	out := created
	out.Items = append([]domain.BOQItem(nil), created.Items...)
	return &out, nil
}

func (r *MemoryBOQRepo) GetBOQ(_ context.Context, projectID int) (*domain.BOQ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.boqs[projectID]
	if !ok {
		return nil, fmt.Errorf("no boq for project %d: %w", projectID, domain.ErrNotFound)
	}
	out := *b
	out.Items = append([]domain.BOQItem(nil), b.Items...)
	return &out, nil
}

func (r *MemoryBOQRepo) UpdateBOQ(_ context.Context, id int, items []domain.BOQItem, totalCost float64) (*domain.BOQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.boqs {
		if b.ID == id {
			b.Items = append([]domain.BOQItem(nil), items...)
			b.TotalCost = totalCost
			b.UpdatedAt = time.Now()
			out := *b
			out.Items = append([]domain.BOQItem(nil), b.Items...)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("boq %d: %w", id, domain.ErrNotFound)
}

type MemoryChatRepo struct {
	mu       sync.RWMutex
	nextID   int
	messages []*domain.ChatMessage
}

func NewMemoryChatRepo() *MemoryChatRepo {
	return &MemoryChatRepo{nextID: 1}
}

var _ ChatRepository = (*MemoryChatRepo)(nil)

func (r *MemoryChatRepo) CreateChatMessage(_ context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	if m.ProjectID == 0 || m.Sender == "" || m.Content == "" {
		return nil, fmt.Errorf("chat message requires project_id, sender and content: %w", domain.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *m
	created.ID = r.nextID
	r.nextID++
	created.Timestamp = time.Now()
	if m.DesignChanges != nil {
		dc := *m.DesignChanges
		created.DesignChanges = &dc
	}
	r.messages = append(r.messages, &created)

	out := created
	return &out, nil
}

func (r *MemoryChatRepo) GetChatHistory(_ context.Context, projectID int) ([]*domain.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.ChatMessage
	for _, m := range r.messages {
		if m.ProjectID == projectID {
			cp := *m
			out = append(out, &cp)
		}
	}
	// insertion order == timestamp ascending
	return out, nil
}
