package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dorry-backend/internal/domain"
)

func sampleDesignData() domain.DesignData {
	return domain.DesignData{
		Rooms: []domain.Room{
			domain.NewRoom("1", "Living Room", domain.RoomTypeLivingRoom, 40, 8, 5, domain.Point{X: 10, Y: 10}),
			domain.NewRoom("2", "Bathroom", domain.RoomTypeBathroom, 6, 3, 2, domain.Point{X: 18, Y: 10}),
		},
		TotalArea:  60,
		Dimensions: domain.Dimensions{Width: 10, Height: 6},
	}
}

func TestMemoryProjectsRepo_CRUD(t *testing.T) {
	repo := NewMemoryProjectsRepo()
	ctx := context.Background()

	_, err := repo.CreateProject(ctx, &domain.Project{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := repo.CreateProject(ctx, &domain.Project{Name: "Villa", LandArea: 750})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "concept", created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Villa", got.Name)

	_, err = repo.GetProject(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	name := "Villa Renamed"
	budget := 3_000_000.0
	updated, err := repo.UpdateProject(ctx, created.ID, domain.ProjectUpdate{Name: &name, Budget: &budget})
	require.NoError(t, err)
	assert.Equal(t, "Villa Renamed", updated.Name)
	assert.InDelta(t, 3_000_000, updated.Budget, 1e-9)
	assert.InDelta(t, 750, updated.LandArea, 1e-9) // untouched field survives

	second, err := repo.CreateProject(ctx, &domain.Project{Name: "Apartment"})
	require.NoError(t, err)

	// Newest first.
	list, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, created.ID, list[1].ID)

	require.NoError(t, repo.DeleteProject(ctx, created.ID))
	assert.ErrorIs(t, repo.DeleteProject(ctx, created.ID), domain.ErrNotFound)
	list, err = repo.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryDesignsRepo_AppendOnlyVersioning(t *testing.T) {
	repo := NewMemoryDesignsRepo()
	ctx := context.Background()

	_, err := repo.CreateDesign(ctx, &domain.Design{ProjectID: 1, Version: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	v1, err := repo.CreateDesign(ctx, &domain.Design{ProjectID: 1, DesignData: sampleDesignData(), Version: 1})
	require.NoError(t, err)
	v2, err := repo.CreateDesign(ctx, &domain.Design{ProjectID: 1, DesignData: sampleDesignData(), Version: 2})
	require.NoError(t, err)

	// Duplicate (project, version) is rejected, not overwritten.
	_, err = repo.CreateDesign(ctx, &domain.Design{ProjectID: 1, DesignData: sampleDesignData(), Version: 2})
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	// Same version for another project is fine.
	_, err = repo.CreateDesign(ctx, &domain.Design{ProjectID: 2, DesignData: sampleDesignData(), Version: 2})
	require.NoError(t, err)

	latest, err := repo.GetLatestDesign(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, v2.ID, latest.ID)
	assert.Equal(t, 2, latest.Version)

	got, err := repo.GetDesign(ctx, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)

	versions, err := repo.ListDesignVersions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 2, versions[0].Version) // newest first
	assert.Equal(t, 1, versions[1].Version)

	_, err = repo.GetLatestDesign(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryDesignsRepo_ReturnsDeepCopies(t *testing.T) {
	repo := NewMemoryDesignsRepo()
	ctx := context.Background()

	created, err := repo.CreateDesign(ctx, &domain.Design{ProjectID: 1, DesignData: sampleDesignData(), Version: 1})
	require.NoError(t, err)

	// Mutating a returned snapshot must not leak into the store.
	created.DesignData.Rooms[0].Area = 9999

	got, err := repo.GetDesign(ctx, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 40, got.DesignData.Rooms[0].Area, 1e-9)

	got.DesignData.Rooms[0].Name = "Tampered"
	again, err := repo.GetDesign(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Living Room", again.DesignData.Rooms[0].Name)
}

func TestMemoryBOQRepo_SingleRowPerProject(t *testing.T) {
	repo := NewMemoryBOQRepo()
	ctx := context.Background()

	_, err := repo.CreateBOQ(ctx, &domain.BOQ{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	items := []domain.BOQItem{{
		Category: domain.CategoryConcreteFoundation, Name: "Foundation Concrete",
		Unit: "m³", Quantity: 30, UnitPrice: 2200, TotalPrice: 66000,
	}}
	created, err := repo.CreateBOQ(ctx, &domain.BOQ{ProjectID: 1, Items: items, TotalCost: 66000})
	require.NoError(t, err)

	got, err := repo.GetBOQ(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.InDelta(t, 66000, got.TotalCost, 1e-9)

	_, err = repo.GetBOQ(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	newItems := append(items, domain.BOQItem{
		Category: domain.CategoryFinishesMaterials, Name: "Wall Paint",
		Unit: "liter", Quantity: 75, UnitPrice: 120, TotalPrice: 9000,
	})
	updated, err := repo.UpdateBOQ(ctx, created.ID, newItems, 75000)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Len(t, updated.Items, 2)
	assert.InDelta(t, 75000, updated.TotalCost, 1e-9)

	// Still a single row for the project.
	got, err = repo.GetBOQ(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.InDelta(t, 75000, got.TotalCost, 1e-9)

	_, err = repo.UpdateBOQ(ctx, 99, newItems, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryChatRepo_HistoryPerProjectInOrder(t *testing.T) {
	repo := NewMemoryChatRepo()
	ctx := context.Background()

	_, err := repo.CreateChatMessage(ctx, &domain.ChatMessage{ProjectID: 1, Sender: domain.SenderUser})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	for i, content := range []string{"first", "second", "third"} {
		projectID := 1
		if i == 1 {
			projectID = 2
		}
		_, err := repo.CreateChatMessage(ctx, &domain.ChatMessage{
			ProjectID: projectID, Sender: domain.SenderUser, Content: content,
		})
		require.NoError(t, err)
	}

	withChange, err := repo.CreateChatMessage(ctx, &domain.ChatMessage{
		ProjectID: 1, Sender: domain.SenderAssistant, Content: "updated",
		DesignChanges: &domain.DesignChange{RoomModified: domain.RoomTypeKitchen, SizeIncrease: true},
	})
	require.NoError(t, err)
	require.NotNil(t, withChange.DesignChanges)

	history, err := repo.GetChatHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "third", history[1].Content)
	assert.Equal(t, "updated", history[2].Content)
	assert.Equal(t, domain.RoomTypeKitchen, history[2].DesignChanges.RoomModified)

	other, err := repo.GetChatHistory(ctx, 2)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "second", other[0].Content)
}
