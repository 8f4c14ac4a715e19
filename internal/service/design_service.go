package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dorry-backend/internal/domain"
	"dorry-backend/internal/repository"
)

// EnvironmentalProvider supplies environmental data for coordinates.
// Implementations never fail outward; they degrade to defaults.
type EnvironmentalProvider interface {
	GetEnvironmentalData(ctx context.Context, lat, lon float64) domain.WeatherData
}

// DesignService owns the generation pipeline: environmental fetch →
// layout generation → design version write → BOQ write → welcome
// message. Writes happen strictly in that order so a reader never
// observes a BOQ that references a design version not yet persisted.
type DesignService struct {
	projects  repository.ProjectsRepository
	designs   repository.DesignsRepository
	boqs      repository.BOQRepository
	chat      repository.ChatRepository
	weather   EnvironmentalProvider
	estimator *Estimator
	logger    *zap.Logger
}

func NewDesignService(
	projects repository.ProjectsRepository,
	designs repository.DesignsRepository,
	boqs repository.BOQRepository,
	chat repository.ChatRepository,
	weather EnvironmentalProvider,
	estimator *Estimator,
	logger *zap.Logger,
) *DesignService {
	return &DesignService{
		projects:  projects,
		designs:   designs,
		boqs:      boqs,
		chat:      chat,
		weather:   weather,
		estimator: estimator,
		logger:    logger,
	}
}

// GenerateDesignResult bundles everything produced by one generation.
type GenerateDesignResult struct {
	Design        *domain.Design     `json:"design"`
	BOQ           *domain.BOQ        `json:"boq"`
	Environmental domain.WeatherData `json:"environmentalData"`
}

// GenerateDesign runs the full pipeline for a project. The project
// must have a land area and coordinates; validation happens before
// anything is written.
func (s *DesignService) GenerateDesign(ctx context.Context, projectID int) (*GenerateDesignResult, error) {
	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.LandArea <= 0 || project.Latitude == 0 || project.Longitude == 0 {
		return nil, fmt.Errorf("project must have land area and location coordinates to generate a design: %w",
			domain.ErrInvalidInput)
	}

	environmental := s.weather.GetEnvironmentalData(ctx, project.Latitude, project.Longitude)

	designData, err := GenerateLayout(project.LandArea, environmental)
	if err != nil {
		return nil, err
	}

	version, err := s.nextVersion(ctx, projectID)
	if err != nil {
		return nil, err
	}

	design, err := s.designs.CreateDesign(ctx, &domain.Design{
		ProjectID:     projectID,
		DesignData:    designData,
		Environmental: environmental,
		Version:       version,
	})
	if err != nil {
		return nil, err
	}

	items := s.estimator.GenerateBOQ(designData.Rooms, designData.TotalArea)
	totalCost := s.estimator.TotalCost(items)

	boq, err := s.upsertBOQ(ctx, projectID, items, totalCost)
	if err != nil {
		return nil, err
	}

	welcome := fmt.Sprintf(
		"Welcome to your %s project! I've analyzed the environmental conditions for your location and generated an initial conceptual design. The main living areas face %s to take advantage of natural lighting while keeping wet areas opposite to the prevailing wind direction.",
		project.Name, strings.ToLower(environmental.WindDirection),
	)
	if _, err := s.chat.CreateChatMessage(ctx, &domain.ChatMessage{
		ProjectID: projectID,
		Sender:    domain.SenderAssistant,
		Content:   welcome,
	}); err != nil {
		// The design and BOQ are already persisted; a failed welcome
		// message is not worth failing the generation over.
		s.logger.Warn("Failed to store welcome message",
			zap.Int("project_id", projectID), zap.Error(err))
	}

	s.logger.Info("Generated design",
		zap.Int("project_id", projectID),
		zap.Int("version", design.Version),
		zap.Float64("total_area", designData.TotalArea),
		zap.Float64("total_cost", totalCost),
	)

	return &GenerateDesignResult{
		Design:        design,
		BOQ:           boq,
		Environmental: environmental,
	}, nil
}

// CreateDesign persists an explicitly supplied layout as the next
// version for the project.
func (s *DesignService) CreateDesign(ctx context.Context, projectID int, data domain.DesignData, environmental domain.WeatherData) (*domain.Design, error) {
	if _, err := s.projects.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	if len(data.Rooms) == 0 {
		return nil, fmt.Errorf("design requires at least one room: %w", domain.ErrInvalidInput)
	}

	version, err := s.nextVersion(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return s.designs.CreateDesign(ctx, &domain.Design{
		ProjectID:     projectID,
		DesignData:    data,
		Environmental: environmental,
		Version:       version,
	})
}

func (s *DesignService) nextVersion(ctx context.Context, projectID int) (int, error) {
	latest, err := s.designs.GetLatestDesign(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 1, nil
		}
		return 0, err
	}
	return latest.Version + 1, nil
}

func (s *DesignService) upsertBOQ(ctx context.Context, projectID int, items []domain.BOQItem, totalCost float64) (*domain.BOQ, error) {
	existing, err := s.boqs.GetBOQ(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.boqs.CreateBOQ(ctx, &domain.BOQ{
				ProjectID: projectID,
				Items:     items,
				TotalCost: totalCost,
			})
		}
		return nil, err
	}
	return s.boqs.UpdateBOQ(ctx, existing.ID, items, totalCost)
}
