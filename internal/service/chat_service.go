package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"dorry-backend/internal/domain"
	"dorry-backend/internal/repository"
)

// SpeechSynthesizer converts reply text to an audio URL; "" means
// unavailable or failed.
type SpeechSynthesizer interface {
	Available() bool
	Synthesize(ctx context.Context, text string) string
}

// ChatService is the per-turn orchestrator: classify the message,
// attempt a layout mutation against the latest design, reprice, and
// persist — design version first, BOQ second, assistant reply last.
// Concurrent turns against one project are not serialized here; the
// design store's version uniqueness rejects the loser, and that
// rejection is surfaced as a retryable conflict.
type ChatService struct {
	designs   repository.DesignsRepository
	boqs      repository.BOQRepository
	chat      repository.ChatRepository
	estimator *Estimator
	tts       SpeechSynthesizer
	logger    *zap.Logger
}

func NewChatService(
	designs repository.DesignsRepository,
	boqs repository.BOQRepository,
	chat repository.ChatRepository,
	estimator *Estimator,
	tts SpeechSynthesizer,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		designs:   designs,
		boqs:      boqs,
		chat:      chat,
		estimator: estimator,
		tts:       tts,
		logger:    logger,
	}
}

// ChatTurnResult is the outcome of one chat turn. AssistantMessage is
// nil for assistant-sent (injected) messages, which pass through with
// no side effects.
type ChatTurnResult struct {
	UserMessage      *domain.ChatMessage `json:"userMessage"`
	AssistantMessage *domain.ChatMessage `json:"assistantMessage,omitempty"`
	SpeechURL        string              `json:"speechUrl,omitempty"`
}

const ackResponse = "I've received your message and will process it."

// HandleMessage processes one inbound chat message for a project.
func (s *ChatService) HandleMessage(ctx context.Context, projectID int, sender, content string, wantTTS bool) (*ChatTurnResult, error) {
	if sender != domain.SenderUser && sender != domain.SenderAssistant {
		return nil, fmt.Errorf("sender must be %q or %q: %w", domain.SenderUser, domain.SenderAssistant, domain.ErrInvalidInput)
	}

	message, err := s.chat.CreateChatMessage(ctx, &domain.ChatMessage{
		ProjectID: projectID,
		Sender:    sender,
		Content:   content,
	})
	if err != nil {
		return nil, err
	}

	// Injected assistant/system messages carry no intent.
	if sender != domain.SenderUser {
		return &ChatTurnResult{UserMessage: message}, nil
	}

	response := ackResponse
	var change *domain.DesignChange

	// Designs are created only via the explicit generation entrypoint;
	// a chat message against a design-less project just gets the ack.
	latest, err := s.designs.GetLatestDesign(ctx, projectID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if latest != nil {
		var updated domain.DesignData
		updated, change = MutateLayout(latest.DesignData, content)

		if change != nil {
			newDesign, err := s.designs.CreateDesign(ctx, &domain.Design{
				ProjectID:     projectID,
				DesignData:    updated,
				Environmental: latest.Environmental,
				Version:       latest.Version + 1,
			})
			if err != nil {
				// Version conflicts mean a concurrent turn won the
				// race; surface as retryable, never overwrite.
				return nil, err
			}

			items := s.estimator.GenerateBOQ(updated.Rooms, updated.TotalArea)
			totalCost := s.estimator.TotalCost(items)

			var costDifference float64
			oldBOQ, err := s.boqs.GetBOQ(ctx, projectID)
			switch {
			case err == nil:
				costDifference = totalCost - oldBOQ.TotalCost
				if _, err := s.boqs.UpdateBOQ(ctx, oldBOQ.ID, items, totalCost); err != nil {
					return nil, err
				}
			case errors.Is(err, domain.ErrNotFound):
				if _, err := s.boqs.CreateBOQ(ctx, &domain.BOQ{
					ProjectID: projectID,
					Items:     items,
					TotalCost: totalCost,
				}); err != nil {
					return nil, err
				}
			default:
				return nil, err
			}

			areaIncrease := updated.TotalArea - latest.DesignData.TotalArea
			response = fmt.Sprintf(
				"I've updated the %s dimensions. This increased the total built area by %d m². The budget has been adjusted accordingly with an increase of %d EGP. Would you like to see the modified floor plan?",
				strings.ToLower(change.RoomModified.DisplayName()),
				int(math.Round(areaIncrease)),
				int(math.Round(costDifference)),
			)

			s.logger.Info("Applied chat mutation",
				zap.Int("project_id", projectID),
				zap.Int("new_version", newDesign.Version),
				zap.String("room", string(change.RoomModified)),
				zap.Float64("cost_difference", costDifference),
			)
		}
	}

	assistantMessage, err := s.chat.CreateChatMessage(ctx, &domain.ChatMessage{
		ProjectID:     projectID,
		Sender:        domain.SenderAssistant,
		Content:       response,
		DesignChanges: change,
	})
	if err != nil {
		return nil, err
	}

	var speechURL string
	if wantTTS && s.tts != nil {
		speechURL = s.tts.Synthesize(ctx, response)
	}

	return &ChatTurnResult{
		UserMessage:      message,
		AssistantMessage: assistantMessage,
		SpeechURL:        speechURL,
	}, nil
}

// History returns the project conversation ordered by timestamp
// ascending.
func (s *ChatService) History(ctx context.Context, projectID int) ([]*domain.ChatMessage, error) {
	return s.chat.GetChatHistory(ctx, projectID)
}
