package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"dorry-backend/internal/domain"
)

// PostgresChatRepository stores the per-project conversation ordered by
// timestamp.
type PostgresChatRepository struct {
	db *sql.DB
}

func NewPostgresChatRepository(db *sql.DB) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

var _ ChatRepository = (*PostgresChatRepository)(nil)

func (r *PostgresChatRepository) CreateChatMessage(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	if m.ProjectID == 0 || m.Sender == "" || m.Content == "" {
		return nil, fmt.Errorf("chat message requires project_id, sender and content: %w", domain.ErrInvalidInput)
	}

	var changesJSON any
	if m.DesignChanges != nil {
		b, err := json.Marshal(m.DesignChanges)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal design changes: %w", err)
		}
		changesJSON = b
	}

	query := `
		INSERT INTO chat_messages (project_id, sender, content, timestamp, design_changes)
		VALUES ($1, $2, $3, NOW(), $4)
		RETURNING id, timestamp
	`

	created := *m
	err := r.db.QueryRowContext(ctx, query, m.ProjectID, m.Sender, m.Content, changesJSON).
		Scan(&created.ID, &created.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat message: %w", err)
	}
	return &created, nil
}

func (r *PostgresChatRepository) GetChatHistory(ctx context.Context, projectID int) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, project_id, sender, content, timestamp, design_changes
		FROM chat_messages
		WHERE project_id = $1
		ORDER BY timestamp ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}
	defer rows.Close()

	var messages []*domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var changesJSON []byte
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Sender, &m.Content, &m.Timestamp, &changesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		if len(changesJSON) > 0 {
			var dc domain.DesignChange
			if err := json.Unmarshal(changesJSON, &dc); err != nil {
				return nil, fmt.Errorf("failed to unmarshal design changes: %w", err)
			}
			m.DesignChanges = &dc
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
