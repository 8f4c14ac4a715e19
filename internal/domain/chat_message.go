package domain

import "time"

// Chat message senders.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// ChatMessage is one row of a project's conversation (chat_messages
// table). DesignChanges is set only on assistant messages that applied
// a layout mutation.
type ChatMessage struct {
	ID            int           `json:"id" db:"id"`
	ProjectID     int           `json:"projectId" db:"project_id"`
	Sender        string        `json:"sender" db:"sender"`
	Content       string        `json:"content" db:"content"`
	Timestamp     time.Time     `json:"timestamp" db:"timestamp"`
	DesignChanges *DesignChange `json:"designChanges,omitempty" db:"design_changes"` // JSONB, nullable
}
