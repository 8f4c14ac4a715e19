package domain

import "time"

// Design is a persisted, versioned layout snapshot (designs table).
// Designs are immutable once written: a mutation always produces a new
// row with version+1, never an in-place edit. For a given project the
// row with the maximum version is "latest".
type Design struct {
	ID            int         `json:"id" db:"id"`
	ProjectID     int         `json:"projectId" db:"project_id"`
	DesignData    DesignData  `json:"designData" db:"design_data"`          // JSONB
	Environmental WeatherData `json:"environmentalData" db:"environmental_data"` // JSONB, conditions at generation time
	Version       int         `json:"version" db:"version"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
}

// DesignChange describes a chat-triggered layout mutation, stored on
// the assistant message for audit and used to build the reply text.
type DesignChange struct {
	RoomModified RoomType `json:"roomModified"`
	SizeIncrease bool     `json:"sizeIncrease"`
}
