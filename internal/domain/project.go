package domain

import "time"

// Project 项目 (projects table). LandArea, Latitude and Longitude must
// all be present before a design can be generated.
type Project struct {
	ID            int       `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description,omitempty" db:"description"`
	Type          string    `json:"type,omitempty" db:"type"` // residential, commercial, ...
	LandArea      float64   `json:"landArea,omitempty" db:"land_area"` // m²
	Budget        float64   `json:"budget,omitempty" db:"budget"`      // EGP
	Latitude      float64   `json:"latitude,omitempty" db:"latitude"`
	Longitude     float64   `json:"longitude,omitempty" db:"longitude"`
	Location      string    `json:"location,omitempty" db:"location"` // e.g. "New Cairo"
	CulturalStyle string    `json:"culturalStyle,omitempty" db:"cultural_style"`
	Status        string    `json:"status" db:"status"` // concept, in_progress, review, completed
	ThumbnailURL  string    `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// ProjectUpdate carries the updatable project fields; nil means "leave
// unchanged".
type ProjectUpdate struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Type          *string  `json:"type,omitempty"`
	LandArea      *float64 `json:"landArea,omitempty"`
	Budget        *float64 `json:"budget,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Location      *string  `json:"location,omitempty"`
	CulturalStyle *string  `json:"culturalStyle,omitempty"`
	Status        *string  `json:"status,omitempty"`
	ThumbnailURL  *string  `json:"thumbnailUrl,omitempty"`
}
