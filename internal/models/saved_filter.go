package models

import (
	"encoding/json"
	"time"
)

// SavedFilter is a named filter/sort preset. Config holds the serialized
// filtering.State so presets survive restarts.
type SavedFilter struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Scope     string          `json:"scope"` // 'projects' or 'worklogs'
	Config    json.RawMessage `json:"config"`
	OwnerID   int             `json:"owner_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SaveFilterRequest represents the request body for saving a preset
type SaveFilterRequest struct {
	Name   string          `json:"name"`
	Scope  string          `json:"scope"`
	Config json.RawMessage `json:"config"`
}
