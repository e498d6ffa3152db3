package models

import "time"

// Personnel is a staff member assignable to site visits
type Personnel struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Position   string    `json:"position"` // 'chef_equipe', 'jardinier', 'apprenti'
	TeamID     *int      `json:"team_id,omitempty"`
	TeamName   string    `json:"team_name,omitempty"` // Denormalized for display
	IsActive   bool      `json:"is_active"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Team groups personnel working the same route
type Team struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"` // Hex color for planning display
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePersonnelRequest represents the request body for creating personnel
type CreatePersonnelRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
	TeamID   *int   `json:"team_id,omitempty"`
}

// UpdatePersonnelRequest represents the request body for updating personnel
type UpdatePersonnelRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
	TeamID   *int   `json:"team_id,omitempty"`
	IsActive bool   `json:"is_active"`
}

// CreateTeamRequest represents the request body for creating a team
type CreateTeamRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
