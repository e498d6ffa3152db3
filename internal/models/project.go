package models

import "time"

// Project is a maintenance contract site ("chantier")
type Project struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	ClientID      *int       `json:"client_id,omitempty"` // FK to client_accounts, nil for internal sites
	TeamID        *int       `json:"team_id,omitempty"`
	TeamName      string     `json:"team_name,omitempty"` // Denormalized for display
	AnnualVisits  int        `json:"annual_visits"`       // Target visit count per contract year
	VisitDuration float64    `json:"visit_duration"`      // Hours per visit
	ContractStart *time.Time `json:"contract_start,omitempty"`
	ContractEnd   *time.Time `json:"contract_end,omitempty"`
	IrrigationOn  bool       `json:"irrigation_on"` // Site has an irrigation system to check
	Notes         string     `json:"notes"`
	IsArchived    bool       `json:"is_archived"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	ClientID      *int       `json:"client_id,omitempty"`
	TeamID        *int       `json:"team_id,omitempty"`
	AnnualVisits  int        `json:"annual_visits"`
	VisitDuration float64    `json:"visit_duration"`
	ContractStart *time.Time `json:"contract_start,omitempty"`
	ContractEnd   *time.Time `json:"contract_end,omitempty"`
	IrrigationOn  bool       `json:"irrigation_on"`
	Notes         string     `json:"notes"`
}

// UpdateProjectRequest represents the request body for updating a project
type UpdateProjectRequest struct {
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	ClientID      *int       `json:"client_id,omitempty"`
	TeamID        *int       `json:"team_id,omitempty"`
	AnnualVisits  int        `json:"annual_visits"`
	VisitDuration float64    `json:"visit_duration"`
	ContractStart *time.Time `json:"contract_start,omitempty"`
	ContractEnd   *time.Time `json:"contract_end,omitempty"`
	IrrigationOn  bool       `json:"irrigation_on"`
	Notes         string     `json:"notes"`
}
