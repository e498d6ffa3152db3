package models

import "time"

// WorkLog is a completed-work record. A log with a ProjectID is a
// "fiche de suivi"; a log without one is a blank worksheet ("fiche vierge")
// for one-off jobs not tied to a contract site.
type WorkLog struct {
	ID            int        `json:"id"`
	ProjectID     *int       `json:"project_id,omitempty"` // nil for blank worksheets
	ProjectName   string     `json:"project_name,omitempty"`
	SiteAddress   string     `json:"site_address"` // Free text on blank worksheets
	Date          time.Time  `json:"date"`
	Personnel     []string   `json:"personnel"` // Names present on site that day
	Departure     string     `json:"departure"` // HH:MM depot departure
	Arrival       string     `json:"arrival"`   // HH:MM site arrival
	End           string     `json:"end"`       // HH:MM end of work
	BreakTime     float64    `json:"break_time"` // Hours
	TotalHours    float64    `json:"total_hours"`
	WaterConsumed *float64   `json:"water_consumed,omitempty"` // m3, irrigation sites only
	Tasks         string     `json:"tasks"`
	Notes         string     `json:"notes"`
	HourlyRate    *float64   `json:"hourly_rate,omitempty"` // Invoicing
	Invoiced      bool       `json:"invoiced"`
	SignedByName  string     `json:"signed_by_name,omitempty"` // Client signature on site
	IsArchived    bool       `json:"is_archived"`
	CreatedByID   int        `json:"created_by_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Consumables   []Consumable `json:"consumables,omitempty"`
}

// Consumable is a material line item on a work log (fuel, fertilizer,
// plants...). Owned by the work log, cascade-deleted with it.
type Consumable struct {
	ID        int     `json:"id"`
	WorkLogID int     `json:"work_log_id"`
	Product   string  `json:"product"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// CreateWorkLogRequest represents the request body for creating a work log.
// Omit project_id to create a blank worksheet.
type CreateWorkLogRequest struct {
	ProjectID     *int         `json:"project_id,omitempty"`
	SiteAddress   string       `json:"site_address"`
	Date          time.Time    `json:"date"`
	Personnel     []string     `json:"personnel"`
	Departure     string       `json:"departure"`
	Arrival       string       `json:"arrival"`
	End           string       `json:"end"`
	BreakTime     float64      `json:"break_time"`
	TotalHours    float64      `json:"total_hours"`
	WaterConsumed *float64     `json:"water_consumed,omitempty"`
	Tasks         string       `json:"tasks"`
	Notes         string       `json:"notes"`
	HourlyRate    *float64     `json:"hourly_rate,omitempty"`
	Invoiced      bool         `json:"invoiced"`
	SignedByName  string       `json:"signed_by_name,omitempty"`
	Consumables   []Consumable `json:"consumables,omitempty"`
}

// UpdateWorkLogRequest represents the request body for updating a work log
type UpdateWorkLogRequest struct {
	SiteAddress   string       `json:"site_address"`
	Date          time.Time    `json:"date"`
	Personnel     []string     `json:"personnel"`
	Departure     string       `json:"departure"`
	Arrival       string       `json:"arrival"`
	End           string       `json:"end"`
	BreakTime     float64      `json:"break_time"`
	TotalHours    float64      `json:"total_hours"`
	WaterConsumed *float64     `json:"water_consumed,omitempty"`
	Tasks         string       `json:"tasks"`
	Notes         string       `json:"notes"`
	HourlyRate    *float64     `json:"hourly_rate,omitempty"`
	Invoiced      bool         `json:"invoiced"`
	SignedByName  string       `json:"signed_by_name,omitempty"`
	Consumables   []Consumable `json:"consumables,omitempty"`
}
