package models

import "time"

// ClientAccount is a customer with read-only portal access. Login uses an
// access code handed over by the office, not a password.
type ClientAccount struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	AccessCode string    `json:"-"` // Never expose in JSON
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PortalLoginRequest represents the portal login body (email + access code)
type PortalLoginRequest struct {
	Email      string `json:"email"`
	AccessCode string `json:"access_code"`
}

// CompanyInfo is the letterhead block printed on PDF reports
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	SIRET   string `json:"siret"`
}
