package domain

import (
	"strings"
	"time"
)

// Roles carried by staff accounts and tokens.
const (
	RoleAdmin     = "admin"
	RoleCorporate = "corporate"
	RoleFinance   = "finance"
)

// Token scopes. Portal tokens belong to staff accounts, corporate tokens
// to organization logins.
const (
	ScopePortal    = "portal"
	ScopeCorporate = "corporate"
)

// Organization statuses.
const (
	StatusActive   = "active"
	StatusOnHold   = "on-hold"
	StatusInactive = "inactive"
)

// Account represents a staff principal able to authenticate against the portal
type Account struct {
	ID           uint
	Email        string
	PasswordHash string `gorm:"column:password"`
	Role         string
	OrgID        *uint
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Organization is a billing tenant with its own generated corporate login.
// The password hash belongs to the corporate login, not to any staff account.
type Organization struct {
	ID             uint
	OrgID          string
	Name           string
	TaxID          string
	CreditTermDays int
	Status         string
	ContactEmail   string
	LoginID        string
	PasswordHash   string `gorm:"column:password"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrganizationInput carries the caller-supplied fields of a provisioning
// or profile-update request.
type OrganizationInput struct {
	Name           string
	ContactEmail   string
	TaxID          string
	CreditTermDays int
	Status         string
}

// ProvisionedCredentials is the one-time payload returned by provisioning.
// The plaintext password exists only in this value and is never persisted.
type ProvisionedCredentials struct {
	LoginID  string
	Password string
}

// AuthResult represents a staff authentication outcome
type AuthResult struct {
	Account      *Account
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// CorporateAuthResult represents a tenant authentication outcome
type CorporateAuthResult struct {
	Organization *Organization
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// Session backs a refresh token; deleting it revokes the refresh path
type Session struct {
	ID        string
	Subject   uint
	Scope     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NormalizeEmail lowercases and trims an email before uniqueness checks
// and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCorporate, RoleFinance:
		return true
	}
	return false
}

// ValidStatus reports whether status is a known organization status.
func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusOnHold, StatusInactive:
		return true
	}
	return false
}
