package domain

import "errors"

// Authentication errors
var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountAlreadyExists = errors.New("account already exists")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrRoleNotAllowed       = errors.New("role not allowed")
)

// Password errors
var (
	ErrPasswordTooLong = errors.New("password exceeds maximum length")
)

// Token errors. Verification failures collapse into ErrTokenInvalid so the
// caller cannot distinguish which check rejected the token.
var (
	ErrTokenInvalid = errors.New("invalid token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Organization errors
var (
	ErrOrganizationNotFound    = errors.New("organization not found")
	ErrOrganizationInactive    = errors.New("organization is not active")
	ErrDuplicateContactEmail   = errors.New("organization contact email already registered")
	ErrDuplicateIdentifier     = errors.New("generated identifier already taken")
	ErrProvisioningUnavailable = errors.New("provisioning temporarily unavailable")
	ErrInvalidStatus           = errors.New("invalid organization status")
)

// Notification errors
var (
	ErrMailerDisabled = errors.New("mail delivery is not configured")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("insufficient permissions")
)
