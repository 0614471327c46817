package domain

import "context"

// AccountRepository defines staff account data access operations
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id uint) (*Account, error)
	Update(ctx context.Context, account *Account) error
}

// OrganizationRepository defines tenant data access operations
type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	FindByOrgID(ctx context.Context, orgID string) (*Organization, error)
	FindByLoginID(ctx context.Context, loginID string) (*Organization, error)
	FindByID(ctx context.Context, id uint) (*Organization, error)
	List(ctx context.Context) ([]*Organization, error)
	Update(ctx context.Context, org *Organization) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// SessionRepository defines refresh-session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token issuance and verification
type TokenService interface {
	IssueAccessToken(subject uint, role, scope, sessionID string) (string, error)
	IssueRefreshToken(subject uint, role, scope, sessionID string) (string, error)
	VerifyAccessToken(token string) (*TokenClaims, error)
	VerifyRefreshToken(token string) (*TokenClaims, error)
	AccessTTLSeconds() int64
}

// CredentialGenerator produces machine-generated tenant credentials and
// identifiers.
type CredentialGenerator interface {
	Password() (string, error)
	OrgID() (string, error)
	LoginID() (string, error)
}

// Mailer defines outbound credential delivery
type Mailer interface {
	Enabled() bool
	SendCredentials(to, orgName, loginID, password string) error
}

// AuthService defines staff authentication business logic
type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	Profile(ctx context.Context, accountID uint) (*Account, error)
	SetPassword(ctx context.Context, accountID uint, current, next string) error
}

// CorporateService defines tenant-facing authentication business logic
type CorporateService interface {
	Login(ctx context.Context, loginID, password string) (*CorporateAuthResult, error)
	Profile(ctx context.Context, orgID uint) (*Organization, error)
	UpdateProfile(ctx context.Context, orgID uint, input OrganizationInput) (*Organization, error)
	SetPassword(ctx context.Context, orgID uint, current, next string) error
}

// ProvisioningService defines tenant onboarding business logic
type ProvisioningService interface {
	Provision(ctx context.Context, input OrganizationInput) (*Organization, *ProvisionedCredentials, error)
	List(ctx context.Context) ([]*Organization, error)
	SendCredentials(ctx context.Context, orgID string) error
}

// TokenClaims represents verified JWT token claims
type TokenClaims struct {
	Subject   uint   `json:"sub"`
	Role      string `json:"role"`
	Scope     string `json:"scope"`
	SessionID string `json:"sid,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer is the subset of the Casbin enforcer the service needs
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
