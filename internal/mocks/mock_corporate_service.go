package mocks

import (
	"context"

	"github.com/you/hotelauthsvc/domain"
)

// MockCorporateService implements domain.CorporateService for testing
type MockCorporateService struct {
	LoginFunc         func(ctx context.Context, loginID, password string) (*domain.CorporateAuthResult, error)
	ProfileFunc       func(ctx context.Context, orgID uint) (*domain.Organization, error)
	UpdateProfileFunc func(ctx context.Context, orgID uint, input domain.OrganizationInput) (*domain.Organization, error)
	SetPasswordFunc   func(ctx context.Context, orgID uint, current, next string) error
}

// NewMockCorporateService creates a new MockCorporateService with default behaviors
func NewMockCorporateService() *MockCorporateService {
	return &MockCorporateService{}
}

// Login authenticates a tenant
func (m *MockCorporateService) Login(ctx context.Context, loginID, password string) (*domain.CorporateAuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, loginID, password)
	}
	return &domain.CorporateAuthResult{
		Organization: defaultOrganization(),
		AccessToken:  "corp-access-token",
		RefreshToken: "corp-refresh-token",
		SessionID:    "sess-corp-1",
		ExpiresIn:    900,
	}, nil
}

// Profile returns the organization for the given id
func (m *MockCorporateService) Profile(ctx context.Context, orgID uint) (*domain.Organization, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, orgID)
	}
	return defaultOrganization(), nil
}

// UpdateProfile applies tenant profile changes
func (m *MockCorporateService) UpdateProfile(ctx context.Context, orgID uint, input domain.OrganizationInput) (*domain.Organization, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, orgID, input)
	}
	return defaultOrganization(), nil
}

// SetPassword rotates the tenant password
func (m *MockCorporateService) SetPassword(ctx context.Context, orgID uint, current, next string) error {
	if m.SetPasswordFunc != nil {
		return m.SetPasswordFunc(ctx, orgID, current, next)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.CorporateService = (*MockCorporateService)(nil)
