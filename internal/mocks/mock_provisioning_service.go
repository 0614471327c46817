package mocks

import (
	"context"

	"github.com/you/hotelauthsvc/domain"
)

// MockProvisioningService implements domain.ProvisioningService for testing
type MockProvisioningService struct {
	ProvisionFunc       func(ctx context.Context, input domain.OrganizationInput) (*domain.Organization, *domain.ProvisionedCredentials, error)
	ListFunc            func(ctx context.Context) ([]*domain.Organization, error)
	SendCredentialsFunc func(ctx context.Context, orgID string) error
}

// NewMockProvisioningService creates a new MockProvisioningService with default behaviors
func NewMockProvisioningService() *MockProvisioningService {
	return &MockProvisioningService{}
}

func defaultOrganization() *domain.Organization {
	return &domain.Organization{
		ID:             1,
		OrgID:          "ORG-417",
		Name:           "Skyline Hotels Ltd",
		TaxID:          "TAX-99812",
		CreditTermDays: 30,
		Status:         domain.StatusActive,
		ContactEmail:   "billing@skyline.example",
		LoginID:        "corp-x7k2m9",
		PasswordHash:   "hashed_Xk7#mQw2$nRt9Bvz",
	}
}

// Provision onboards a new organization
func (m *MockProvisioningService) Provision(ctx context.Context, input domain.OrganizationInput) (*domain.Organization, *domain.ProvisionedCredentials, error) {
	if m.ProvisionFunc != nil {
		return m.ProvisionFunc(ctx, input)
	}
	return defaultOrganization(), &domain.ProvisionedCredentials{LoginID: "corp-x7k2m9", Password: "Xk7#mQw2$nRt9Bvz"}, nil
}

// List returns all organizations
func (m *MockProvisioningService) List(ctx context.Context) ([]*domain.Organization, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*domain.Organization{defaultOrganization()}, nil
}

// SendCredentials rotates and delivers credentials for an organization
func (m *MockProvisioningService) SendCredentials(ctx context.Context, orgID string) error {
	if m.SendCredentialsFunc != nil {
		return m.SendCredentialsFunc(ctx, orgID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.ProvisioningService = (*MockProvisioningService)(nil)
