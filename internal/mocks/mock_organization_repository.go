package mocks

import (
	"context"

	"github.com/you/hotelauthsvc/domain"
)

// MockOrganizationRepository implements domain.OrganizationRepository for testing
type MockOrganizationRepository struct {
	CreateFunc         func(ctx context.Context, org *domain.Organization) error
	FindByOrgIDFunc    func(ctx context.Context, orgID string) (*domain.Organization, error)
	FindByLoginIDFunc  func(ctx context.Context, loginID string) (*domain.Organization, error)
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.Organization, error)
	ListFunc           func(ctx context.Context) ([]*domain.Organization, error)
	UpdateFunc         func(ctx context.Context, org *domain.Organization) error
	UpdatePasswordFunc func(ctx context.Context, id uint, passwordHash string) error
}

// NewMockOrganizationRepository creates a new MockOrganizationRepository with default behaviors
func NewMockOrganizationRepository() *MockOrganizationRepository {
	return &MockOrganizationRepository{}
}

// Create stores a new organization
func (m *MockOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, org)
	}
	org.ID = 1
	return nil
}

// FindByOrgID finds an organization by its generated identifier
func (m *MockOrganizationRepository) FindByOrgID(ctx context.Context, orgID string) (*domain.Organization, error) {
	if m.FindByOrgIDFunc != nil {
		return m.FindByOrgIDFunc(ctx, orgID)
	}
	return nil, domain.ErrOrganizationNotFound
}

// FindByLoginID finds an organization by its corporate login identifier
func (m *MockOrganizationRepository) FindByLoginID(ctx context.Context, loginID string) (*domain.Organization, error) {
	if m.FindByLoginIDFunc != nil {
		return m.FindByLoginIDFunc(ctx, loginID)
	}
	return nil, domain.ErrOrganizationNotFound
}

// FindByID finds an organization by primary key
func (m *MockOrganizationRepository) FindByID(ctx context.Context, id uint) (*domain.Organization, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrOrganizationNotFound
}

// List returns all organizations
func (m *MockOrganizationRepository) List(ctx context.Context) ([]*domain.Organization, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// Update updates an existing organization
func (m *MockOrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, org)
	}
	return nil
}

// UpdatePassword replaces the stored corporate password hash
func (m *MockOrganizationRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OrganizationRepository = (*MockOrganizationRepository)(nil)
