package mocks

import (
	"context"

	"github.com/you/hotelauthsvc/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc    func(ctx context.Context, email, password, role string) (*domain.AuthResult, error)
	LoginFunc       func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshFunc     func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc      func(ctx context.Context, sessionID string) error
	ProfileFunc     func(ctx context.Context, accountID uint) (*domain.Account, error)
	SetPasswordFunc func(ctx context.Context, accountID uint, current, next string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func defaultAuthResult() *domain.AuthResult {
	return &domain.AuthResult{
		Account: &domain.Account{
			ID:       1,
			Email:    "alice@example.com",
			Role:     domain.RoleFinance,
			IsActive: true,
		},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		SessionID:    "sess-1",
		ExpiresIn:    900,
	}
}

// Register creates a staff account and starts a session
func (m *MockAuthService) Register(ctx context.Context, email, password, role string) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password, role)
	}
	return defaultAuthResult(), nil
}

// Login authenticates a staff account
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return defaultAuthResult(), nil
}

// Refresh exchanges a refresh token for a fresh access token
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return defaultAuthResult(), nil
}

// Logout revokes a refresh session
func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

// Profile returns the staff account for the given id
func (m *MockAuthService) Profile(ctx context.Context, accountID uint) (*domain.Account, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, accountID)
	}
	return defaultAuthResult().Account, nil
}

// SetPassword rotates the staff password
func (m *MockAuthService) SetPassword(ctx context.Context, accountID uint, current, next string) error {
	if m.SetPasswordFunc != nil {
		return m.SetPasswordFunc(ctx, accountID, current, next)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
