package mocks

import (
	"fmt"

	"github.com/you/hotelauthsvc/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueAccessTokenFunc   func(subject uint, role, scope, sessionID string) (string, error)
	IssueRefreshTokenFunc  func(subject uint, role, scope, sessionID string) (string, error)
	VerifyAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	VerifyRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
	AccessTTLSecondsFunc   func() int64
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// IssueAccessToken mints a fake access token
func (m *MockTokenService) IssueAccessToken(subject uint, role, scope, sessionID string) (string, error) {
	if m.IssueAccessTokenFunc != nil {
		return m.IssueAccessTokenFunc(subject, role, scope, sessionID)
	}
	return fmt.Sprintf("access_%d_%s_%s", subject, role, scope), nil
}

// IssueRefreshToken mints a fake refresh token
func (m *MockTokenService) IssueRefreshToken(subject uint, role, scope, sessionID string) (string, error) {
	if m.IssueRefreshTokenFunc != nil {
		return m.IssueRefreshTokenFunc(subject, role, scope, sessionID)
	}
	return fmt.Sprintf("refresh_%d_%s_%s", subject, role, scope), nil
}

// VerifyAccessToken validates a fake access token
func (m *MockTokenService) VerifyAccessToken(token string) (*domain.TokenClaims, error) {
	if m.VerifyAccessTokenFunc != nil {
		return m.VerifyAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// VerifyRefreshToken validates a fake refresh token
func (m *MockTokenService) VerifyRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.VerifyRefreshTokenFunc != nil {
		return m.VerifyRefreshTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// AccessTTLSeconds returns the fake access TTL
func (m *MockTokenService) AccessTTLSeconds() int64 {
	if m.AccessTTLSecondsFunc != nil {
		return m.AccessTTLSecondsFunc()
	}
	return 900
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
