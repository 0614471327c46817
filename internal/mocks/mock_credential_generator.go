package mocks

import "github.com/you/hotelauthsvc/domain"

// MockCredentialGenerator implements domain.CredentialGenerator for testing
type MockCredentialGenerator struct {
	PasswordFunc func() (string, error)
	OrgIDFunc    func() (string, error)
	LoginIDFunc  func() (string, error)
}

// NewMockCredentialGenerator creates a new MockCredentialGenerator with default behaviors
func NewMockCredentialGenerator() *MockCredentialGenerator {
	return &MockCredentialGenerator{}
}

// Password returns a generated password
func (m *MockCredentialGenerator) Password() (string, error) {
	if m.PasswordFunc != nil {
		return m.PasswordFunc()
	}
	return "Xk7#mQw2$nRt9Bvz", nil
}

// OrgID returns a generated tenant identifier
func (m *MockCredentialGenerator) OrgID() (string, error) {
	if m.OrgIDFunc != nil {
		return m.OrgIDFunc()
	}
	return "ORG-417", nil
}

// LoginID returns a generated corporate login identifier
func (m *MockCredentialGenerator) LoginID() (string, error) {
	if m.LoginIDFunc != nil {
		return m.LoginIDFunc()
	}
	return "corp-x7k2m9", nil
}

// Compile-time interface compliance verification
var _ domain.CredentialGenerator = (*MockCredentialGenerator)(nil)
