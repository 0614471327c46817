package mocks

import "github.com/you/hotelauthsvc/domain"

// MockMailer implements domain.Mailer for testing
type MockMailer struct {
	EnabledFunc         func() bool
	SendCredentialsFunc func(to, orgName, loginID, password string) error
}

// NewMockMailer creates a new MockMailer with default behaviors
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Enabled reports whether mail delivery is configured
func (m *MockMailer) Enabled() bool {
	if m.EnabledFunc != nil {
		return m.EnabledFunc()
	}
	return true
}

// SendCredentials delivers a credentials email
func (m *MockMailer) SendCredentials(to, orgName, loginID, password string) error {
	if m.SendCredentialsFunc != nil {
		return m.SendCredentialsFunc(to, orgName, loginID, password)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.Mailer = (*MockMailer)(nil)
