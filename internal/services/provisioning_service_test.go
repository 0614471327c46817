package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/you/hotelauthsvc/domain"
	"github.com/you/hotelauthsvc/internal/mocks"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func orgInput() domain.OrganizationInput {
	return domain.OrganizationInput{
		Name:           "Skyline Hotels Ltd",
		TaxID:          "TAX-99812",
		CreditTermDays: 30,
		ContactEmail:   " Billing@Skyline.Example ",
	}
}

func TestProvisioningServiceImpl_Provision(t *testing.T) {
	tests := []struct {
		name             string
		input            domain.OrganizationInput
		setupMocks       func(*mocks.MockOrganizationRepository, *mocks.MockCredentialGenerator)
		expectedError    error
		expectedAttempts int
	}{
		{
			name:             "success on first attempt",
			input:            orgInput(),
			setupMocks:       func(orgRepo *mocks.MockOrganizationRepository, gen *mocks.MockCredentialGenerator) {},
			expectedAttempts: 1,
		},
		{
			name:  "identifier collision retries with fresh identifiers",
			input: orgInput(),
			setupMocks: func(orgRepo *mocks.MockOrganizationRepository, gen *mocks.MockCredentialGenerator) {
				calls := 0
				orgRepo.CreateFunc = func(ctx context.Context, org *domain.Organization) error {
					calls++
					if calls < 3 {
						return domain.ErrDuplicateIdentifier
					}
					org.ID = 1
					return nil
				}
			},
			expectedAttempts: 3,
		},
		{
			name:  "contact email conflict aborts immediately",
			input: orgInput(),
			setupMocks: func(orgRepo *mocks.MockOrganizationRepository, gen *mocks.MockCredentialGenerator) {
				orgRepo.CreateFunc = func(ctx context.Context, org *domain.Organization) error {
					return domain.ErrDuplicateContactEmail
				}
			},
			expectedError:    domain.ErrDuplicateContactEmail,
			expectedAttempts: 1,
		},
		{
			name:  "exhausted after bounded retries",
			input: orgInput(),
			setupMocks: func(orgRepo *mocks.MockOrganizationRepository, gen *mocks.MockCredentialGenerator) {
				orgRepo.CreateFunc = func(ctx context.Context, org *domain.Organization) error {
					return domain.ErrDuplicateIdentifier
				}
			},
			expectedError:    domain.ErrProvisioningUnavailable,
			expectedAttempts: maxProvisionAttempts,
		},
		{
			name: "invalid status rejected without touching storage",
			input: domain.OrganizationInput{
				Name:         "Skyline Hotels Ltd",
				ContactEmail: "billing@skyline.example",
				Status:       "suspended",
			},
			setupMocks:       func(orgRepo *mocks.MockOrganizationRepository, gen *mocks.MockCredentialGenerator) {},
			expectedError:    domain.ErrInvalidStatus,
			expectedAttempts: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orgRepo := mocks.NewMockOrganizationRepository()
			gen := mocks.NewMockCredentialGenerator()

			attempts := 0
			gen.OrgIDFunc = func() (string, error) {
				attempts++
				return fmt.Sprintf("ORG-%d", 100+attempts), nil
			}
			tt.setupMocks(orgRepo, gen)

			svc := NewProvisioningService(orgRepo, mocks.NewMockPasswordService(), gen, mocks.NewMockMailer(), testLogger())
			org, creds, err := svc.Provision(context.Background(), tt.input)

			if attempts != tt.expectedAttempts {
				t.Errorf("expected %d generation attempts, got %d", tt.expectedAttempts, attempts)
			}
			if tt.expectedError != nil {
				if err != tt.expectedError {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				if org != nil || creds != nil {
					t.Error("no organization or credentials should be returned on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if org.ContactEmail != "billing@skyline.example" {
				t.Errorf("contact email not normalized, got %q", org.ContactEmail)
			}
			if org.Status != domain.StatusActive {
				t.Errorf("expected default active status, got %q", org.Status)
			}
			if creds.LoginID != org.LoginID {
				t.Errorf("credentials login id %q does not match organization %q", creds.LoginID, org.LoginID)
			}
			if creds.Password == "" {
				t.Error("expected a one-time password")
			}
			if org.PasswordHash == creds.Password {
				t.Error("stored hash must not equal the plaintext password")
			}
		})
	}
}

func TestProvisioningServiceImpl_Provision_OtherStorageError(t *testing.T) {
	orgRepo := mocks.NewMockOrganizationRepository()
	orgRepo.CreateFunc = func(ctx context.Context, org *domain.Organization) error {
		return errors.New("connection reset")
	}

	svc := NewProvisioningService(orgRepo, mocks.NewMockPasswordService(), mocks.NewMockCredentialGenerator(), mocks.NewMockMailer(), testLogger())
	_, _, err := svc.Provision(context.Background(), orgInput())
	if err == nil || !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}

func TestProvisioningServiceImpl_SendCredentials(t *testing.T) {
	tests := []struct {
		name          string
		orgID         string
		setupMocks    func(*mocks.MockOrganizationRepository, *mocks.MockMailer)
		expectedError error
	}{
		{
			name:  "rotates password and mails the new one",
			orgID: "ORG-417",
			setupMocks: func(orgRepo *mocks.MockOrganizationRepository, mailer *mocks.MockMailer) {
				orgRepo.FindByOrgIDFunc = func(ctx context.Context, orgID string) (*domain.Organization, error) {
					return activeOrganization(), nil
				}
			},
		},
		{
			name:  "mailer disabled",
			orgID: "ORG-417",
			setupMocks: func(orgRepo *mocks.MockOrganizationRepository, mailer *mocks.MockMailer) {
				mailer.EnabledFunc = func() bool { return false }
			},
			expectedError: domain.ErrMailerDisabled,
		},
		{
			name:          "unknown organization",
			orgID:         "ORG-000",
			setupMocks:    func(orgRepo *mocks.MockOrganizationRepository, mailer *mocks.MockMailer) {},
			expectedError: domain.ErrOrganizationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orgRepo := mocks.NewMockOrganizationRepository()
			mailer := mocks.NewMockMailer()
			tt.setupMocks(orgRepo, mailer)

			rotatedHash := ""
			orgRepo.UpdatePasswordFunc = func(ctx context.Context, id uint, passwordHash string) error {
				rotatedHash = passwordHash
				return nil
			}
			mailedPassword := ""
			mailedTo := ""
			mailer.SendCredentialsFunc = func(to, orgName, loginID, password string) error {
				mailedTo = to
				mailedPassword = password
				return nil
			}

			svc := NewProvisioningService(orgRepo, mocks.NewMockPasswordService(), mocks.NewMockCredentialGenerator(), mailer, testLogger())
			err := svc.SendCredentials(context.Background(), tt.orgID)

			if tt.expectedError != nil {
				if err != tt.expectedError {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				if rotatedHash != "" || mailedPassword != "" {
					t.Error("nothing should be rotated or mailed on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mailedTo != "billing@skyline.example" {
				t.Errorf("credentials mailed to %q", mailedTo)
			}
			if rotatedHash != "hashed_"+mailedPassword {
				t.Error("stored hash must match the mailed password")
			}
		})
	}
}

func TestProvisioningServiceImpl_List(t *testing.T) {
	orgRepo := mocks.NewMockOrganizationRepository()
	orgRepo.ListFunc = func(ctx context.Context) ([]*domain.Organization, error) {
		return []*domain.Organization{activeOrganization()}, nil
	}

	svc := NewProvisioningService(orgRepo, mocks.NewMockPasswordService(), mocks.NewMockCredentialGenerator(), mocks.NewMockMailer(), testLogger())
	orgs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orgs) != 1 || orgs[0].OrgID != "ORG-417" {
		t.Fatalf("unexpected listing: %+v", orgs)
	}
}
