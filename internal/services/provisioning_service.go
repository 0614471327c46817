package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/you/hotelauthsvc/domain"
)

// maxProvisionAttempts bounds the identifier-collision retry loop.
const maxProvisionAttempts = 8

// ProvisioningServiceImpl implements domain.ProvisioningService
type ProvisioningServiceImpl struct {
	orgRepo     domain.OrganizationRepository
	passwordSvc domain.PasswordService
	generator   domain.CredentialGenerator
	mailer      domain.Mailer
	log         *logrus.Entry
}

// NewProvisioningService creates a new provisioning service
func NewProvisioningService(
	orgRepo domain.OrganizationRepository,
	passwordSvc domain.PasswordService,
	generator domain.CredentialGenerator,
	mailer domain.Mailer,
	log *logrus.Logger,
) domain.ProvisioningService {
	return &ProvisioningServiceImpl{
		orgRepo:     orgRepo,
		passwordSvc: passwordSvc,
		generator:   generator,
		mailer:      mailer,
		log:         log.WithField("component", "provisioning"),
	}
}

// Provision implements domain.ProvisioningService. Each attempt generates a
// fresh identifier pair and password. A contact-email conflict aborts
// immediately; an identifier collision retries with new identifiers; any
// other storage error propagates. The returned plaintext password is not
// retained anywhere.
func (s *ProvisioningServiceImpl) Provision(ctx context.Context, input domain.OrganizationInput) (*domain.Organization, *domain.ProvisionedCredentials, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusActive
	}
	if !domain.ValidStatus(status) {
		return nil, nil, domain.ErrInvalidStatus
	}

	contactEmail := domain.NormalizeEmail(input.ContactEmail)

	for attempt := 0; attempt < maxProvisionAttempts; attempt++ {
		orgID, err := s.generator.OrgID()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate organization id: %w", err)
		}
		loginID, err := s.generator.LoginID()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate login id: %w", err)
		}
		password, err := s.generator.Password()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate password: %w", err)
		}
		hash, err := s.passwordSvc.Hash(password)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to hash password: %w", err)
		}

		org := &domain.Organization{
			OrgID:          orgID,
			Name:           input.Name,
			TaxID:          input.TaxID,
			CreditTermDays: input.CreditTermDays,
			Status:         status,
			ContactEmail:   contactEmail,
			LoginID:        loginID,
			PasswordHash:   hash,
		}

		err = s.orgRepo.Create(ctx, org)
		switch err {
		case nil:
			s.log.WithFields(logrus.Fields{"org_id": orgID, "attempts": attempt + 1}).Info("organization provisioned")
			return org, &domain.ProvisionedCredentials{LoginID: loginID, Password: password}, nil
		case domain.ErrDuplicateContactEmail:
			return nil, nil, err
		case domain.ErrDuplicateIdentifier:
			continue
		default:
			return nil, nil, fmt.Errorf("failed to store organization: %w", err)
		}
	}

	s.log.WithField("attempts", maxProvisionAttempts).Warn("identifier generation exhausted")
	return nil, nil, domain.ErrProvisioningUnavailable
}

// List implements domain.ProvisioningService
func (s *ProvisioningServiceImpl) List(ctx context.Context) ([]*domain.Organization, error) {
	return s.orgRepo.List(ctx)
}

// SendCredentials implements domain.ProvisioningService. The plaintext of the
// original password was never stored, so delivery always rotates: a new
// password is generated, hashed, persisted and mailed in one pass.
func (s *ProvisioningServiceImpl) SendCredentials(ctx context.Context, orgID string) error {
	if !s.mailer.Enabled() {
		return domain.ErrMailerDisabled
	}

	org, err := s.orgRepo.FindByOrgID(ctx, orgID)
	if err != nil {
		return err
	}

	password, err := s.generator.Password()
	if err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.orgRepo.UpdatePassword(ctx, org.ID, hash); err != nil {
		return fmt.Errorf("failed to rotate password: %w", err)
	}

	if err := s.mailer.SendCredentials(org.ContactEmail, org.Name, org.LoginID, password); err != nil {
		return err
	}

	s.log.WithField("org_id", org.OrgID).Info("credentials delivered")
	return nil
}
