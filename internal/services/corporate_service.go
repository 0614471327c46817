package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/you/hotelauthsvc/domain"
)

// CorporateServiceImpl implements domain.CorporateService
type CorporateServiceImpl struct {
	orgRepo     domain.OrganizationRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	refreshTTL  time.Duration
}

// NewCorporateService creates a new corporate service
func NewCorporateService(
	orgRepo domain.OrganizationRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	refreshTTL time.Duration,
) domain.CorporateService {
	return &CorporateServiceImpl{
		orgRepo:     orgRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		refreshTTL:  refreshTTL,
	}
}

// Login implements domain.CorporateService
func (s *CorporateServiceImpl) Login(ctx context.Context, loginID, password string) (*domain.CorporateAuthResult, error) {
	org, err := s.orgRepo.FindByLoginID(ctx, strings.ToLower(strings.TrimSpace(loginID)))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if org.Status != domain.StatusActive {
		return nil, domain.ErrOrganizationInactive
	}

	if !s.passwordSvc.Verify(org.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		Subject:   org.ID,
		Scope:     domain.ScopeCorporate,
		ExpiresAt: time.Now().Add(s.refreshTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.IssueAccessToken(org.ID, domain.RoleCorporate, domain.ScopeCorporate, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.IssueRefreshToken(org.ID, domain.RoleCorporate, domain.ScopeCorporate, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &domain.CorporateAuthResult{
		Organization: org,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    s.tokenSvc.AccessTTLSeconds(),
	}, nil
}

// Profile implements domain.CorporateService
func (s *CorporateServiceImpl) Profile(ctx context.Context, orgID uint) (*domain.Organization, error) {
	return s.orgRepo.FindByID(ctx, orgID)
}

// UpdateProfile implements domain.CorporateService. Status transitions are
// an administrative concern and are not accepted here.
func (s *CorporateServiceImpl) UpdateProfile(ctx context.Context, orgID uint, input domain.OrganizationInput) (*domain.Organization, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		org.Name = input.Name
	}
	if input.TaxID != "" {
		org.TaxID = input.TaxID
	}
	if input.CreditTermDays > 0 {
		org.CreditTermDays = input.CreditTermDays
	}
	if input.ContactEmail != "" {
		org.ContactEmail = domain.NormalizeEmail(input.ContactEmail)
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// SetPassword implements domain.CorporateService
func (s *CorporateServiceImpl) SetPassword(ctx context.Context, orgID uint, current, next string) error {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(org.PasswordHash, current) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.passwordSvc.Hash(next)
	if err != nil {
		if err == domain.ErrPasswordTooLong {
			return err
		}
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.orgRepo.UpdatePassword(ctx, org.ID, hash)
}
