package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/you/hotelauthsvc/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	accountRepo domain.AccountRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	refreshTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo domain.AccountRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	refreshTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		refreshTTL:  refreshTTL,
	}
}

// Register implements domain.AuthService. Admin cannot be self-assigned
// through registration.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, role string) (*domain.AuthResult, error) {
	email = domain.NormalizeEmail(email)

	if role == "" {
		role = domain.RoleFinance
	}
	if !domain.ValidRole(role) || role == domain.RoleAdmin {
		return nil, domain.ErrRoleNotAllowed
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		if err == domain.ErrPasswordTooLong {
			return nil, err
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if err == domain.ErrAccountAlreadyExists {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.startSession(ctx, account)
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	account, err := s.accountRepo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, domain.ErrAccountInactive
	}

	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.startSession(ctx, account)
}

// Refresh implements domain.AuthService
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Scope != domain.ScopePortal {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Subject != claims.Subject || session.Scope != claims.Scope {
		return nil, domain.ErrTokenInvalid
	}

	account, err := s.accountRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	if !account.IsActive {
		return nil, domain.ErrAccountInactive
	}

	accessToken, err := s.tokenSvc.IssueAccessToken(account.ID, account.Role, domain.ScopePortal, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &domain.AuthResult{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    s.tokenSvc.AccessTTLSeconds(),
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// Profile implements domain.AuthService
func (s *AuthServiceImpl) Profile(ctx context.Context, accountID uint) (*domain.Account, error) {
	return s.accountRepo.FindByID(ctx, accountID)
}

// SetPassword implements domain.AuthService
func (s *AuthServiceImpl) SetPassword(ctx context.Context, accountID uint, current, next string) error {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(account.PasswordHash, current) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.passwordSvc.Hash(next)
	if err != nil {
		if err == domain.ErrPasswordTooLong {
			return err
		}
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account.PasswordHash = hash
	return s.accountRepo.Update(ctx, account)
}

func (s *AuthServiceImpl) startSession(ctx context.Context, account *domain.Account) (*domain.AuthResult, error) {
	session := &domain.Session{
		ID:        uuid.NewString(),
		Subject:   account.ID,
		Scope:     domain.ScopePortal,
		ExpiresAt: time.Now().Add(s.refreshTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.IssueAccessToken(account.ID, account.Role, domain.ScopePortal, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.IssueRefreshToken(account.ID, account.Role, domain.ScopePortal, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &domain.AuthResult{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    s.tokenSvc.AccessTTLSeconds(),
	}, nil
}
