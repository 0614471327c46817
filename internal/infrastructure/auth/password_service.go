package auth

import (
	"context"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/you/hotelauthsvc/domain"
	"github.com/you/hotelauthsvc/internal/config"
)

// maxPasswordLength is the bcrypt input limit; longer input is rejected
// up front instead of being silently truncated.
const maxPasswordLength = 72

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
	sem  *semaphore.Weighted
}

// NewPasswordService creates a bcrypt-backed password service. The cost
// factor is clamped into the allowed range; hashing is gated by a weighted
// semaphore sized to the CPU count so a burst of slow hashes cannot starve
// unrelated request handling.
func NewPasswordService(cost int) domain.PasswordService {
	if cost < config.MinBcryptCost {
		cost = config.MinBcryptCost
	}
	if cost > config.MaxBcryptCost {
		cost = config.MaxBcryptCost
	}
	return &PasswordServiceImpl{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	if len(password) > maxPasswordLength {
		return "", domain.ErrPasswordTooLong
	}
	if err := p.sem.Acquire(context.Background(), 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService. Malformed digests verify as
// false, never as an error.
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	if err := p.sem.Acquire(context.Background(), 1); err != nil {
		return false
	}
	defer p.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
