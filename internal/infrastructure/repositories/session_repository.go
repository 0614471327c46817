package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/hotelauthsvc/domain"
)

// sessionKeyPrefix namespaces refresh sessions in Redis.
const sessionKeyPrefix = "auth:refresh:"

// SessionRepositoryImpl implements domain.SessionRepository on Redis. Each
// session is a hash whose key TTL is the shorter of the configured maximum
// and the session's own expiry, so Redis reclaims revocable state on its own.
// Deleting a session revokes every refresh token minted against it.
type SessionRepositoryImpl struct {
	client *redis.Client
	maxTTL time.Duration
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client, maxTTL time.Duration) domain.SessionRepository {
	return &SessionRepositoryImpl{client: client, maxTTL: maxTTL}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	ttl := r.maxTTL
	if until := time.Until(session.ExpiresAt); until > 0 && until < ttl {
		ttl = until
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, sessionKey(session.ID),
		"subject", uint64(session.Subject),
		"scope", session.Scope,
		"expires_at", session.ExpiresAt.Unix(),
		"created_at", session.CreatedAt.Unix(),
	)
	pipe.Expire(ctx, sessionKey(session.ID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// FindByID implements domain.SessionRepository. A session past its recorded
// expiry is treated as gone even if the key TTL has not fired yet.
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	fields, err := r.client.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	session, err := sessionFromFields(sessionID, fields)
	if err != nil {
		return nil, err
	}

	if session.ExpiresAt.Before(time.Now()) {
		r.client.Del(ctx, sessionKey(sessionID))
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

// Delete implements domain.SessionRepository
func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionFromFields(sessionID string, fields map[string]string) (*domain.Session, error) {
	subject, err := strconv.ParseUint(fields["subject"], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", sessionID, err)
	}
	expiresAt, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", sessionID, err)
	}
	createdAt, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", sessionID, err)
	}

	return &domain.Session{
		ID:        sessionID,
		Subject:   uint(subject),
		Scope:     fields["scope"],
		ExpiresAt: time.Unix(expiresAt, 0),
		CreatedAt: time.Unix(createdAt, 0),
	}, nil
}
