package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/you/hotelauthsvc/domain"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSessionRepositoryImpl_CreateAndFind(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess-abc",
		Subject:   42,
		Scope:     domain.ScopePortal,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.FindByID(ctx, "sess-abc")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.Subject != 42 || got.Scope != domain.ScopePortal {
		t.Errorf("unexpected session %+v", got)
	}
}

func TestSessionRepositoryImpl_NotFound(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)

	if _, err := repo.FindByID(context.Background(), "missing"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionRepositoryImpl_Expired(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess-old",
		Subject:   1,
		Scope:     domain.ScopePortal,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := repo.FindByID(ctx, "sess-old"); err != domain.ErrSessionExpired {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}

	// expired sessions are removed on read
	if _, err := repo.FindByID(ctx, "sess-old"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound after cleanup, got %v", err)
	}
}

func TestSessionRepositoryImpl_KeyExpiryCappedBySession(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess-short",
		Subject:   3,
		Scope:     domain.ScopePortal,
		ExpiresAt: time.Now().Add(2 * time.Minute),
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// The key TTL follows the session expiry, not the repository maximum.
	mr.FastForward(3 * time.Minute)
	if _, err := repo.FindByID(ctx, "sess-short"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound after key expiry, got %v", err)
	}
}

func TestSessionRepositoryImpl_Delete(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess-del",
		Subject:   7,
		Scope:     domain.ScopeCorporate,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Delete(ctx, "sess-del"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, "sess-del"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}

	// deleting an absent session is not an error
	if err := repo.Delete(ctx, "sess-del"); err != nil {
		t.Errorf("second delete failed: %v", err)
	}
}
