package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/hotelauthsvc/domain"
)

// JWTServiceImpl implements domain.TokenService. Access and refresh tokens
// are signed with distinct secrets so the two can be rotated independently.
type JWTServiceImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	audience      string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(accessSecret, refreshSecret, issuer, audience string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		audience:      audience,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// IssueAccessToken implements domain.TokenService
func (j *JWTServiceImpl) IssueAccessToken(subject uint, role, scope, sessionID string) (string, error) {
	return j.issue(subject, role, scope, sessionID, j.accessSecret, j.accessTTL)
}

// IssueRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) IssueRefreshToken(subject uint, role, scope, sessionID string) (string, error) {
	return j.issue(subject, role, scope, sessionID, j.refreshSecret, j.refreshTTL)
}

func (j *JWTServiceImpl) issue(subject uint, role, scope, sessionID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"role":  role,
		"scope": scope,
		"sid":   sessionID,
		"iss":   j.issuer,
		"aud":   j.audience,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
		"jti":   j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccessToken implements domain.TokenService
func (j *JWTServiceImpl) VerifyAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.verify(tokenString, j.accessSecret)
}

// VerifyRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) VerifyRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.verify(tokenString, j.refreshSecret)
}

// AccessTTLSeconds implements domain.TokenService
func (j *JWTServiceImpl) AccessTTLSeconds() int64 {
	return int64(j.accessTTL.Seconds())
}

// verify validates signature, issuer, audience and expiry. Every failure
// collapses into domain.ErrTokenInvalid so the result does not reveal which
// check rejected the token.
func (j *JWTServiceImpl) verify(tokenString string, secret []byte) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	iss, err := claims.GetIssuer()
	if err != nil || iss != j.issuer {
		return nil, domain.ErrTokenInvalid
	}

	aud, err := claims.GetAudience()
	if err != nil || len(aud) != 1 || aud[0] != j.audience {
		return nil, domain.ErrTokenInvalid
	}

	subject, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	scope, ok := claims["scope"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenInvalid
	}

	tokenClaims := &domain.TokenClaims{
		Subject:   uint(subject),
		Role:      role,
		Scope:     scope,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}
	if sessionID, ok := claims["sid"].(string); ok {
		tokenClaims.SessionID = sessionID
	}

	return tokenClaims, nil
}
