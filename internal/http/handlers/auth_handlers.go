package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/you/hotelauthsvc/domain"
	"github.com/you/hotelauthsvc/internal/http/middleware"
)

// AuthHandlers handles staff authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
	log     *logrus.Entry
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, log *logrus.Logger) *AuthHandlers {
	return &AuthHandlers{
		authSvc: authSvc,
		log:     log.WithField("component", "auth_handlers"),
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register handles staff account registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		switch err {
		case domain.ErrAccountAlreadyExists:
			c.JSON(http.StatusConflict, gin.H{"error": "Account already exists"})
		case domain.ErrRoleNotAllowed:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role not allowed"})
		case domain.ErrPasswordTooLong:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password too long"})
		default:
			h.log.WithError(err).Error("registration failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register account"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": tokenResponse(result)})
}

// Login handles staff login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case domain.ErrAccountInactive:
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
		default:
			h.log.WithError(err).Error("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tokenResponse(result)})
}

// Refresh handles access-token refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case domain.ErrTokenInvalid, domain.ErrSessionNotFound, domain.ErrSessionExpired,
			domain.ErrAccountNotFound, domain.ErrAccountInactive:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			h.log.WithError(err).Error("token refresh failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token": result.AccessToken,
			"token_type":   "Bearer",
			"expires_in":   result.ExpiresIn,
		},
	})
}

// Logout handles staff logout (requires authentication). The access token
// stays valid until its expiry; the refresh session is revoked here.
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID, exists := c.Get(middleware.CtxSessionID)
	if !exists {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Logged out"}})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), sessionID.(string)); err != nil {
		h.log.WithError(err).Error("logout failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Logged out"}})
}

// Me handles getting the staff profile (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	accountID, ok := contextAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.authSvc.Profile(c.Request.Context(), accountID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		h.log.WithError(err).Error("profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":         account.ID,
			"email":      account.Email,
			"role":       account.Role,
			"is_active":  account.IsActive,
			"created_at": account.CreatedAt,
			"updated_at": account.UpdatedAt,
		},
	})
}

// SetPassword handles staff password rotation (requires authentication)
func (h *AuthHandlers) SetPassword(c *gin.Context) {
	accountID, ok := contextAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.SetPassword(c.Request.Context(), accountID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case domain.ErrAccountNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case domain.ErrPasswordTooLong:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password too long"})
		default:
			h.log.WithError(err).Error("staff password rotation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Password updated"}})
}

func tokenResponse(result *domain.AuthResult) gin.H {
	return gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    result.ExpiresIn,
		"user": gin.H{
			"id":    result.Account.ID,
			"email": result.Account.Email,
			"role":  result.Account.Role,
		},
	}
}

// contextAccountID resolves the numeric subject placed in the gin context by
// the auth middleware.
func contextAccountID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get(middleware.CtxAccountID)
	if !exists {
		return 0, false
	}
	id, err := strconv.ParseUint(raw.(string), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
