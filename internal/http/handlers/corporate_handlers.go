package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/you/hotelauthsvc/domain"
)

// CorporateHandlers handles tenant-facing authentication HTTP requests
type CorporateHandlers struct {
	corpSvc domain.CorporateService
	log     *logrus.Entry
}

// NewCorporateHandlers creates new corporate handlers
func NewCorporateHandlers(corpSvc domain.CorporateService, log *logrus.Logger) *CorporateHandlers {
	return &CorporateHandlers{
		corpSvc: corpSvc,
		log:     log.WithField("component", "corporate_handlers"),
	}
}

// CorporateLoginRequest represents a tenant login request
type CorporateLoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdateRequest represents a tenant profile update
type ProfileUpdateRequest struct {
	Name           string `json:"name,omitempty"`
	TaxID          string `json:"tax_id,omitempty"`
	CreditTermDays int    `json:"credit_term_days,omitempty"`
	ContactEmail   string `json:"contact_email,omitempty" binding:"omitempty,email"`
}

// SetPasswordRequest represents a tenant password rotation
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=12"`
}

// Login handles tenant login
func (h *CorporateHandlers) Login(c *gin.Context) {
	var req CorporateLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.corpSvc.Login(c.Request.Context(), req.LoginID, req.Password)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case domain.ErrOrganizationInactive:
			c.JSON(http.StatusForbidden, gin.H{"error": "Organization is not active"})
		default:
			h.log.WithError(err).Error("corporate login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token":  result.AccessToken,
			"refresh_token": result.RefreshToken,
			"token_type":    "Bearer",
			"expires_in":    result.ExpiresIn,
			"organization": gin.H{
				"org_id":   result.Organization.OrgID,
				"name":     result.Organization.Name,
				"login_id": result.Organization.LoginID,
			},
		},
	})
}

// Me handles fetching the tenant profile (requires corporate token)
func (h *CorporateHandlers) Me(c *gin.Context) {
	orgID, ok := contextAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	org, err := h.corpSvc.Profile(c.Request.Context(), orgID)
	if err != nil {
		if err == domain.ErrOrganizationNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
			return
		}
		h.log.WithError(err).Error("corporate profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": organizationView(org)})
}

// UpdateProfile handles tenant profile updates (requires corporate token)
func (h *CorporateHandlers) UpdateProfile(c *gin.Context) {
	orgID, ok := contextAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := h.corpSvc.UpdateProfile(c.Request.Context(), orgID, domain.OrganizationInput{
		Name:           req.Name,
		TaxID:          req.TaxID,
		CreditTermDays: req.CreditTermDays,
		ContactEmail:   req.ContactEmail,
	})
	if err != nil {
		switch err {
		case domain.ErrOrganizationNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		case domain.ErrDuplicateContactEmail:
			c.JSON(http.StatusConflict, gin.H{"error": "Contact email already registered"})
		default:
			h.log.WithError(err).Error("corporate profile update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": organizationView(org)})
}

// SetPassword handles tenant password rotation (requires corporate token)
func (h *CorporateHandlers) SetPassword(c *gin.Context) {
	orgID, ok := contextAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.corpSvc.SetPassword(c.Request.Context(), orgID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case domain.ErrOrganizationNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		case domain.ErrPasswordTooLong:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password too long"})
		default:
			h.log.WithError(err).Error("corporate password rotation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Password updated"}})
}

// organizationView shapes an organization for responses; the password hash
// never leaves the service.
func organizationView(org *domain.Organization) gin.H {
	return gin.H{
		"org_id":           org.OrgID,
		"name":             org.Name,
		"tax_id":           org.TaxID,
		"credit_term_days": org.CreditTermDays,
		"status":           org.Status,
		"contact_email":    org.ContactEmail,
		"login_id":         org.LoginID,
		"created_at":       org.CreatedAt,
		"updated_at":       org.UpdatedAt,
	}
}
