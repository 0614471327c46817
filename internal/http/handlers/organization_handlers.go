package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/you/hotelauthsvc/domain"
)

// OrganizationHandlers handles tenant provisioning HTTP requests
type OrganizationHandlers struct {
	provSvc domain.ProvisioningService
	log     *logrus.Entry
}

// NewOrganizationHandlers creates new organization handlers
func NewOrganizationHandlers(provSvc domain.ProvisioningService, log *logrus.Logger) *OrganizationHandlers {
	return &OrganizationHandlers{
		provSvc: provSvc,
		log:     log.WithField("component", "organization_handlers"),
	}
}

// ProvisionRequest represents a tenant provisioning request
type ProvisionRequest struct {
	Name           string `json:"name" binding:"required"`
	ContactEmail   string `json:"contact_email" binding:"required,email"`
	TaxID          string `json:"tax_id,omitempty"`
	CreditTermDays int    `json:"credit_term_days,omitempty" binding:"omitempty,min=0,max=365"`
	Status         string `json:"status,omitempty"`
}

// SendCredentialsRequest represents a credential delivery request
type SendCredentialsRequest struct {
	OrgID string `json:"org_id" binding:"required"`
}

// List handles listing organizations
func (h *OrganizationHandlers) List(c *gin.Context) {
	orgs, err := h.provSvc.List(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("organization list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list organizations"})
		return
	}

	views := make([]gin.H, 0, len(orgs))
	for _, org := range orgs {
		views = append(views, organizationView(org))
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

// Provision handles tenant creation. The response carries the one-time
// credentials payload; this is the only place the plaintext ever appears.
func (h *OrganizationHandlers) Provision(c *gin.Context) {
	var req ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, creds, err := h.provSvc.Provision(c.Request.Context(), domain.OrganizationInput{
		Name:           req.Name,
		ContactEmail:   req.ContactEmail,
		TaxID:          req.TaxID,
		CreditTermDays: req.CreditTermDays,
		Status:         req.Status,
	})
	if err != nil {
		switch err {
		case domain.ErrDuplicateContactEmail:
			c.JSON(http.StatusConflict, gin.H{"error": "Contact email already registered"})
		case domain.ErrInvalidStatus:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		case domain.ErrProvisioningUnavailable:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Provisioning temporarily unavailable, please retry"})
		default:
			h.log.WithError(err).Error("provisioning failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to provision organization"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"organization": organizationView(org),
			"credentials": gin.H{
				"login_id": creds.LoginID,
				"password": creds.Password,
			},
		},
	})
}

// SendCredentials handles rotating and emailing tenant credentials
func (h *OrganizationHandlers) SendCredentials(c *gin.Context) {
	var req SendCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.provSvc.SendCredentials(c.Request.Context(), req.OrgID); err != nil {
		switch err {
		case domain.ErrMailerDisabled:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Mail delivery is not configured"})
		case domain.ErrOrganizationNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		default:
			h.log.WithError(err).Error("credential delivery failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send credentials"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Credentials sent"}})
}
