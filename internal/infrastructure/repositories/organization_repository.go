package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/you/hotelauthsvc/domain"
)

const pgUniqueViolation = "23505"

// OrganizationRepositoryImpl implements domain.OrganizationRepository using GORM
type OrganizationRepositoryImpl struct {
	db *gorm.DB
}

// DBOrganization represents the database model for Organization
type DBOrganization struct {
	ID             uint   `gorm:"primaryKey"`
	OrgID          string `gorm:"column:org_id;uniqueIndex:uq_organizations_org_id;size:16"`
	Name           string `gorm:"size:255"`
	TaxID          string `gorm:"column:tax_id;size:64"`
	CreditTermDays int
	Status         string    `gorm:"index;size:16"`
	ContactEmail   string    `gorm:"uniqueIndex:uq_organizations_contact_email;size:255"`
	LoginID        string    `gorm:"column:login_id;uniqueIndex:uq_organizations_login_id;size:32"`
	PasswordHash   string    `gorm:"column:password"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBOrganization) TableName() string {
	return "organizations"
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) domain.OrganizationRepository {
	return &OrganizationRepositoryImpl{db: db}
}

// Create implements domain.OrganizationRepository. Unique violations are
// classified by the violated column: the contact email is a genuine business
// conflict, the generated identifiers are retry-able collisions.
func (r *OrganizationRepositoryImpl) Create(ctx context.Context, org *domain.Organization) error {
	dbOrg := r.domainToDB(org)
	if err := r.db.WithContext(ctx).Create(dbOrg).Error; err != nil {
		return classifyOrgError(err)
	}
	org.ID = dbOrg.ID
	org.CreatedAt = dbOrg.CreatedAt
	return nil
}

// FindByOrgID implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) FindByOrgID(ctx context.Context, orgID string) (*domain.Organization, error) {
	return r.findOne(ctx, "org_id = ?", orgID)
}

// FindByLoginID implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) FindByLoginID(ctx context.Context, loginID string) (*domain.Organization, error) {
	return r.findOne(ctx, "login_id = ?", loginID)
}

// FindByID implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Organization, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *OrganizationRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.Organization, error) {
	var dbOrg DBOrganization
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbOrg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbOrg), nil
}

// List implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) List(ctx context.Context) ([]*domain.Organization, error) {
	var dbOrgs []DBOrganization
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&dbOrgs).Error; err != nil {
		return nil, err
	}
	orgs := make([]*domain.Organization, 0, len(dbOrgs))
	for i := range dbOrgs {
		orgs = append(orgs, r.dbToDomain(&dbOrgs[i]))
	}
	return orgs, nil
}

// Update implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) Update(ctx context.Context, org *domain.Organization) error {
	if err := r.db.WithContext(ctx).Save(r.domainToDB(org)).Error; err != nil {
		return classifyOrgError(err)
	}
	return nil
}

// UpdatePassword implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&DBOrganization{}).Where("id = ?", id).Update("password", passwordHash).Error
}

// classifyOrgError maps driver-level unique violations to domain errors.
// Postgres reports the violated constraint by name; the sqlite test driver
// reports the column in the message text.
func classifyOrgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return err
		}
		switch {
		case strings.Contains(pgErr.ConstraintName, "contact_email"):
			return domain.ErrDuplicateContactEmail
		case strings.Contains(pgErr.ConstraintName, "org_id"),
			strings.Contains(pgErr.ConstraintName, "login_id"):
			return domain.ErrDuplicateIdentifier
		}
		return err
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		switch {
		case strings.Contains(msg, "contact_email"):
			return domain.ErrDuplicateContactEmail
		case strings.Contains(msg, "org_id"), strings.Contains(msg, "login_id"):
			return domain.ErrDuplicateIdentifier
		}
	}
	return err
}

// isUniqueViolation reports whether err is a unique violation touching the
// named column.
func isUniqueViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, column)
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}

// domainToDB carries the timestamps along: Save issues a full-column UPDATE,
// so a zero CreatedAt here would wipe the stored value.
func (r *OrganizationRepositoryImpl) domainToDB(org *domain.Organization) *DBOrganization {
	return &DBOrganization{
		ID:             org.ID,
		OrgID:          org.OrgID,
		Name:           org.Name,
		TaxID:          org.TaxID,
		CreditTermDays: org.CreditTermDays,
		Status:         org.Status,
		ContactEmail:   org.ContactEmail,
		LoginID:        org.LoginID,
		PasswordHash:   org.PasswordHash,
		CreatedAt:      org.CreatedAt,
		UpdatedAt:      org.UpdatedAt,
	}
}

func (r *OrganizationRepositoryImpl) dbToDomain(dbOrg *DBOrganization) *domain.Organization {
	return &domain.Organization{
		ID:             dbOrg.ID,
		OrgID:          dbOrg.OrgID,
		Name:           dbOrg.Name,
		TaxID:          dbOrg.TaxID,
		CreditTermDays: dbOrg.CreditTermDays,
		Status:         dbOrg.Status,
		ContactEmail:   dbOrg.ContactEmail,
		LoginID:        dbOrg.LoginID,
		PasswordHash:   dbOrg.PasswordHash,
		CreatedAt:      dbOrg.CreatedAt,
		UpdatedAt:      dbOrg.UpdatedAt,
	}
}
