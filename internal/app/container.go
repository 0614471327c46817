package app

import (
	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/you/hotelauthsvc/domain"
	"github.com/you/hotelauthsvc/internal/config"
	"github.com/you/hotelauthsvc/internal/infrastructure/auth"
	"github.com/you/hotelauthsvc/internal/infrastructure/database"
	"github.com/you/hotelauthsvc/internal/infrastructure/notifications"
	"github.com/you/hotelauthsvc/internal/infrastructure/repositories"
	"github.com/you/hotelauthsvc/internal/services"
)

// Container holds all dependencies, constructed once at process start and
// torn down through Close.
type Container struct {
	Config *config.Config
	Log    *logrus.Logger

	DB          *gorm.DB
	RedisClient *redis.Client
	Enforcer    *casbin.Enforcer

	AccountRepo domain.AccountRepository
	OrgRepo     domain.OrganizationRepository
	SessionRepo domain.SessionRepository

	PasswordSvc  domain.PasswordService
	TokenSvc     domain.TokenService
	Generator    domain.CredentialGenerator
	Mailer       domain.Mailer
	AuthSvc      domain.AuthService
	CorporateSvc domain.CorporateService
	ProvisionSvc domain.ProvisioningService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, log *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	gdb, err := database.Open(cfg.DSN, cfg.DBRequire)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return nil, err
	}
	c.DB = gdb

	cas, err := auth.NewCasbinService(gdb)
	if err != nil {
		return nil, err
	}
	c.Enforcer = cas.E

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB).Client

	c.AccountRepo = repositories.NewAccountRepository(gdb)
	c.OrgRepo = repositories.NewOrganizationRepository(gdb)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, cfg.RefreshTTL)

	c.PasswordSvc = auth.NewPasswordService(cfg.BcryptCost)
	c.TokenSvc = auth.NewJWTService(
		cfg.AccessSecret,
		cfg.RefreshSecret,
		cfg.Issuer,
		cfg.Audience,
		cfg.AccessTTL,
		cfg.RefreshTTL,
	)
	c.Generator = auth.NewCredentialGenerator()
	c.Mailer = notifications.NewSMTPMailer(cfg.SMTP, log)

	c.AuthSvc = services.NewAuthService(c.AccountRepo, c.SessionRepo, c.PasswordSvc, c.TokenSvc, cfg.RefreshTTL)
	c.CorporateSvc = services.NewCorporateService(c.OrgRepo, c.SessionRepo, c.PasswordSvc, c.TokenSvc, cfg.RefreshTTL)
	c.ProvisionSvc = services.NewProvisioningService(c.OrgRepo, c.PasswordSvc, c.Generator, c.Mailer, log)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
