package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	MinSecretLength = 32
	MinBcryptCost   = 10
	MaxBcryptCost   = 15
)

// SMTPConfig holds the optional outbound mail settings. Mail features are
// disabled entirely unless every required field is present.
type SMTPConfig struct {
	Host   string
	Port   int
	Secure bool
	User   string
	Pass   string
	From   string
}

// Complete reports whether the SMTP block is usable.
func (s SMTPConfig) Complete() bool {
	return s.Host != "" && s.Port != 0 && s.From != ""
}

type Config struct {
	Port    string
	GinMode string

	DSN        string
	DBRequire  bool // require TLS on the database connection
	RedisAddr  string
	RedisPass  string
	RedisDB    int

	AccessSecret  string
	RefreshSecret string
	Issuer        string
	Audience      string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	BcryptCost int

	CORSOrigins []string

	SMTP SMTPConfig
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

func envBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v == "true" || v == "1"
}

// Load reads configuration from the environment and validates it.
// Secrets that are too short, out-of-range cost factors and unparsable
// TTLs are startup failures, not runtime surprises.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          env("PORT", "8080"),
		GinMode:       env("GIN_MODE", "debug"),
		DSN:           os.Getenv("DATABASE_URL"),
		DBRequire:     envBool("DATABASE_TLS", false),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		AccessSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		Issuer:        env("JWT_ISSUER", "hotelauthsvc"),
		Audience:      env("JWT_AUDIENCE", "hotel-billing-portal"),
	}

	if cfg.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if len(cfg.AccessSecret) < MinSecretLength {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET must be at least %d characters", MinSecretLength)
	}
	if len(cfg.RefreshSecret) < MinSecretLength {
		return nil, fmt.Errorf("REFRESH_TOKEN_SECRET must be at least %d characters", MinSecretLength)
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	accTTL, err := time.ParseDuration(env("ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
	}
	refTTL, err := time.ParseDuration(env("REFRESH_TOKEN_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_TTL: %w", err)
	}
	if accTTL <= 0 || refTTL <= 0 {
		return nil, fmt.Errorf("token TTLs must be positive")
	}
	cfg.AccessTTL = accTTL
	cfg.RefreshTTL = refTTL

	cost, err := envInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	if cost < MinBcryptCost || cost > MaxBcryptCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", MinBcryptCost, MaxBcryptCost)
	}
	cfg.BcryptCost = cost

	cfg.RedisDB, err = envInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(env("CORS_ORIGINS", "*"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	smtpPort, err := envInt("SMTP_PORT", 0)
	if err != nil {
		return nil, err
	}
	cfg.SMTP = SMTPConfig{
		Host:   os.Getenv("SMTP_HOST"),
		Port:   smtpPort,
		Secure: envBool("SMTP_SECURE", false),
		User:   os.Getenv("SMTP_USER"),
		Pass:   os.Getenv("SMTP_PASS"),
		From:   os.Getenv("SMTP_FROM"),
	}

	return cfg, nil
}
