package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/you/hotelauthsvc/internal/config"
	httpx "github.com/you/hotelauthsvc/internal/http"
	"github.com/you/hotelauthsvc/internal/http/handlers"
	"github.com/you/hotelauthsvc/internal/http/middleware"
)

// Run builds the container and serves until interrupted.
func Run(cfg *config.Config, log *logrus.Logger) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	seedPolicies(c)

	authH := handlers.NewAuthHandlers(c.AuthSvc, log)
	corpH := handlers.NewCorporateHandlers(c.CorporateSvc, log)
	orgH := handlers.NewOrganizationHandlers(c.ProvisionSvc, log)

	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(c.Enforcer)

	r := httpx.BuildRouter(authH, corpH, orgH, jwtMW, casbinMW, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func seedPolicies(c *Container) {
	policies, _ := c.Enforcer.GetPolicy()
	if len(policies) > 0 {
		return
	}
	c.Enforcer.AddPolicy("role_admin", "/api/organizations", "(GET|POST)")
	c.Enforcer.AddPolicy("role_admin", "/api/organizations/*", "POST")
	_ = c.Enforcer.SavePolicy()
	c.Log.Info("casbin: seeded default policies")
}
