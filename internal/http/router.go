package httpx

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/you/hotelauthsvc/domain"
	"github.com/you/hotelauthsvc/internal/http/handlers"
	"github.com/you/hotelauthsvc/internal/http/middleware"
)

// BuildRouter wires the HTTP surface. Organization routes require a portal
// bearer token and an admin role; corporate routes require a corporate-scope
// token.
func BuildRouter(
	ah *handlers.AuthHandlers,
	ch *handlers.CorporateHandlers,
	oh *handlers.OrganizationHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(corsOrigins))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)

	portal := api.Group("/auth").Use(jwtmw.WithJWT(), middleware.RequireScope(domain.ScopePortal))
	portal.GET("/me", ah.Me)
	portal.POST("/logout", ah.Logout)
	portal.POST("/set-password", ah.SetPassword)

	corp := api.Group("/auth/corporate")
	corp.POST("/login", ch.Login)

	corpAuthed := api.Group("/auth/corporate").Use(jwtmw.WithJWT(), middleware.RequireScope(domain.ScopeCorporate))
	corpAuthed.GET("/me", ch.Me)
	corpAuthed.PUT("/profile", ch.UpdateProfile)
	corpAuthed.POST("/set-password", ch.SetPassword)

	orgs := api.Group("/organizations").Use(jwtmw.WithJWT(), middleware.RequireScope(domain.ScopePortal), cb.Enforce())
	orgs.GET("", oh.List)
	orgs.POST("", oh.Provision)
	orgs.POST("/send-credentials", oh.SendCredentials)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cors.New(cfg)
}
