package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/invoice_drafting_app/cmd/docs"
	portssvc "github.com/SscSPs/invoice_drafting_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafting_app/internal/middleware"
	"github.com/SscSPs/invoice_drafting_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.SessionMiddleware(services.Auth, cfg.SessionCookieName))

	tmpl, err := loadTemplates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	// Page and API logins share one per-IP budget.
	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT %q: %w", cfg.LoginRateLimit, err)
	}
	loginLimiter := limiter.New(memory.NewStore(), rate)

	sessions := newSessionIssuer(cfg, services.Auth, services.Workspace)

	registerPageRoutes(r, cfg, sessions, services, loginLimiter)

	setupAPIV1Routes(r, cfg, sessions, services, loginLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		// Same-origin only.
		corsCfg.AllowOriginFunc = func(string) bool { return false }
	}
	return corsCfg
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	sessions *sessionIssuer,
	service *portssvc.ServiceContainer,
	loginLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1")

	// Public: login, logout and session status
	registerAuthRoutes(v1, sessions, loginLimiter)

	protected := v1.Group("", middleware.RequireSession())
	registerCatalogRoutes(protected)
	registerWorkspaceRoutes(protected, service.Workspace, service.Attachment)
	registerAttachmentRoutes(protected, service.Attachment, service.Workspace, cfg.MaxAttachmentBytes)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
