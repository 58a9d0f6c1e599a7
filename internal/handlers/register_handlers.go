package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/fintrack/cmd/docs"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/middleware"
	"github.com/SscSPs/fintrack/internal/platform/config"
	"github.com/SscSPs/fintrack/internal/utils/validation"
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
	health portsrepo.HealthChecker,
) error {
	if err := validation.RegisterWithGin(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	if cfg.FrontendBaseURL != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendBaseURL},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", healthHandler(cfg, health))

	loginLimit, err := loginRateLimit(cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	api := r.Group("/api/v1")
	registerAuthRoutes(api, cfg, services, loginLimit)

	setupAPIV1Routes(api, cfg, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the JWT protected part of /api/v1.
func setupAPIV1Routes(api *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	stream := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret, true))

	registerTransactionRoutes(v1, services.Transaction, services.Transfer)
	registerBudgetRoutes(v1, services.Budget)
	registerUserRoutes(v1, services.User)
	registerDashboardRoutes(v1, stream, services, cfg.CurrencySymbol, cfg.FrontendBaseURL)
}

func loginRateLimit(formatted string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid login rate limit %q: %w", formatted, err)
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate)), nil
}

// healthHandler godoc
// @Summary Health check
// @Description Reports OK. With ENABLE_DB_CHECK the store is pinged as well.
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK"
// @Failure 503 {string} string "store unreachable"
// @Router /health [get]
func healthHandler(cfg *config.Config, health portsrepo.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.EnableDBCheck && health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health.Ping(ctx); err != nil {
				middleware.GetLoggerFromCtx(ctx).Warn("Health check failed", "error", err)
				c.String(http.StatusServiceUnavailable, "store unreachable")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	}
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
