package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/velora/storefront/internal/infra/config"
	"github.com/velora/storefront/internal/infra/security"
	"github.com/velora/storefront/internal/infra/telemetry"
	"github.com/velora/storefront/internal/transport/http/handlers"
	"github.com/velora/storefront/internal/transport/http/middleware"
	"github.com/velora/storefront/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth      *usecase.AuthService
	Catalog   *usecase.CatalogService
	Orders    *usecase.OrderService
	Roles     *usecase.RoleService
	Customers *usecase.CustomerService
	Reviews   *usecase.ReviewService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
	Services    ServiceSet
	Tokens      *security.TokenManager
	Telemetry   *telemetry.Provider
	Database    DatabaseChecker
	Cache       CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	Ping(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.CORS.AllowedOrigins))
	if deps.Telemetry != nil {
		r.Use(middleware.Metrics(deps.Telemetry))
	}

	requireAuth := middleware.RequireAuth(deps.Tokens)
	requireAdmin := middleware.RequireAdmin()

	healthOptions := make([]handlers.HealthOption, 0, 2)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.Ping))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	if deps.Telemetry != nil {
		r.GET("/metrics", gin.WrapH(deps.Telemetry.Handler()))
	}

	api := r.Group("/api")
	{
		authHandler := handlers.NewAuthHandler(deps.Services.Auth)
		authGroup := api.Group("/auth")
		authGroup.POST("/register", withLimit(deps, "register", deps.Config.RateLimit.RegisterMaxAttempts, authHandler.Register)...)
		authGroup.POST("/login", withLimit(deps, "login", deps.Config.RateLimit.LoginMaxAttempts, authHandler.Login)...)
		authGroup.GET("/me", requireAuth, authHandler.Profile)

		productHandler := handlers.NewProductHandler(deps.Services.Catalog)
		productGroup := api.Group("/products")
		productGroup.GET("", productHandler.List)
		productGroup.GET("/:id", productHandler.Get)
		productGroup.POST("", requireAuth, requireAdmin, productHandler.Create)
		productGroup.PUT("/:id", requireAuth, requireAdmin, productHandler.Update)
		productGroup.DELETE("/:id", requireAuth, requireAdmin, productHandler.Delete)

		orderHandler := handlers.NewOrderHandler(deps.Services.Orders, deps.Telemetry)
		orderGroup := api.Group("/orders")
		orderGroup.POST("", append([]gin.HandlerFunc{requireAuth},
			withLimit(deps, "checkout", deps.Config.RateLimit.CheckoutMaxAttempts, orderHandler.Place)...)...)
		orderGroup.GET("/my", requireAuth, orderHandler.ListMine)
		orderGroup.GET("/user/:userId", requireAuth, orderHandler.ListForUser)
		orderGroup.GET("", requireAuth, requireAdmin, orderHandler.ListAll)
		orderGroup.PATCH("/:id/status", requireAuth, requireAdmin, orderHandler.UpdateStatus)

		roleHandler := handlers.NewRoleHandler(deps.Services.Roles)
		roleGroup := api.Group("/roles")
		roleGroup.Use(requireAuth, requireAdmin)
		roleGroup.GET("", roleHandler.List)
		roleGroup.GET("/permissions", roleHandler.ListPermissions)
		roleGroup.POST("", roleHandler.Create)
		roleGroup.PUT("/:id", roleHandler.Update)
		roleGroup.DELETE("/:id", roleHandler.Delete)

		api.GET("/permissions", requireAuth, requireAdmin, roleHandler.ListPermissions)

		customerHandler := handlers.NewCustomerHandler(deps.Services.Customers)
		api.GET("/customers", requireAuth, requireAdmin, customerHandler.List)

		reviewHandler := handlers.NewReviewHandler(deps.Services.Reviews)
		reviewGroup := api.Group("/reviews")
		reviewGroup.GET("", reviewHandler.List)
		reviewGroup.POST("", requireAuth, reviewHandler.Create)
	}

	return r
}

// withLimit prepends a rate limit middleware to the handler when limiting is
// configured, otherwise returns the handler alone.
func withLimit(deps Dependencies, name string, limit int, handler gin.HandlerFunc) []gin.HandlerFunc {
	if deps.RateLimiter == nil || limit <= 0 {
		return []gin.HandlerFunc{handler}
	}

	return []gin.HandlerFunc{
		deps.RateLimiter.Limit(name, limit, deps.Config.RateLimit.WindowDuration),
		handler,
	}
}
