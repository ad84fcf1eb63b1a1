package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	_ "github.com/lojinha/catalog-api/docs"
	"github.com/lojinha/catalog-api/internal/api/handler"
	"github.com/lojinha/catalog-api/internal/api/middleware"
	"github.com/lojinha/catalog-api/internal/core/ports"
	"github.com/lojinha/catalog-api/internal/core/service"
	"github.com/lojinha/catalog-api/internal/infrastructure/config"
	"github.com/lojinha/catalog-api/internal/infrastructure/db/postgres"
	redisdb "github.com/lojinha/catalog-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the role cache and its readiness check are then skipped.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)

	var roleCache ports.RoleCache
	if rdb != nil {
		roleCache = redisdb.NewRoleCache(rdb, log)
	}

	authService := service.NewAuthService(userRepo, cfg.SecretKey, cfg.TokenTTL, log)
	catalogService := service.NewCatalogService(productRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)

	authGate := middleware.Auth(cfg.SecretKey)
	adminOnly := middleware.AdminOnly(userRepo, roleCache)

	// --- Identity routes (outside the bearer gate) ---
	seguranca := e.Group("/seguranca")
	seguranca.POST("/register", authHandler.Register)
	seguranca.POST("/login", authHandler.Login)

	// --- Catalog routes ---
	produtos := e.Group("/api/produtos", authGate)
	produtos.GET("", productHandler.List)
	produtos.GET("/:id", productHandler.Get)
	produtos.POST("", productHandler.Create, adminOnly)
	produtos.PUT("/:id", productHandler.Update, adminOnly)
	produtos.DELETE("/:id", productHandler.Delete, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- API documentation ---
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
