package router

import (
	"github.com/circlet-app/backend/internal/handlers"
	"github.com/circlet-app/backend/internal/middleware"
	"github.com/circlet-app/backend/internal/models"
	"github.com/circlet-app/backend/internal/policies"
	"github.com/circlet-app/backend/internal/repositories"
	"github.com/circlet-app/backend/internal/services"
	"github.com/circlet-app/backend/pkg/config"
	"github.com/circlet-app/backend/pkg/logger"
	circletredis "github.com/circlet-app/backend/pkg/redis"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes migrates the schema, wires all dependencies and
// registers every route.
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, unreadCache *circletredis.UnreadCache) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.FollowRequest{},
		&models.Block{},
		&models.Like{},
		&models.Post{},
		&models.Media{},
		&models.Notification{},
	)
	if err != nil {
		logger.Fatal("auto migrating models: " + err.Error())
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	store := repositories.NewPostgresStore(db)
	visibility := policies.NewVisibility(store)
	notifier := services.NewNotifier(unreadCache)

	followService := services.NewFollowService(store, notifier)
	blockService := services.NewBlockService(store)
	likeService := services.NewLikeService(store, notifier)
	notificationService := services.NewNotificationService(store, unreadCache)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(store.Users(), cfg.JWT)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWT.Secret))

	userHandler := handlers.NewUserHandler(store.Users(), store.Posts(), visibility)
	userHandler.RegisterUserRoutes(api)

	followHandler := handlers.NewFollowHandler(followService, store.Follows(), visibility)
	followHandler.RegisterFollowRoutes(api)

	blockHandler := handlers.NewBlockHandler(blockService)
	blockHandler.RegisterBlockRoutes(api)

	postHandler := handlers.NewPostHandler(store.Posts(), visibility)
	postHandler.RegisterPostRoutes(api)

	likeHandler := handlers.NewLikeHandler(likeService)
	likeHandler.RegisterLikeRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)

	logger.Info("all routes configured")
}
