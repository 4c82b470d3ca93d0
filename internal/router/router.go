package router

import (
	"log"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/chat"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/handlers"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/middleware"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/repositories"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/pkg/config"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/pkg/imagestore"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, images *imagestore.Store, hub *chat.Hub) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.LostItem{},
		&models.FoundItem{},
		&models.Notification{},
		&models.ChatThread{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Stored photos and attachments
	e.Static("/images", images.Dir())

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	itemRepo := repositories.NewPostgresItemRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	threadRepo := repositories.NewPostgresThreadRepository(pgdb)
	messageRepo := repositories.NewMongoMessageRepository(mgClient.Database(config.MongoDatabase))

	resolver := chat.NewResolver(threadRepo)
	pipeline := chat.NewPipeline(threadRepo, messageRepo, images, hub)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Lost/found item routes
	itemHandler := handlers.NewItemHandler(itemRepo, images)
	itemHandler.RegisterItemRoutes(api.Group("/lostandfound"))
	log.Println("Lost and found routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Chat routes
	chatHandler := handlers.NewChatHandler(resolver, pipeline, threadRepo, images)
	chatHandler.RegisterChatRoutes(api)
	api.GET("/chat/ws", chat.ServeWS(hub, pipeline))
	log.Println("Chat routes configured.")

	log.Println("All routes configured.")
}
