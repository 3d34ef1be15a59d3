package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/rateport/store-ratings/internal/audit"
	"github.com/rateport/store-ratings/internal/config"
	"github.com/rateport/store-ratings/internal/handlers"
	infraRepo "github.com/rateport/store-ratings/internal/infra/repository"
	"github.com/rateport/store-ratings/internal/middleware"
	"github.com/rateport/store-ratings/internal/models"
	"github.com/rateport/store-ratings/internal/stats"
	ucRating "github.com/rateport/store-ratings/internal/usecase/rating"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, redisClient *redis.Client, sl *slog.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	ratingRepo := infraRepo.NewRatingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, sl)

	statsCache := stats.NewCache(redisClient, sl)

	// ======================================================
	// USE CASES — RATINGS
	// ======================================================
	submitRatingUC := ucRating.NewSubmitRating(
		ratingRepo,
		auditDispatcher,
	)

	ownerDashboardUC := ucRating.NewOwnerDashboard(
		ratingRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher, sl)
	adminHandler := handlers.NewAdminHandler(db, auditDispatcher, statsCache, sl)
	storeHandler := handlers.NewStoreHandler(db, submitRatingUC, ownerDashboardUC, sl)
	userHandler := handlers.NewUserHandler(db, sl)

	authRequired := middleware.AuthMiddleware(db, cfg)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Server is running!"})
		})

		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.PUT("/update-password", authRequired, authHandler.UpdatePassword)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(authRequired, middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.POST("/users", adminHandler.CreateUser)
			admin.POST("/stores", adminHandler.CreateStore)
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/stores", adminHandler.ListStores)
		}

		// ------------------------------
		// STORES
		// ------------------------------
		storesGroup := api.Group("/stores")
		storesGroup.Use(authRequired)
		{
			storesGroup.GET("", storeHandler.List)
			storesGroup.POST("/rate", storeHandler.Rate)
			storesGroup.GET("/owner-dashboard",
				middleware.RequireRole(models.RoleStoreOwner),
				storeHandler.OwnerDashboard)
		}

		// ------------------------------
		// USERS
		// ------------------------------
		usersGroup := api.Group("/users")
		usersGroup.Use(authRequired)
		{
			usersGroup.GET("/:userId",
				middleware.RequireRole(models.RoleAdmin),
				userHandler.GetDetails)
		}
	}
}
