package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/keeptrack-dev/keeptrack/internal/handlers"
	"github.com/keeptrack-dev/keeptrack/internal/middleware"
	"github.com/keeptrack-dev/keeptrack/internal/services"
	"github.com/keeptrack-dev/keeptrack/internal/types"
	"gorm.io/gorm"
)

// NewRouter wires the service layer onto the store handle and builds the
// route table. The handle is passed in; the router owns no connection state.
func NewRouter(database *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	assetService := services.NewAssetService(database)
	recordService := services.NewMaintenanceService(database, assetService)

	authHandler := handlers.NewAuthHandler(services.NewAuthService(database))
	assetHandler := handlers.NewAssetHandler(assetService, recordService)
	recordHandler := handlers.NewMaintenanceHandler(recordService)

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthMiddleware(), authHandler.Me)
			auth.POST("/logout", middleware.AuthMiddleware(), authHandler.Logout)
		}

		assets := api.Group("/assets", middleware.AuthMiddleware())
		{
			assets.POST("", assetHandler.CreateAsset)
			assets.GET("", assetHandler.ListAssets)
			assets.GET("/:id", assetHandler.GetAsset)
			assets.PUT("/:id", assetHandler.UpdateAsset)
			assets.DELETE("/:id", assetHandler.DeleteAsset)
			assets.GET("/:id/maintenance-records", assetHandler.ListMaintenanceRecords)
		}

		records := api.Group("/maintenance-records", middleware.AuthMiddleware())
		{
			records.GET("/panel/upcoming", recordHandler.Upcoming)
			records.POST("", recordHandler.CreateRecord)
			records.GET("/:id", recordHandler.GetRecord)
			records.PUT("/:id", recordHandler.UpdateRecord)
			records.DELETE("/:id", recordHandler.DeleteRecord)
		}
	}

	return r
}
