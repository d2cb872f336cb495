package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mapmysteps/location-backend-go/internal/config"
	"github.com/mapmysteps/location-backend-go/internal/handler"
	"github.com/mapmysteps/location-backend-go/internal/middleware"
)

// SetupRouter wires the HTTP surface
func SetupRouter(cfg *config.Config, entryHandler *handler.EntryHandler, watchHandler *handler.WatchHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Location Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		locations := api.Group("/locations")
		locations.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			locations.POST("/fixes", middleware.RateLimit(cfg.RateLimit, cfg.RateWindow), entryHandler.ConsiderFix)
			locations.GET("/days", entryHandler.GetDays)
			locations.GET("/days/:date/entries", entryHandler.GetDayEntries)
			locations.GET("/days/:date/watch", watchHandler.WatchDay)
			locations.GET("/latest", entryHandler.GetLatest)
		}
	}

	return r
}
