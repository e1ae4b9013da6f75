package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matchcomb/matchcomb/app/cfg"
)

// NewServer creates the HTTP router with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	api := r.Group("/api")
	{
		api.GET("/teams", handler.GetTeams)
		api.GET("/leagues", handler.GetLeagues)
		api.POST("/schedule", handler.PostSchedule)
		api.POST("/calendar/add", handler.PostCalendarAdd)
	}

	r.GET("/health", handler.HealthCheck)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "MatchComb",
			"version":     cfg.GetVersion(),
			"description": "Sports TV schedule aggregator with team filtering and calendar sync",
			"endpoints": map[string]string{
				"teams":    "/api/teams?source=<name>",
				"leagues":  "/api/leagues?source=<name>",
				"schedule": "/api/schedule (POST)",
				"calendar": "/api/calendar/add (POST)",
				"health":   "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
