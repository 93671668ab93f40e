package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/ramadan-tracker/docs"
)

type RouterDependencies struct {
	TrackerHandler *TrackerHandler
	EventsHandler  *EventsHandler
	// Ping checks the storage backend; nil means nothing to check.
	Ping      func(ctx context.Context) error
	Backend   string
	StartTime time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// The UI is served from another local origin (file:// or a dev server).
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		storage := "ok"
		if deps.Ping != nil {
			if err := deps.Ping(c.Request.Context()); err != nil {
				storage = "unreachable"
			}
		}

		statusCode := http.StatusOK
		if storage != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":  "ok",
			"backend": deps.Backend,
			"storage": storage,
			"uptime":  time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	deps.TrackerHandler.RegisterRoutes(apiV1)
	if deps.EventsHandler != nil {
		deps.EventsHandler.RegisterRoutes(apiV1)
	}

	return router
}
