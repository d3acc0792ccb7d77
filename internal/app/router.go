package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"taxi24/internal/handler"
	"taxi24/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	DriverHandler    *handler.DriverHandler
	PassengerHandler *handler.PassengerHandler
	TripHandler      *handler.TripHandler
	RedisClient      *redis.Client
	NewRelicApp      *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("", deps.DriverHandler.Register)
			drivers.GET("", deps.DriverHandler.GetAll)
			drivers.GET("/search", deps.DriverHandler.Search)
			drivers.GET("/nearby", deps.DriverHandler.Nearby)
			drivers.GET("/:id", deps.DriverHandler.GetByID)
			drivers.GET("/:id/availability", deps.DriverHandler.Availability)
		}

		// Passenger routes.
		passengers := v1.Group("/passengers")
		{
			passengers.POST("", deps.PassengerHandler.Register)
			passengers.GET("", deps.PassengerHandler.GetAll)
			passengers.GET("/:id", deps.PassengerHandler.GetByID)
		}

		// Trip routes.
		trips := v1.Group("/trips")
		{
			trips.POST("", deps.TripHandler.Create)
			trips.POST("/:id/complete", deps.TripHandler.Complete)
			trips.GET("/active", deps.TripHandler.GetActive)
			trips.GET("/completed/:id/bill", deps.TripHandler.GetBill)
		}
	}

	return router
}
