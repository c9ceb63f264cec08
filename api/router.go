package api

import (
	"net/http"

	"shop/api/health"
	"shop/api/item"
	"shop/api/member"
	"shop/api/middleware"
	"shop/api/order"
	"shop/config"

	"github.com/gin-gonic/gin"
)

// Router Route configuration
type Router struct {
	engine                *gin.Engine
	config                *config.Config
	healthController      *health.Controller
	memberController      *member.Controller
	itemController        *item.Controller
	orderController       *order.Controller
	simpleOrderController *order.SimpleController
}

// NewRouter builds the engine with middleware in order: request id, recovery, logging, CORS, rate limit
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	memberController *member.Controller,
	itemController *item.Controller,
	orderController *order.Controller,
	simpleOrderController *order.SimpleController,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:                engine,
		config:                cfg,
		healthController:      healthController,
		memberController:      memberController,
		itemController:        itemController,
		orderController:       orderController,
		simpleOrderController: simpleOrderController,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api")
	{
		r.healthController.RegisterRoutes(apiGroup.Group("/v1"))
		r.memberController.RegisterRoutes(apiGroup)
		r.itemController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup)
		r.simpleOrderController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
