// Package health liveness, readiness and the full store check
package health

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shop/config"
	"shop/infrastructure/persistence/mysql"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const pingTimeout = 2 * time.Second

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// Controller reports whether the store answers and carries the schema the repositories use
type Controller struct {
	config    *config.Config
	db        *gorm.DB
	startTime time.Time
}

// NewController db may be nil, the store checks are then skipped
func NewController(cfg *config.Config, db *gorm.DB) *Controller {
	return &Controller{
		config:    cfg,
		db:        db,
		startTime: time.Now(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.Health)
	router.GET("/health/live", c.Liveness)
	router.GET("/health/ready", c.Readiness)
}

// HealthResponse body of GET /api/v1/health
type HealthResponse struct {
	Status    string           `json:"status"`
	Version   string           `json:"version"`
	Driver    string           `json:"driver,omitempty"`
	Uptime    string           `json:"uptime"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health database ping plus the schema check
func (c *Controller) Health(ctx *gin.Context) {
	response := HealthResponse{
		Status:    statusHealthy,
		Version:   c.config.App.Version,
		Uptime:    time.Since(c.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if c.db != nil {
		response.Driver = mysql.Driver(c.db)
		response.Checks = c.runChecks(ctx.Request.Context())
		for _, check := range response.Checks {
			if check.Status != statusHealthy {
				response.Status = statusUnhealthy
			}
		}
	}

	statusCode := http.StatusOK
	if response.Status != statusHealthy {
		statusCode = http.StatusServiceUnavailable
	}
	ctx.JSON(statusCode, response)
}

func (c *Controller) Liveness(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// Readiness ready once the store answers and every table exists
func (c *Controller) Readiness(ctx *gin.Context) {
	if c.db != nil {
		for name, check := range c.runChecks(ctx.Request.Context()) {
			if check.Status != statusHealthy {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "not_ready",
					"check":   name,
					"message": check.Message,
				})
				return
			}
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"driver": c.driver(),
	})
}

func (c *Controller) driver() string {
	if c.db == nil {
		return ""
	}
	return mysql.Driver(c.db)
}

// runChecks skips the schema check when the store does not answer
func (c *Controller) runChecks(ctx context.Context) map[string]Check {
	checks := map[string]Check{"database": c.checkDatabase(ctx)}
	if checks["database"].Status == statusHealthy {
		checks["schema"] = c.checkSchema(ctx)
	}
	return checks
}

func (c *Controller) checkDatabase(ctx context.Context) Check {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := mysql.Ping(pingCtx, c.db)
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  statusUnhealthy,
			Message: err.Error(),
			Latency: latency.String(),
		}
	}
	return Check{Status: statusHealthy, Latency: latency.String()}
}

func (c *Controller) checkSchema(ctx context.Context) Check {
	checkCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if missing := mysql.MissingTables(checkCtx, c.db); len(missing) > 0 {
		return Check{
			Status:  statusUnhealthy,
			Message: "missing tables: " + strings.Join(missing, ", "),
		}
	}
	return Check{Status: statusHealthy}
}
