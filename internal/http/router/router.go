// Package router wires middleware, health endpoints and module routes into
// the Gin engine.
package router

import (
	"net/http"
	"time"

	apphttp "lead_dashboard_backend/internal/http"
	"lead_dashboard_backend/platform/httpkit"
	"lead_dashboard_backend/platform/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New assembles the engine: recovery, request logging, security headers,
// CORS, Prometheus instrumentation, the health and metrics endpoints, and
// every module's routes under /api/v1.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app))
	engine.Use(metrics.Middleware())

	engine.GET("/api/health", healthHandler(app))
	engine.GET("/metrics", metrics.Handler())

	ctx := &apphttp.RouterContext{
		Engine:           engine,
		V1:               engine.Group("/api/v1"),
		WriteRateLimiter: httpkit.NewWriteRateLimiter(app.Logger),
	}
	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("registered module routes", "module", module.Name())
	}

	return engine
}

func corsMiddleware(app *apphttp.App) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: app.Config.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}
	if app.Config.GetCORSAllowAll() {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = app.Config.GetCORSOrigins()
	}
	return cors.New(cfg)
}

// healthHandler reports liveness plus store reachability. A failing store
// ping degrades the status without taking the endpoint down.
func healthHandler(app *apphttp.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if app.Health != nil {
			if err := app.Health.Ping(c.Request.Context()); err != nil {
				app.Logger.Error("health check store ping failed", "error", err)
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{"status": status})
	}
}
