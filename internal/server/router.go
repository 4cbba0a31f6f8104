package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edudraft/edudraft-backend/internal/handlers"
	"github.com/edudraft/edudraft-backend/internal/middleware"
	"github.com/edudraft/edudraft-backend/internal/utils"
)

type RouterConfig struct {
	AuthHandler        *handlers.AuthHandler
	GenerateHandler    *handlers.GenerateHandler
	ArtifactHandler    *handlers.ArtifactHandler
	CreditsHandler     *handlers.CreditsHandler
	HealthcheckHandler *handlers.HealthcheckHandler
	SSEHandler         *handlers.SSEHandler

	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware

	MetricsRegistry *prometheus.Registry
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	if cfg.MetricsRegistry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.MetricsRegistry, promhttp.HandlerOpts{})))
	}
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/generate", cfg.RateLimitMiddleware.LimitGenerations(), cfg.GenerateHandler.Generate)

	protected.GET("/artifacts", cfg.ArtifactHandler.List)
	protected.GET("/artifacts/:id", cfg.ArtifactHandler.Get)
	protected.PATCH("/artifacts/:id", cfg.ArtifactHandler.Rename)
	protected.PUT("/artifacts/:id/tags", cfg.ArtifactHandler.Retag)
	protected.DELETE("/artifacts/:id", cfg.ArtifactHandler.Delete)

	protected.GET("/credits", cfg.CreditsHandler.Balance)
	protected.GET("/credits/history", cfg.CreditsHandler.History)
	protected.POST("/credits/purchase", cfg.CreditsHandler.Purchase)

	protected.GET("/events", cfg.SSEHandler.Subscribe)

	return router
}

func allowedOrigins() []string {
	raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", nil)
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
