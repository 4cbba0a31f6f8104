package app

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/edudraft/edudraft-backend/internal/handlers"
	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/middleware"
	"github.com/edudraft/edudraft-backend/internal/server"
	"github.com/edudraft/edudraft-backend/internal/sse"
)

type Middleware struct {
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

type Handlers struct {
	Auth        *handlers.AuthHandler
	Generate    *handlers.GenerateHandler
	Artifact    *handlers.ArtifactHandler
	Credits     *handlers.CreditsHandler
	Healthcheck *handlers.HealthcheckHandler
	SSE         *handlers.SSEHandler
}

func wireMiddleware(log *logger.Logger, cfg Config, serviceset Services, clients Clients) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:      middleware.NewAuthMiddleware(log, serviceset.Auth),
		RateLimit: middleware.NewRateLimitMiddleware(log, clients.Cache, cfg.GenerateRateLimit, cfg.GenerateRateWindow),
	}
}

func wireHandlers(db *gorm.DB, log *logger.Logger, serviceset Services, hub *sse.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:        handlers.NewAuthHandler(serviceset.Auth),
		Generate:    handlers.NewGenerateHandler(log, serviceset.Generation),
		Artifact:    handlers.NewArtifactHandler(serviceset.Artifact),
		Credits:     handlers.NewCreditsHandler(serviceset.Ledger),
		Healthcheck: handlers.NewHealthcheckHandler(db),
		SSE:         handlers.NewSSEHandler(hub),
	}
}

func wireRouter(handlerset Handlers, middlewareset Middleware, registry *prometheus.Registry) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:         handlerset.Auth,
		GenerateHandler:     handlerset.Generate,
		ArtifactHandler:     handlerset.Artifact,
		CreditsHandler:      handlerset.Credits,
		HealthcheckHandler:  handlerset.Healthcheck,
		SSEHandler:          handlerset.SSE,
		AuthMiddleware:      middlewareset.Auth,
		RateLimitMiddleware: middlewareset.RateLimit,
		MetricsRegistry:     registry,
	})
}
