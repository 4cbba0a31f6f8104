package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"github.com/edudraft/edudraft-backend/internal/db"
	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/observability"
	"github.com/edudraft/edudraft-backend/internal/sse"
	"github.com/edudraft/edudraft-backend/internal/utils"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	DB       *gorm.DB
	Router   *gin.Engine
	SSEHub   *sse.SSEHub
	Clients  Clients
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	log, err := logger.New(utils.GetEnv("LOG_MODE", "development", nil))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	hub := sse.NewSSEHub(log)

	clients, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clients, hub, metrics)
	middlewareset := wireMiddleware(log, cfg, serviceset, clients)
	handlerset := wireHandlers(theDB, log, serviceset, hub)
	router := wireRouter(handlerset, middlewareset, registry)

	return &App{
		Log:      log,
		Cfg:      cfg,
		DB:       theDB,
		Router:   router,
		SSEHub:   hub,
		Clients:  clients,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

// StartEventForwarder bridges bus-published events back into the local hub.
// It is a no-op without redis; the hub then only sees events emitted on this
// instance.
func (a *App) StartEventForwarder(ctx context.Context) error {
	if a.Clients.Bus == nil {
		return nil
	}
	return a.Clients.Bus.StartForwarder(ctx, func(msg sse.SSEMessage) {
		a.SSEHub.Broadcast(msg)
	})
}

func (a *App) Close() {
	if a.Clients.Bus != nil {
		if err := a.Clients.Bus.Close(); err != nil {
			a.Log.Warn("Closing redis bus failed", "error", err)
		}
	}
	if a.Clients.Cache != nil {
		if err := a.Clients.Cache.Close(); err != nil {
			a.Log.Warn("Closing redis cache failed", "error", err)
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	a.Log.Sync()
}
