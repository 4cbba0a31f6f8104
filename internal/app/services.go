package app

import (
	"gorm.io/gorm"

	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/observability"
	"github.com/edudraft/edudraft-backend/internal/services"
	"github.com/edudraft/edudraft-backend/internal/sse"
)

type Services struct {
	Auth       services.AuthService
	Ledger     services.LedgerService
	Artifact   services.ArtifactService
	Generation services.GenerationService
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	reposet Repos,
	clients Clients,
	hub *sse.SSEHub,
	metrics *observability.Metrics,
) Services {
	log.Info("Wiring services...")

	ledger := services.NewLedgerService(db, log, reposet.CreditTransaction)
	artifact := services.NewArtifactService(db, log, reposet.Artifact)
	auth := services.NewAuthService(db, log, reposet.User, ledger, cfg.JWTSecretKey, cfg.AccessTokenTTL)

	// With redis the generation events fan out through the bus so every
	// instance's hub sees them; without it they go straight to the local
	// hub.
	var emitter services.SSEEmitter = &services.HubEmitter{Hub: hub}
	if clients.Bus != nil {
		emitter = &services.RedisEmitter{Bus: clients.Bus}
	}

	generation := services.NewGenerationService(db, log, reposet.User, artifact, ledger, clients.AI, emitter, metrics)

	return Services{
		Auth:       auth,
		Ledger:     ledger,
		Artifact:   artifact,
		Generation: generation,
	}
}
