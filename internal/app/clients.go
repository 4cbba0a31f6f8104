package app

import (
	"fmt"
	"os"

	"github.com/edudraft/edudraft-backend/internal/clients/openai"
	redisclient "github.com/edudraft/edudraft-backend/internal/clients/redis"
	"github.com/edudraft/edudraft-backend/internal/logger"
)

type Clients struct {
	AI    openai.Client
	Cache redisclient.Cache
	Bus   redisclient.SSEBus
}

// wireClients builds the external collaborators. The AI provider is
// required; redis is optional and its absence downgrades rate limiting and
// cross-instance event fanout rather than failing startup.
func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	ai, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}
	clients := Clients{AI: ai}

	if os.Getenv("REDIS_ADDR") == "" {
		log.Warn("REDIS_ADDR not set; rate limiting and cross-instance SSE fanout disabled")
		return clients, nil
	}

	cache, err := redisclient.NewCache(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis cache: %w", err)
	}
	clients.Cache = cache

	bus, err := redisclient.NewSSEBus(log)
	if err != nil {
		_ = cache.Close()
		return Clients{}, fmt.Errorf("init redis sse bus: %w", err)
	}
	clients.Bus = bus

	return clients, nil
}
