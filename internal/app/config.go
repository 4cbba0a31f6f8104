package app

import (
	"time"

	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/utils"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration

	HTTPPort string

	// Generation starts allowed per user per window; 0 disables the
	// limiter.
	GenerateRateLimit  int
	GenerateRateWindow time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		JWTSecretKey:       utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:     time.Duration(utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)) * time.Second,
		HTTPPort:           utils.GetEnv("PORT", "8080", log),
		GenerateRateLimit:  utils.GetEnvAsInt("GENERATE_RATE_LIMIT", 10, log),
		GenerateRateWindow: time.Duration(utils.GetEnvAsInt("GENERATE_RATE_WINDOW_SECONDS", 60, log)) * time.Second,
	}
}
