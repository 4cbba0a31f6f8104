package app

import (
	"gorm.io/gorm"

	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/repos"
)

type Repos struct {
	User              repos.UserRepo
	Artifact          repos.ArtifactRepo
	CreditTransaction repos.CreditTransactionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		Artifact:          repos.NewArtifactRepo(db, log),
		CreditTransaction: repos.NewCreditTransactionRepo(db, log),
	}
}
