package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"recipehub/internal/stores"
	"recipehub/pkg/database"
	"recipehub/pkg/logger"
	"recipehub/pkg/utils"
)

func main() {
	utils.LoadDotEnv()
	defer logger.Sync()
	log := logger.L()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	// Ensure schema exists
	if err := database.Migrate(db); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	seeded := stores.SeedStores()
	if err := stores.NewRepo(db).ReplaceAll(ctx, seeded); err != nil {
		log.Fatal("seed stores failed", zap.Error(err))
	}

	log.Info("stores seeded", zap.Int("count", len(seeded)), zap.String("db", cfg.Path))
}
