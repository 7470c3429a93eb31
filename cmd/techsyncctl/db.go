package main

import (
	"context"
	"fmt"
	"time"

	"techsync/internal/config"
	"techsync/internal/database"
	dbpostgres "techsync/internal/database/postgres"
)

func connectDB(ctx context.Context) (database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return dbpostgres.Connect(ctx, cfg.Database)
}
