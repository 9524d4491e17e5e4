package main

import (
	"context"
	"flag"
	"time"

	"groupie/internal/app"
	"groupie/internal/config"
	dbpostgres "groupie/internal/database/postgres"
	"groupie/internal/infrastructure/cache"
	"groupie/internal/pkg/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	seed := flag.Bool("seed", true, "insert default lookup rows after migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	cfg.App.SeedOnStart = *seed
	log := logger.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	defer db.Close()

	if err := app.Prepare(ctx, cfg, db, log); err != nil {
		log.WithError(err).Fatal("failed to prepare database")
	}

	// seeded rows change the lookup lists the API serves from Redis
	rc := cache.NewRedis(cfg.Redis, log)
	defer rc.Close()
	if err := rc.DeleteByPattern(ctx, "ref:*"); err != nil {
		log.WithError(err).Warn("failed to flush reference cache")
	}
	log.Info("database ready")
}
