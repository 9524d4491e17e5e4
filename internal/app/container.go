package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"groupie/internal/config"
	"groupie/internal/database"
	"groupie/internal/database/migration"
	dbpostgres "groupie/internal/database/postgres"
	"groupie/internal/database/seeder"
	"groupie/internal/infrastructure/cache"
	"groupie/internal/pkg/jwt"
	"groupie/internal/repository"
	"groupie/internal/usecase"
	"groupie/internal/ws"
	"groupie/migrations"

	"github.com/sirupsen/logrus"
)

// Container owns the long-lived dependencies of the server process.
type Container struct {
	Config config.Config
	Log    logrus.FieldLogger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   jwt.Service

	References usecase.ReferenceUsecase
	Auth       usecase.AuthUsecase
	Users      usecase.UserUsecase
	Profiles   usecase.ProfileUsecase
	Matches    usecase.MatchUsecase
}

func NewContainer(cfg config.Config, log logrus.FieldLogger) (*Container, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := Prepare(ctx, cfg, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	return Assemble(cfg, db, cache.NewRedis(cfg.Redis, log), log), nil
}

// Assemble builds repositories, use cases and the notification hub on top of
// an already prepared database. The hub is started before returning.
func Assemble(cfg config.Config, db database.DB, redis *cache.Redis, log logrus.FieldLogger) *Container {
	if log == nil {
		log = logrus.StandardLogger()
	}

	c := &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Cache:  redis,
		Hub:    ws.NewHub(log),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
	}
	go c.Hub.Run()

	users := repository.NewPostgresUserRepository(db, log)
	profiles := repository.NewPostgresProfileRepository(db, log)
	matches := repository.NewPostgresMatchRepository(db, log)
	refs := repository.NewPostgresReferenceRepository(db, log)

	profileUC := usecase.NewProfileUsecase(profiles, refs, log)

	c.References = usecase.NewReferenceUsecase(refs, c.Cache, log)
	c.Auth = usecase.NewAuthUsecase(users, c.JWT, cfg.JWT.BcryptCost)
	c.Users = usecase.NewUserUsecase(users, cfg.JWT.BcryptCost)
	c.Profiles = profileUC
	c.Matches = usecase.NewMatchUsecase(matches, users, profiles, profileUC, ws.NewMatchNotifier(c.Hub), log)

	return c
}

// Prepare applies pending migrations and, when enabled, the lookup seeds.
func Prepare(ctx context.Context, cfg config.Config, db database.DB, log logrus.FieldLogger) error {
	runner := migration.Runner{FS: migrations.Files, Logger: log}
	if cfg.App.MigrationsDir != "" {
		runner = migration.Runner{Dir: cfg.App.MigrationsDir, Logger: log}
	}

	res, err := runner.Run(ctx, db.SQLDB())
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.WithFields(logrus.Fields{
		"applied": len(res.Applied),
		"skipped": res.Skipped,
	}).Info("migrations done")

	if !cfg.App.SeedOnStart {
		return nil
	}
	return seeder.Runner{Seeders: seeder.Defaults(), Logger: log}.Run(ctx, db)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
