package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"groupie/internal/app"
	"groupie/internal/config"
	"groupie/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("groupie api stopped")
	}
}

func run(cfg config.Config, log *logrus.Logger) (err error) {
	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	api, cleanup, err := app.Bootstrap(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, cleanup())
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	served := make(chan error, 1)
	go func() {
		served <- api.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	log.WithFields(logrus.Fields{"addr": addr, "env": cfg.App.Environment}).Info("groupie api listening")

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return api.Fiber.ShutdownWithContext(shutdownCtx)
}
