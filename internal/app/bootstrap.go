package app

import (
	"fmt"
	"strings"

	"groupie/internal/config"
	"groupie/internal/delivery/http/handler"
	"groupie/internal/delivery/http/middleware"
	"groupie/internal/delivery/http/routes"
	"groupie/internal/domain/reference"
	"groupie/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Log)
	registry(c).Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, log logrus.FieldLogger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, log logrus.FieldLogger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func registry(c *Container) *routes.Registry {
	authMw := middleware.NewAuthMiddleware(c.JWT)

	refs := make(map[reference.Kind]*handler.ReferenceHandler, len(reference.Kinds()))
	for _, k := range reference.Kinds() {
		refs[k] = handler.NewReferenceHandler(c.References, k)
	}

	var cachePinger handler.Pinger
	if c.Cache != nil {
		cachePinger = c.Cache
	}

	return &routes.Registry{
		Health:     handler.NewHealthHandler(c.DB, cachePinger),
		Auth:       handler.NewAuthHandler(c.Auth),
		Users:      handler.NewUserHandler(c.Users, c.Matches),
		Profiles:   handler.NewProfileHandler(c.Profiles),
		Matches:    handler.NewMatchHandler(c.Matches, authMw.Middleware()),
		References: refs,
		WS:         ws.NewHandler(c.Hub, c.JWT, c.Log),
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
