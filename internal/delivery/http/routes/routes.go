package routes

import (
	"groupie/internal/delivery/http/handler"
	"groupie/internal/domain/reference"

	"github.com/gofiber/fiber/v3"
)

// Registry mounts every HTTP and WebSocket handler on the app.
type Registry struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Profiles   *handler.ProfileHandler
	Matches    *handler.MatchHandler
	References map[reference.Kind]*handler.ReferenceHandler

	// WS registers /ws/matches at the root.
	WS interface{ RegisterRoutes(r fiber.Router) }
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	if r.WS != nil {
		r.WS.RegisterRoutes(app)
	}
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")

	users := api.Group("/users")
	// auth paths are literal, so they go before /:id
	if r.Auth != nil {
		r.Auth.RegisterRoutes(users)
	}
	if r.Users != nil {
		r.Users.RegisterRoutes(users)
	}
	if r.Profiles != nil {
		r.Profiles.RegisterRoutes(api.Group("/profiles"))
	}
	if r.Matches != nil {
		r.Matches.RegisterRoutes(api.Group("/matches"))
	}

	for _, k := range reference.Kinds() {
		if h, ok := r.References[k]; ok && h != nil {
			h.RegisterRoutes(api.Group("/" + k.RoutePath()))
		}
	}
}
