package handler

import (
	"groupie/internal/delivery/http/dto"
	"groupie/internal/pkg/response"
	"groupie/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc      usecase.UserUsecase
	matches usecase.MatchUsecase
}

func NewUserHandler(uc usecase.UserUsecase, matches usecase.MatchUsecase) *UserHandler {
	return &UserHandler{uc: uc, matches: matches}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Get("/:id/matches", h.Matches)
}

func (h *UserHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapError(err)
	}
	return response.OK(c, dto.NewUserResponse(u, nil))
}

func (h *UserHandler) Create(c fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	in, err := req.ToNewUser()
	if err != nil {
		return mapError(err)
	}

	u, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapError(err)
	}
	return response.Created(c, "User created", dto.NewUserResponse(u, nil))
}

func (h *UserHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	patch, err := req.ToPatch()
	if err != nil {
		return mapError(err)
	}

	u, err := h.uc.Update(c.Context(), id, patch)
	if err != nil {
		return mapError(err)
	}
	return response.Send(c, fiber.StatusOK, "User updated", dto.NewUserResponse(u, nil))
}

func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapError(err)
	}
	return response.Send(c, fiber.StatusOK, "User deleted", nil)
}

// Matches lists the user's mutual matches.
func (h *UserHandler) Matches(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.matches.MutualMatches(c.Context(), id)
	if err != nil {
		return mapError(err)
	}
	return response.OK(c, dto.NewMutualMatchListResponse(items))
}
