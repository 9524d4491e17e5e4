package handler

import (
	"strconv"
	"strings"

	"groupie/internal/delivery/http/dto"
	"groupie/internal/pkg/response"
	"groupie/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/user/:user_id", h.GetByUser)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *ProfileHandler) List(c fiber.Ctx) error {
	var exclude int64
	if raw := strings.TrimSpace(c.Query("exclude_user_id")); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return badRequest("Invalid exclude_user_id", err)
		}
		exclude = v
	}

	items, err := h.uc.List(c.Context(), exclude)
	if err != nil {
		return mapError(err)
	}
	return response.OK(c, dto.NewProfileListResponse(items))
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapError(err)
	}
	return response.OK(c, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) GetByUser(c fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}
	p, err := h.uc.GetByUserID(c.Context(), userID)
	if err != nil {
		return mapError(err)
	}
	return response.OK(c, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) Create(c fiber.Ctx) error {
	var req dto.CreateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	p, err := h.uc.Create(c.Context(), req.ToProfile())
	if err != nil {
		return mapError(err)
	}
	return response.Created(c, "Profile created", dto.NewProfileRecordResponse(p))
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	p, err := h.uc.Update(c.Context(), id, req.ToPatch())
	if err != nil {
		return mapError(err)
	}
	return response.Send(c, fiber.StatusOK, "Profile updated", dto.NewProfileRecordResponse(p))
}

func (h *ProfileHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapError(err)
	}
	return response.Send(c, fiber.StatusOK, "Profile deleted", nil)
}
