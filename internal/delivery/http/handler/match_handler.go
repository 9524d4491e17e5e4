package handler

import (
	"groupie/internal/delivery/http/dto"
	"groupie/internal/delivery/http/middleware"
	"groupie/internal/domain/match"
	"groupie/internal/pkg/response"
	"groupie/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc   usecase.MatchUsecase
	auth fiber.Handler
}

// NewMatchHandler takes the access token middleware that guards swiping.
func NewMatchHandler(uc usecase.MatchUsecase, auth fiber.Handler) *MatchHandler {
	return &MatchHandler{uc: uc, auth: auth}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/create", h.Create)
	if h.auth != nil {
		r.Post("/swipe", h.auth, h.Swipe)
	}
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *MatchHandler) List(c fiber.Ctx) error {
	items, err := h.uc.GetAll(c.Context())
	if err != nil {
		return mapError(err)
	}
	return response.OK(c, dto.NewMatchListResponse(items))
}

func (h *MatchHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	m, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapError(err)
	}
	return response.OK(c, dto.NewMatchResponse(m))
}

func (h *MatchHandler) Create(c fiber.Ctx) error {
	var req dto.CreateMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	m, err := h.uc.Create(c.Context(), req.UserIDOne, req.UserIDTwo, req.Status)
	if err != nil {
		return mapError(err)
	}
	return response.Created(c, "Match created", dto.NewMatchResponse(m))
}

func (h *MatchHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	m, err := h.uc.Update(c.Context(), id, req.ToPatch())
	if err != nil {
		return mapError(err)
	}
	if m == nil {
		return badRequest("No updates provided", nil)
	}
	return response.Send(c, fiber.StatusOK, "Match updated", dto.NewMatchResponse(*m))
}

func (h *MatchHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapError(err)
	}
	return response.Send(c, fiber.StatusOK, "Match deleted", nil)
}

// Swipe applies a like or dislike from the authenticated user.
func (h *MatchHandler) Swipe(c fiber.Ctx) error {
	actor, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.SwipeRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	if req.TargetUserID <= 0 {
		return badRequest("Missing required fields: target_user_id", nil)
	}
	action, err := match.ParseAction(req.Action)
	if err != nil {
		return badRequest("Action must be 'like' or 'dislike'.", err)
	}

	res, err := h.uc.Swipe(c.Context(), actor, req.TargetUserID, action)
	if err != nil {
		return mapError(err)
	}

	msg := "Swipe recorded"
	if res.BecameMatched {
		msg = "It's a match!"
	}
	return response.Send(c, fiber.StatusOK, msg, dto.NewSwipeResponse(res))
}
