package handler

import (
	"strconv"
	"strings"

	"groupie/internal/delivery/http/dto"
	"groupie/internal/domain/reference"
	"groupie/internal/pkg/response"
	"groupie/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// ReferenceHandler serves one lookup kind; the same handler type is mounted
// once per kind.
type ReferenceHandler struct {
	uc   usecase.ReferenceUsecase
	kind reference.Kind
}

func NewReferenceHandler(uc usecase.ReferenceUsecase, kind reference.Kind) *ReferenceHandler {
	return &ReferenceHandler{uc: uc, kind: kind}
}

func (h *ReferenceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/id/:id", h.GetByID)
	r.Get("/name/:name", h.GetByName)
	r.Get("/:key", h.GetByKey)
	r.Post("/", h.Create)
	r.Post("/create", h.Create)
	r.Put("/", h.Rename)
	r.Put("/:key", h.UpdateByKey)
	r.Delete("/:key", h.DeleteByKey)
}

func (h *ReferenceHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), h.kind)
	if err != nil {
		return mapError(err)
	}
	return response.OK(c, dto.NewReferenceListResponse(items))
}

func (h *ReferenceHandler) GetByID(c fiber.Ctx) error {
	id, err := lookupParamID(c, "id")
	if err != nil {
		return err
	}
	return h.respondItem(c, func() (reference.Item, error) { return h.uc.GetByID(c.Context(), h.kind, id) })
}

func (h *ReferenceHandler) GetByName(c fiber.Ctx) error {
	name := c.Params("name")
	return h.respondItem(c, func() (reference.Item, error) { return h.uc.Get(c.Context(), h.kind, name) })
}

// GetByKey treats an all-digit key as an id and anything else as a name.
func (h *ReferenceHandler) GetByKey(c fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("key"))
	if id, ok := keyID(key); ok {
		return h.respondItem(c, func() (reference.Item, error) { return h.uc.GetByID(c.Context(), h.kind, id) })
	}
	return h.respondItem(c, func() (reference.Item, error) { return h.uc.Get(c.Context(), h.kind, key) })
}

func (h *ReferenceHandler) Create(c fiber.Ctx) error {
	var req dto.CreateReferenceRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	it, err := h.uc.Create(c.Context(), h.kind, req.Name)
	if err != nil {
		return mapError(err)
	}
	return response.Created(c, h.kind.Label()+" created", dto.NewReferenceResponse(it))
}

func (h *ReferenceHandler) Rename(c fiber.Ctx) error {
	var req dto.RenameReferenceRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	it, err := h.uc.Update(c.Context(), h.kind, req.CurrentName, req.NewName)
	if err != nil {
		return mapError(err)
	}
	return response.Send(c, fiber.StatusOK, h.kind.Label()+" updated", dto.NewReferenceResponse(it))
}

func (h *ReferenceHandler) UpdateByKey(c fiber.Ctx) error {
	var req dto.UpdateReferenceRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	key := strings.TrimSpace(c.Params("key"))
	var (
		it  reference.Item
		err error
	)
	if id, ok := keyID(key); ok {
		it, err = h.uc.UpdateByID(c.Context(), h.kind, id, req.NewName)
	} else {
		it, err = h.uc.Update(c.Context(), h.kind, key, req.NewName)
	}
	if err != nil {
		return mapError(err)
	}
	return response.Send(c, fiber.StatusOK, h.kind.Label()+" updated", dto.NewReferenceResponse(it))
}

func (h *ReferenceHandler) DeleteByKey(c fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("key"))
	var (
		msg string
		err error
	)
	if id, ok := keyID(key); ok {
		msg, err = h.uc.DeleteByID(c.Context(), h.kind, id)
	} else {
		msg, err = h.uc.Delete(c.Context(), h.kind, key)
	}
	if err != nil {
		return mapError(err)
	}
	return response.Send(c, fiber.StatusOK, msg, nil)
}

func (h *ReferenceHandler) respondItem(c fiber.Ctx, get func() (reference.Item, error)) error {
	it, err := get()
	if err != nil {
		return mapError(err)
	}
	return response.OK(c, dto.NewReferenceResponse(it))
}

func keyID(key string) (int64, bool) {
	if !isDigits(key) {
		return 0, false
	}
	id, err := strconv.ParseInt(key, 10, 64)
	return id, err == nil
}
