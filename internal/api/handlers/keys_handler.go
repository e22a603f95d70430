package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/creatorflow/internal/service"
	"github.com/maheshrc27/creatorflow/internal/workspace"
)

type ApiKeyHandler struct {
	s  service.ApiKeyService
	ws *workspace.Store
}

func NewApiKeyHandler(s service.ApiKeyService, ws *workspace.Store) *ApiKeyHandler {
	return &ApiKeyHandler{s: s, ws: ws}
}

func (h *ApiKeyHandler) CreateApiKey(c *fiber.Ctx) error {
	var req struct {
		Label string `json:"label"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	key, err := h.s.Create(c.Context(), req.Label)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(key)
}

func (h *ApiKeyHandler) ListKeys(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.s.List(c.Context()))
}

func (h *ApiKeyHandler) RegenerateKey(c *fiber.Ctx) error {
	key, err := h.s.Regenerate(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(key)
}

func (h *ApiKeyHandler) RemoveAPIKey(c *fiber.Ctx) error {
	if err := h.s.Remove(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *ApiKeyHandler) KeyStats(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.s.Stats(c.Context()))
}

func (h *ApiKeyHandler) ListVideoProjects(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.ws.VideoProjects())
}

func (h *ApiKeyHandler) CreateVideoProject(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	id := h.ws.CreateVideoProject(c.Context(), req.Name)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *ApiKeyHandler) DeleteVideoProject(c *fiber.Ctx) error {
	h.ws.DeleteVideoProject(c.Context(), c.Params("id"))
	return c.SendStatus(fiber.StatusOK)
}
