package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/creatorflow/internal/models"
	"github.com/maheshrc27/creatorflow/internal/workspace"
)

type SourceHandler struct {
	ws *workspace.Store
}

func NewSourceHandler(ws *workspace.Store) *SourceHandler {
	return &SourceHandler{ws: ws}
}

func (h *SourceHandler) ListSources(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.ws.Sources())
}

func (h *SourceHandler) AddSource(c *fiber.Ctx) error {
	var req struct {
		Type  string `json:"type"`
		Value string `json:"value"`
		Label string `json:"label"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}
	if req.Value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Source value cannot be empty",
		})
	}

	id := h.ws.AddSource(c.Context(), models.SourceType(req.Type), req.Value, req.Label)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *SourceHandler) DeleteSource(c *fiber.Ctx) error {
	h.ws.DeleteSource(c.Context(), c.Params("id"))
	return c.SendStatus(fiber.StatusOK)
}
