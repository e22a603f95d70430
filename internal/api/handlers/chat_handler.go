package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/creatorflow/internal/models"
	"github.com/maheshrc27/creatorflow/internal/workspace"
)

type ChatHandler struct {
	ws *workspace.Store
}

func NewChatHandler(ws *workspace.Store) *ChatHandler {
	return &ChatHandler{ws: ws}
}

func (h *ChatHandler) Transcript(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.ws.ChatMessages())
}

func (h *ChatHandler) Submit(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	err := h.ws.SubmitChat(c.Context(), req.Message)
	switch {
	case errors.Is(err, workspace.ErrEmptyMessage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message cannot be empty",
		})
	case errors.Is(err, workspace.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A chat request is already in flight",
		})
	}

	return c.Status(fiber.StatusOK).JSON(h.ws.ChatMessages())
}

func (h *ChatHandler) Generate(c *fiber.Ctx) error {
	var req struct {
		SourceID  string                   `json:"source_id"`
		Platforms []models.PlatformRequest `json:"platforms"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if req.SourceID != "" {
		h.ws.SetActiveSource(req.SourceID)
	}

	err := h.ws.GenerateFromSource(c.Context(), req.Platforms)
	switch {
	case errors.Is(err, workspace.ErrNoActiveSource):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No source selected",
		})
	case errors.Is(err, workspace.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A generation run is already in flight",
		})
	}

	return c.Status(fiber.StatusOK).JSON(h.ws.ChatMessages())
}
