package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/creatorflow/internal/service"
	"github.com/maheshrc27/creatorflow/internal/transfer"
	"github.com/maheshrc27/creatorflow/internal/workspace"
)

type MediaHandler struct {
	ws     *workspace.Store
	assets *service.AssetService
}

func NewMediaHandler(ws *workspace.Store, assets *service.AssetService) *MediaHandler {
	return &MediaHandler{ws: ws, assets: assets}
}

func (h *MediaHandler) ListMedia(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.ws.Media())
}

// ServeMedia streams a session media payload for preview.
func (h *MediaHandler) ServeMedia(c *fiber.Ctx) error {
	data, mimeType, ok := h.ws.MediaPayload(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Media doesn't exist",
		})
	}
	c.Set(fiber.HeaderContentType, mimeType)
	return c.Send(data)
}

func (h *MediaHandler) RemoveMedia(c *fiber.Ctx) error {
	h.ws.RemoveMedia(c.Params("id"))
	return c.SendStatus(fiber.StatusOK)
}

func (h *MediaHandler) GenerateImage(c *fiber.Ctx) error {
	var req struct {
		Prompt string `json:"prompt"`
		N      int    `json:"n"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	err := h.ws.GenerateImage(c.Context(), req.Prompt, req.N)
	return mediaWorkflowStatus(c, err)
}

func (h *MediaHandler) GenerateVideo(c *fiber.Ctx) error {
	var req transfer.VideoJobSpec
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	err := h.ws.GenerateVideo(c.Context(), req)
	return mediaWorkflowStatus(c, err)
}

func mediaWorkflowStatus(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, workspace.ErrNoSelection):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No post is selected",
		})
	case errors.Is(err, workspace.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A generation is already in flight",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

// ExportMedia uploads a session media file to R2 so it outlives the
// session.
func (h *MediaHandler) ExportMedia(c *fiber.Ctx) error {
	if h.assets == nil || !h.assets.Enabled() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Asset storage is not configured",
		})
	}

	id := c.Params("id")
	data, mimeType, ok := h.ws.MediaPayload(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Media doesn't exist",
		})
	}

	url, err := h.assets.Upload(c.Context(), id, data, mimeType)
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to export media",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": url})
}
