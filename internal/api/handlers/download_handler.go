package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/creatorflow/internal/service"
)

type DownloadHandler struct {
	s service.DownloadService
}

func NewDownloadHandler(s service.DownloadService) *DownloadHandler {
	return &DownloadHandler{s: s}
}

// FetchVideo resolves and downloads a short-video platform asset
// server-side. Each failure mode maps to its own client-facing error.
func (h *DownloadHandler) FetchVideo(c *fiber.Ctx) error {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	result, err := h.s.FetchVideo(c.Context(), req.URL)
	switch {
	case errors.Is(err, service.ErrMissingURL):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Video URL is required",
		})
	case errors.Is(err, service.ErrLookupFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Lookup service could not resolve the video",
		})
	case errors.Is(err, service.ErrNoPlayableLink):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "No playable link found for this video",
		})
	case errors.Is(err, service.ErrDownloadFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Video download failed",
		})
	case err != nil:
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to fetch video",
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
