package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/creatorflow/internal/models"
	"github.com/maheshrc27/creatorflow/internal/workspace"
)

type CalendarHandler struct {
	ws *workspace.Store
}

func NewCalendarHandler(ws *workspace.Store) *CalendarHandler {
	return &CalendarHandler{ws: ws}
}

type dayRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d dayRequest) key() models.DayKey {
	return models.DayKey{Year: d.Year, Month: d.Month, Day: d.Day}
}

func (h *CalendarHandler) ListEvents(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.ws.AllEvents())
}

func (h *CalendarHandler) AddEvent(c *fiber.Ctx) error {
	var req struct {
		dayRequest
		Platform string `json:"platform"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	platform, err := models.ParsePlatform(req.Platform)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown platform",
		})
	}

	id := h.ws.AddEvent(c.Context(), req.key(), platform)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *CalendarHandler) UpdateEvent(c *fiber.Ctx) error {
	var req struct {
		EventID string     `json:"event_id"`
		Old     dayRequest `json:"old"`
		New     dayRequest `json:"new"`
		Time    *string    `json:"time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	h.ws.UpdateEvent(c.Context(), req.Old.key(), req.EventID, req.New.key(), req.Time)
	return c.SendStatus(fiber.StatusOK)
}

func (h *CalendarHandler) DeleteEvent(c *fiber.Ctx) error {
	var req struct {
		EventID string `json:"event_id"`
		dayRequest
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	h.ws.DeleteEvent(c.Context(), req.key(), req.EventID)
	return c.SendStatus(fiber.StatusOK)
}

func (h *CalendarHandler) SchedulePost(c *fiber.Ctx) error {
	var req struct {
		PostID string `json:"post_id"`
		dayRequest
		Time string `json:"time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	h.ws.SchedulePost(c.Context(), req.PostID, req.key(), req.Time)
	return c.SendStatus(fiber.StatusOK)
}

// MarkFailed records a publish failure against a scheduled event; the
// resulting FailedPost feeds the retry flow.
func (h *CalendarHandler) MarkFailed(c *fiber.Ctx) error {
	var req struct {
		EventID string `json:"event_id"`
		dayRequest
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	h.ws.MarkEventFailed(c.Context(), req.EventID, req.key(), req.Reason)
	return c.SendStatus(fiber.StatusOK)
}

func (h *CalendarHandler) ClearEvents(c *fiber.Ctx) error {
	h.ws.ClearAllEvents(c.Context())
	return c.SendStatus(fiber.StatusOK)
}
