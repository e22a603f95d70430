package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/creatorflow/internal/models"
	"github.com/maheshrc27/creatorflow/internal/workspace"
)

type PostHandler struct {
	ws *workspace.Store
}

func NewPostHandler(ws *workspace.Store) *PostHandler {
	return &PostHandler{ws: ws}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var req struct {
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

	id := h.ws.CreatePost(c.Context(), platform)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	posts := h.ws.Posts()
	out := make([]fiber.Map, 0, len(posts))
	for _, p := range posts {
		out = append(out, fiber.Map{
			"id":       p.ID,
			"platform": p.Platform,
			"content":  h.ws.Content(p.ID),
			"selected": p.ID == h.ws.SelectedID(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *PostHandler) SelectPost(c *fiber.Ctx) error {
	h.ws.SelectPost(c.Params("id"))
	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) UpdateContent(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	h.ws.UpdatePostContent(c.Context(), c.Params("id"), req.Content)
	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) ClonePost(c *fiber.Ctx) error {
	id := h.ws.ClonePost(c.Context(), c.Params("id"))
	if id == workspace.NoSelection {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post doesn't exist",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	h.ws.DeletePost(c.Context(), c.Params("id"))
	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) SaveDraft(c *fiber.Ctx) error {
	h.ws.SaveDraft(c.Context(), c.Params("id"))
	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) PublishPost(c *fiber.Ctx) error {
	h.ws.PublishPost(c.Context(), c.Params("id"))
	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) ListDrafts(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.ws.FilterDrafts(
		c.Query("search"),
		c.Query("platform", workspace.PlatformFilterAll),
		c.Query("order", workspace.OrderNewest),
	))
}

func (h *PostHandler) EditDraft(c *fiber.Ctx) error {
	id := h.ws.EditDraft(c.Context(), c.Params("id"))
	if id == workspace.NoSelection {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Draft doesn't exist",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *PostHandler) DeleteDraft(c *fiber.Ctx) error {
	h.ws.DeleteDraft(c.Context(), c.Params("id"))
	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) PublishDraft(c *fiber.Ctx) error {
	h.ws.PublishDraft(c.Context(), c.Params("id"))
	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) ListPublished(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.ws.FilterPublished(
		c.Query("search"),
		c.Query("platform", workspace.PlatformFilterAll),
		c.Query("order", workspace.OrderNewest),
	))
}

func (h *PostHandler) ListFailed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.ws.Failed())
}

func (h *PostHandler) RetryFailed(c *fiber.Ctx) error {
	h.ws.RetryFailed(c.Context(), c.Params("id"))
	return c.SendStatus(fiber.StatusOK)
}
