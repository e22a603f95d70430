package handlers

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/creatorflow/configs"
	"github.com/maheshrc27/creatorflow/internal/transfer"
	"github.com/maheshrc27/creatorflow/pkg/utils"
)

type AuthHandler struct {
	cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// Login exchanges the workspace password for a session cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if h.cfg.LoginPassword == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.LoginPassword)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid password",
		})
	}

	token, err := utils.GenerateToken(h.cfg.SecretKey, "1", 7*24*time.Hour)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create session",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged in",
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:   h.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	return c.SendStatus(fiber.StatusOK)
}
