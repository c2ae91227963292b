package handler

import (
	"github.com/SudarshanShah/MovieApi/internal/auth/dto"
	"github.com/SudarshanShah/MovieApi/internal/mail"
	"github.com/gofiber/fiber/v2"
)

type MailHandler struct {
	mailer mail.Mailer
}

func NewMailHandler(mailer mail.Mailer) *MailHandler {
	return &MailHandler{mailer: mailer}
}

func (h *MailHandler) SendMail(c *fiber.Ctx) error {
	var body dto.MailBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if body.To == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "recipient is required"})
	}

	if err := h.mailer.Send(body.To, body.Subject, body.Text); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to send email"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Email is sent!"})
}
