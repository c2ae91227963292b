package handler

import (
	"github.com/SudarshanShah/MovieApi/internal/auth/dto"
	"github.com/SudarshanShah/MovieApi/internal/auth/service"
	autherror "github.com/SudarshanShah/MovieApi/internal/errors"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if input.Name == "" || input.Username == "" || input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name, username, email and password are required",
		})
	}

	resp, err := h.userService.Register(c.Context(), input)
	if err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	resp, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	resp, err := h.userService.Refresh(c.Context(), input)
	if err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
