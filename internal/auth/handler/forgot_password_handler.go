package handler

import (
	"strconv"

	"github.com/SudarshanShah/MovieApi/internal/auth/dto"
	"github.com/SudarshanShah/MovieApi/internal/auth/service"
	autherror "github.com/SudarshanShah/MovieApi/internal/errors"
	"github.com/gofiber/fiber/v2"
)

type ForgotPasswordHandler struct {
	otpService *service.OTPService
}

func NewForgotPasswordHandler(otpService *service.OTPService) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{otpService: otpService}
}

func (h *ForgotPasswordHandler) VerifyMail(c *fiber.Ctx) error {
	email := c.Params("email")

	if err := h.otpService.RequestReset(c.Context(), email); err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Email sent for verification!",
	})
}

func (h *ForgotPasswordHandler) VerifyOTP(c *fiber.Ctx) error {
	otp, err := strconv.Atoi(c.Params("otp"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid OTP format"})
	}
	email := c.Params("email")

	if err := h.otpService.VerifyOTP(c.Context(), otp, email); err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "OTP verified!",
	})
}

func (h *ForgotPasswordHandler) ChangePassword(c *fiber.Ctx) error {
	var input dto.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}
	email := c.Params("email")

	if err := h.otpService.ChangePassword(c.Context(), email, input.Password, input.RepeatPassword); err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password has been changed!",
	})
}
