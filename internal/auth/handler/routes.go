package handler

import (
	"github.com/SudarshanShah/MovieApi/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, auth *AuthHandler, forgot *ForgotPasswordHandler, mailH *MailHandler) {
	api := app.Group("/api/v1/auth")
	api.Post("/register", auth.Register)
	api.Post("/login", auth.Login)
	api.Post("/refresh", auth.Refresh)

	fp := app.Group("/forgotPassword")
	fp.Post("/verifyMail/:email", forgot.VerifyMail)
	fp.Post("/verifyOtp/:otp/:email", forgot.VerifyOTP)
	fp.Post("/changePassword/:email", forgot.ChangePassword)

	// Admin-only endpoint
	app.Post("/mail/sendmail", RequireRole(constant.RoleAdmin), mailH.SendMail)
}
