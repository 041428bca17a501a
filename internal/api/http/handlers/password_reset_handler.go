package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/service"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// PasswordResetHandler exposes the reset-link flow.
type PasswordResetHandler struct {
	resets *service.PasswordResetService
}

// NewPasswordResetHandler constructs handler.
func NewPasswordResetHandler(resetService *service.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resets: resetService}
}

// RequestReset handles POST /password-reset/. The reset link travels only
// through the mail channel; the response is a generic acknowledgment.
func (h *PasswordResetHandler) RequestReset(c *fiber.Ctx) error {
	var req dto.ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	meta := service.ResetRequestMeta{
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
	if err := h.resets.RequestReset(c.Context(), req.Email, meta); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "password reset link sent"})
}

// UpdatePassword handles POST /password-reset/updatePassword.
func (h *PasswordResetHandler) UpdatePassword(c *fiber.Ctx) error {
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.UserID == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token, userId, newPassword required", nil)
	}

	if err := h.resets.ConsumeReset(c.Context(), req.UserID, req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}
