package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-admin/internal/api/dto"
	"github.com/spec-kit/directory-admin/internal/domain"
	"github.com/spec-kit/directory-admin/internal/service"
	apperrors "github.com/spec-kit/directory-admin/pkg/util/errorutil"
)

// VerificationHandler exposes identity-document review endpoints.
type VerificationHandler struct {
	verifications *service.VerificationService
}

// NewVerificationHandler constructs handler.
func NewVerificationHandler(verifications *service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verifications: verifications}
}

// SetStatus handles PUT /admin/verifications.
func (h *VerificationHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.VerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" || req.IsVerified == nil {
		return apperrors.NewValidationError("userId and isVerified required", nil)
	}

	user, err := h.verifications.SetVerificationStatus(c.UserContext(), req.UserID, req.Role, *req.IsVerified)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s verification status updated successfully", req.Role),
		"data":    dto.NewUserResponse(user),
	})
}

// ListSubmissions handles GET /admin/verifications/:role.
func (h *VerificationHandler) ListSubmissions(c *fiber.Ctx) error {
	role := c.Params("role")
	users, err := h.verifications.ListPendingVerifications(c.UserContext(), role)
	if err != nil {
		return err
	}

	items := make([]dto.PendingVerificationResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewPendingVerificationResponse(&users[i], domain.Role(role)))
	}
	return c.JSON(fiber.Map{"data": items})
}
