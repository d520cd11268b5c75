package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-admin/internal/api/dto"
	"github.com/spec-kit/directory-admin/internal/service"
	apperrors "github.com/spec-kit/directory-admin/pkg/util/errorutil"
)

// AdminUsersHandler exposes user listing, moderation and patch endpoints.
type AdminUsersHandler struct {
	moderation *service.ModerationService
	profiles   *service.ProfileMergeService
	stats      *service.DirectoryStatsService
}

// NewAdminUsersHandler constructs handler.
func NewAdminUsersHandler(moderation *service.ModerationService, profiles *service.ProfileMergeService, stats *service.DirectoryStatsService) *AdminUsersHandler {
	return &AdminUsersHandler{moderation: moderation, profiles: profiles, stats: stats}
}

// List handles GET /admin/users.
func (h *AdminUsersHandler) List(c *fiber.Ctx) error {
	listing, err := h.stats.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UserListResponse{
		Employers:  dto.NewUserResponses(listing.Employers),
		Applicants: dto.NewUserResponses(listing.Applicants),
	}})
}

// Summaries handles GET /admin/users/summary.
func (h *AdminUsersHandler) Summaries(c *fiber.Ctx) error {
	listing, err := h.stats.ListDirectory(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SummaryListResponse{
		Employers:  dto.NewSummaryResponses(listing.Employers),
		Applicants: dto.NewSummaryResponses(listing.Applicants),
	}})
}

// Patch handles PATCH /admin/users/:id.
func (h *AdminUsersHandler) Patch(c *fiber.Ctx) error {
	var req dto.PatchUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.profiles.ApplyPatch(c.UserContext(), c.Params("id"), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"data":    dto.NewUserResponse(user),
	})
}

// Delete handles DELETE /admin/users/:id.
func (h *AdminUsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.moderation.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// Ban handles POST /admin/users/:id/ban.
func (h *AdminUsersHandler) Ban(c *fiber.Ctx) error {
	id := c.Params("id")
	banned, err := h.moderation.Ban(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User has been banned successfully",
		"data":    dto.BanStateResponse{UserID: id, Banned: banned},
	})
}

// Unban handles POST /admin/users/:id/unban.
func (h *AdminUsersHandler) Unban(c *fiber.Ctx) error {
	id := c.Params("id")
	banned, err := h.moderation.Unban(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User has been unbanned successfully",
		"data":    dto.BanStateResponse{UserID: id, Banned: banned},
	})
}
