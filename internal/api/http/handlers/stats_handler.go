package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-admin/internal/api/dto"
	"github.com/spec-kit/directory-admin/internal/service"
)

// StatsHandler exposes population statistics.
type StatsHandler struct {
	stats *service.DirectoryStatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(stats *service.DirectoryStatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Counts handles GET /admin/stats/counts.
func (h *StatsHandler) Counts(c *fiber.Ctx) error {
	counts, err := h.stats.CountsByRole(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CountsResponse{
		TotalUsers:      counts.TotalUsers,
		TotalEmployers:  counts.EmployerCount,
		TotalApplicants: counts.ApplicantCount,
	}})
}

// Percentages handles GET /admin/stats/percentages.
func (h *StatsHandler) Percentages(c *fiber.Ctx) error {
	pct, err := h.stats.PercentagesByRole(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PercentagesResponse{
		TotalUsers:          pct.TotalUsers,
		ApplicantPercentage: pct.ApplicantPercentage,
		EmployerPercentage:  pct.EmployerPercentage,
	}})
}

// Population handles GET /admin/stats/population.
func (h *StatsHandler) Population(c *fiber.Ctx) error {
	total, err := h.stats.PopulationTotal(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"totalUsers": total}})
}
