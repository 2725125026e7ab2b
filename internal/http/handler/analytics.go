package handler

import (
	"github.com/gofiber/fiber/v2"

	"fleetmetrics/internal/service"
)

// EmployeeGrowth handles GET /analytics/employees/growth.
func EmployeeGrowth(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.EmployeeGrowth(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// TruckerDistribution handles GET /analytics/truckers/distribution.
func TruckerDistribution(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.TruckerDistribution(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// BusinessImpact handles GET /analytics/business/impact.
func BusinessImpact(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.BusinessImpact(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// ComplianceSnapshot handles GET /analytics/compliance.
func ComplianceSnapshot(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ComplianceSnapshot(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
