package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"fleetmetrics/internal/http/middleware"
	"fleetmetrics/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Token issuance and health probes are open; everything else sits behind
// bearer authentication.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	jwtSecret string,
	authSvc service.AuthService,
	analyticsSvc service.AnalyticsService,
	docSvc service.DocumentService,
) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/token", IssueToken(authSvc))

	bearer := middleware.BearerAuth(jwtSecret)

	analytics := app.Group("/analytics", bearer)
	analytics.Get("/employees/growth", EmployeeGrowth(analyticsSvc))
	analytics.Get("/truckers/distribution", TruckerDistribution(analyticsSvc))
	analytics.Get("/business/impact", BusinessImpact(analyticsSvc))
	analytics.Get("/compliance", ComplianceSnapshot(analyticsSvc))

	documents := app.Group("/documents", bearer)
	documents.Post("/", CreateDocument(docSvc))
	documents.Get("/", ListDocuments(docSvc))
	documents.Get("/:id", GetDocument(docSvc))
	documents.Put("/:id", SetDocumentVerification(docSvc))
	documents.Post("/:id/file", UploadDocumentFile(docSvc))
	documents.Get("/:id/file", DownloadDocumentFile(docSvc))
}
