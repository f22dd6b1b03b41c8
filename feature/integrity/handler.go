package integrity

import (
	"order-features/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/tables", h.HandleTablesCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/reviews", h.HandleReviewsCheck)
	group.Get("/bucket", h.HandleBucketCheck)
	group.Get("/export", h.HandleExportCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs every available check (Tables, Schema, Reviews, Bucket, Export). Bucket and Export only run when storage and database are configured.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")
	return c.JSON(h.service.Report(c.UserContext()))
}

// HandleTablesCheck checks that every required table is present.
// @Summary Check Tables
// @Description Lists the required tables the dataset source does not provide.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Tables Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/tables [get]
func (h *Handler) HandleTablesCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	missing, err := h.service.CheckTables(c.UserContext())
	if err != nil {
		l.Error("Tables check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(missing) > 0 {
		l.Warn("Missing tables detected", zap.Strings("missing", missing))
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleSchemaCheck checks the columns of every required table.
// @Summary Check Schema
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema(c.UserContext())
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleReviewsCheck compares the reviews table with the expected dataset release.
// @Summary Check Reviews Shape
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.ShapeReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/reviews [get]
func (h *Handler) HandleReviewsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckReviews(c.UserContext())
	if err != nil {
		l.Error("Reviews check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleBucketCheck lists the dataset objects in the bucket.
// @Summary Check Bucket
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.BucketReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/bucket [get]
func (h *Handler) HandleBucketCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckBucket(c.UserContext())
	if err != nil {
		l.Error("Bucket check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleExportCheck verifies the export table schema.
// @Summary Check Export Table
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.ExportReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/export [get]
func (h *Handler) HandleExportCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckExport()
	if err != nil {
		l.Error("Export check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
