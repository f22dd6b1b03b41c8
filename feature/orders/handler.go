package orders

import (
	"errors"

	"order-features/core/dataset"
	"order-features/core/frame"
	"order-features/core/logger"
	"order-features/core/pipeline"
	"order-features/core/utils"
	"order-features/feature/orders/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for order features.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// TrainingResponse is the body of GET /orders/training.
type TrainingResponse struct {
	Rows    int                  `json:"rows"`
	Summary pipeline.Summary     `json:"summary"`
	Data    []models.TrainingRow `json:"data"`
}

// FeatureResponse is the body of GET /orders/features/{name}.
type FeatureResponse struct {
	Feature string                   `json:"feature"`
	Rows    int                      `json:"rows"`
	Data    []map[string]interface{} `json:"data"`
}

// RegisterRoutes registers the orders routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/orders")
	group.Get("/training", h.HandleTraining)
	group.Get("/features", h.HandleListFeatures)
	group.Get("/features/:name", h.HandleFeature)
}

// HandleTraining builds the training table.
// @Summary Build Training Data
// @Description Loads every table, derives all order features and joins them on order_id. Rows with any missing value are dropped.
// @Tags orders
// @Produce json
// @Param delivered query boolean false "Only delivered orders (default true)"
// @Param distance query boolean false "Include seller to customer distance (default false)"
// @Success 200 {object} TrainingResponse
// @Failure 422 {object} map[string]string "Dataset Mismatch"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /orders/training [get]
func (h *Handler) HandleTraining(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	delivered := utils.ToBool(c.Query("delivered"), true)
	distance := utils.ToBool(c.Query("distance"), false)

	res, err := h.service.Training(c.UserContext(), delivered, distance)
	if err != nil {
		l.Error("Training build failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	rows, err := models.FromFrame(res.Frame)
	if err != nil {
		l.Error("Training rows conversion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(TrainingResponse{Rows: len(rows), Summary: res.Summary, Data: rows})
}

// HandleListFeatures lists the available feature names.
// @Summary List Features
// @Tags orders
// @Produce json
// @Success 200 {array} string
// @Router /orders/features [get]
func (h *Handler) HandleListFeatures(c *fiber.Ctx) error {
	return c.JSON(Features)
}

// HandleFeature derives one feature table.
// @Summary Derive Feature
// @Description Derives a single per-order feature table without joining or dropping missing values.
// @Tags orders
// @Produce json
// @Param name path string true "Feature name"
// @Param delivered query boolean false "Only delivered orders, wait_time only (default true)"
// @Success 200 {object} FeatureResponse
// @Failure 404 {object} map[string]string "Unknown Feature"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /orders/features/{name} [get]
func (h *Handler) HandleFeature(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")
	delivered := utils.ToBool(c.Query("delivered"), true)

	res, err := h.service.Feature(c.UserContext(), name, delivered)
	if err != nil {
		l.Warn("Feature derivation failed", zap.String("feature", name), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(FeatureResponse{Feature: name, Rows: res.Frame.Nrow(), Data: frame.Records(res.Frame)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownFeature):
		return fiber.StatusNotFound
	case errors.Is(err, ErrShapeMismatch),
		errors.Is(err, dataset.ErrTableNotFound),
		errors.Is(err, frame.ErrColumnNotFound):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
