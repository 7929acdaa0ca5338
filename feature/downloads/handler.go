package downloads

import (
	"sound-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for download records.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the downloads routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/downloads")
	group.Get("/", h.HandleList)
}

// HandleList returns the download records.
// @Summary List downloads
// @Description List the local download records with their status and stored hash.
// @Tags downloads
// @Produce json
// @Success 200 {array} DownloadRow "Download records"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /downloads [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	rows, err := h.service.List(c.Context())
	if err != nil {
		l.Error("downloads list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(rows)
}
