package status

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	libsync "sound-sync/core/sync"
)

// Response is the JSON body for the status endpoint.
type Response struct {
	ReportedAt time.Time           `json:"reported_at"`
	Report     *libsync.PassReport `json:"report"`
}

// Handler handles HTTP requests for sync status.
type Handler struct {
	reporter *Reporter
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(reporter *Reporter, logger *zap.Logger) *Handler {
	return &Handler{reporter: reporter, logger: logger}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/status")
	group.Get("/", h.HandleGet)
}

// HandleGet returns the last reconciliation pass report.
// @Summary Sync status
// @Description Return the report of the most recent reconciliation pass.
// @Tags status
// @Produce json
// @Success 200 {object} Response "Last pass report"
// @Failure 404 {object} map[string]string "No pass has completed yet"
// @Router /status [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	report, at := h.reporter.Snapshot()
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no reconciliation pass has completed yet",
		})
	}
	return c.JSON(Response{ReportedAt: at, Report: report})
}
