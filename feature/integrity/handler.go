package integrity

import (
	"sound-sync/core/logger"

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
	group.Get("/files", h.HandleFilesCheck)
	group.Get("/orphans", h.HandleOrphansCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Verifies completed downloads against disk and reports unclaimed files. Hashes every completed segment, so this may take a while on large libraries.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if files, err := h.service.CheckFiles(ctx); err != nil {
		report["files"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["files"] = map[string]interface{}{"status": "ok", "report": files}
	}

	if orphans, err := h.service.CheckOrphans(ctx); err != nil {
		report["orphans"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["orphans"] = map[string]interface{}{"status": "ok", "report": orphans}
	}

	return c.JSON(report)
}

// HandleFilesCheck verifies completed downloads against disk.
// @Summary Verify Downloaded Files
// @Description Re-hashes every completed segment and reports missing or corrupted files.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.FilesReport "File report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/files [get]
func (h *Handler) HandleFilesCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckFiles(c.Context())
	if err != nil {
		l.Error("files check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}

// HandleOrphansCheck reports unclaimed files, optionally deleting them.
// @Summary Find Orphan Files
// @Description Lists files in the download directory no record claims. Pass ?fix=true to delete them.
// @Tags integrity
// @Produce json
// @Param fix query bool false "Delete the orphans"
// @Success 200 {object} checks.OrphanReport "Orphan report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/orphans [get]
func (h *Handler) HandleOrphansCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckOrphans(c.Context())
	if err != nil {
		l.Error("orphans check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if c.Query("fix") == "true" && len(report.Orphans) > 0 {
		l.Info("Deleting orphan files", zap.Int("count", len(report.Orphans)))
		if err := h.service.FixOrphans(c.Context(), report.Orphans); err != nil {
			l.Error("orphan cleanup failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}
	return c.JSON(report)
}
