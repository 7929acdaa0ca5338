package library

import (
	"sound-sync/core/logger"
	libsync "sound-sync/core/sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the desired-set library.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/library")
	group.Get("/", h.HandleList)
	group.Put("/:id", h.HandleAdd)
	group.Delete("/:id", h.HandleRemove)
}

// HandleList returns the desired content set.
// @Summary List library
// @Description List the content IDs marked for offline availability.
// @Tags library
// @Produce json
// @Success 200 {array} string "Content IDs"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	ids, err := h.store.Get(c.Context())
	if err != nil {
		l.Error("library list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(ids)
}

// HandleAdd marks a content ID for offline availability.
// @Summary Add to library
// @Description Mark a content ID for offline availability. Triggers an expedited sync if the set changed.
// @Tags library
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} map[string]bool "added: whether the set changed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library/{id} [put]
func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	id := libsync.ContentID(c.Params("id"))

	added, err := h.store.Add(c.Context(), id)
	if err != nil {
		l.Error("library add failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"added": added})
}

// HandleRemove unmarks a content ID.
// @Summary Remove from library
// @Description Unmark a content ID. Its local downloads are removed by the next sync pass.
// @Tags library
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} map[string]bool "removed: whether the set changed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library/{id} [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	id := libsync.ContentID(c.Params("id"))

	removed, err := h.store.Remove(c.Context(), id)
	if err != nil {
		l.Error("library remove failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"removed": removed})
}
