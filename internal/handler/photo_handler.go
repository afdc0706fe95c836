package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Charliemorrone/FittedAI/internal/photostore"
)

// PhotoHandler exposes the reference photo store.
type PhotoHandler struct {
	store *photostore.Store
}

func NewPhotoHandler(store *photostore.Store) *PhotoHandler {
	return &PhotoHandler{store: store}
}

type savePhotoRequest struct {
	URI string `json:"uri"`
}

// SavePhoto godoc
// PUT /api/v1/photos/:visitorId
func (h *PhotoHandler) SavePhoto(c fiber.Ctx) error {
	var req savePhotoRequest
	if err := c.Bind().Body(&req); err != nil || req.URI == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "photo URI is required",
		})
	}

	if err := h.store.Save(c.Context(), c.Params("visitorId"), req.URI); err != nil {
		slog.Error("failed to save reference photo", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save photo",
		})
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

// GetPhoto godoc
// GET /api/v1/photos/:visitorId
func (h *PhotoHandler) GetPhoto(c fiber.Ctx) error {
	uri, err := h.store.Get(c.Context(), c.Params("visitorId"))
	if err != nil {
		slog.Error("failed to read reference photo", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read photo",
		})
	}
	return c.JSON(fiber.Map{
		"uri":    uri,
		"exists": uri != "",
	})
}

// HasPhoto godoc
// HEAD /api/v1/photos/:visitorId
func (h *PhotoHandler) HasPhoto(c fiber.Ctx) error {
	exists, err := h.store.Exists(c.Context(), c.Params("visitorId"))
	if err != nil {
		slog.Error("failed to check reference photo", "error", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if !exists {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearPhoto godoc
// DELETE /api/v1/photos/:visitorId
func (h *PhotoHandler) ClearPhoto(c fiber.Ctx) error {
	if err := h.store.Clear(c.Context(), c.Params("visitorId")); err != nil {
		slog.Error("failed to clear reference photo", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to clear photo",
		})
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}
