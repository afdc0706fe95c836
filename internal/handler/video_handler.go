package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Charliemorrone/FittedAI/internal/veo"
)

// maxWaitDuration bounds blocking status polls.
const maxWaitDuration = 60 * time.Second

// VideoHandler exposes outfit video generation.
type VideoHandler struct {
	client *veo.Client
}

func NewVideoHandler(client *veo.Client) *VideoHandler {
	return &VideoHandler{client: client}
}

// GenerateVideo godoc
// POST /api/v1/videos
func (h *VideoHandler) GenerateVideo(c fiber.Ctx) error {
	if !h.client.Configured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "video generation is not configured",
		})
	}

	var req veo.VideoRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid video request payload",
		})
	}

	resp, err := h.client.Generate(c.Context(), req)
	if err != nil {
		slog.Error("failed to submit video generation", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "video generation failed",
		})
	}
	return c.Status(fiber.StatusAccepted).JSON(resp)
}

// GetVideoStatus godoc
// GET /api/v1/videos/:id
// With ?wait=true the request blocks, polling until the job reaches a
// terminal status or the wait window runs out.
func (h *VideoHandler) GetVideoStatus(c fiber.Ctx) error {
	if !h.client.Configured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "video generation is not configured",
		})
	}

	var resp *veo.VideoResponse
	var err error
	if fiber.Query(c, "wait", false) {
		ctx, cancel := context.WithTimeout(c.Context(), maxWaitDuration)
		defer cancel()
		resp, err = h.client.Poll(ctx, c.Params("id"))
	} else {
		resp, err = h.client.GetStatus(c.Context(), c.Params("id"))
	}
	if err != nil {
		slog.Error("failed to fetch video status", "video_id", c.Params("id"), "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to fetch video status",
		})
	}
	return c.JSON(resp)
}
