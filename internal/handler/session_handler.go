package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Charliemorrone/FittedAI/internal/graywhale"
	"github.com/Charliemorrone/FittedAI/internal/models"
	"github.com/Charliemorrone/FittedAI/internal/purchase"
	"github.com/Charliemorrone/FittedAI/internal/repository"
	"github.com/Charliemorrone/FittedAI/internal/session"
)

// SessionHandler exposes the swipe session flow over HTTP: create a session
// from preferences, swipe through the batch, view the purchase aggregate.
type SessionHandler struct {
	manager *session.Manager
	feed    *graywhale.Client
	repo    *repository.SwipeRepository
}

func NewSessionHandler(manager *session.Manager, feed *graywhale.Client, repo *repository.SwipeRepository) *SessionHandler {
	return &SessionHandler{manager: manager, feed: feed, repo: repo}
}

// Health godoc
// GET /health
func (h *SessionHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "outfit-service",
	})
}

// CreateSession godoc
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c fiber.Ctx) error {
	var prefs models.UserPreferences
	if err := c.Bind().Body(&prefs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid preferences payload",
		})
	}

	// Each ask is a fresh recommendation sequence on the feed side.
	h.feed.StartNewSession()

	s, err := h.manager.Create(c.Context(), prefs)
	if err != nil {
		slog.Error("failed to create swipe session", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to resolve recommendations",
		})
	}

	current, _ := s.Current()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": s.ID(),
		"tier":       s.Tier(),
		"state":      s.State(),
		"batch":      s.Batch(),
		"current":    current,
	})
}

// GetSession godoc
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c fiber.Ctx) error {
	s, ok := h.manager.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
		})
	}

	current, hasCurrent := s.Current()
	resp := fiber.Map{
		"session_id": s.ID(),
		"tier":       s.Tier(),
		"state":      s.State(),
		"index":      s.Index(),
	}
	if hasCurrent {
		resp["current"] = current
	}
	return c.JSON(resp)
}

type swipeRequest struct {
	Direction string `json:"direction"`
}

// Swipe godoc
// POST /api/v1/sessions/:id/swipes
func (h *SessionHandler) Swipe(c fiber.Ctx) error {
	s, ok := h.manager.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
		})
	}

	var req swipeRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid swipe payload",
		})
	}
	if req.Direction != "left" && req.Direction != "right" &&
		req.Direction != models.ActionLike && req.Direction != models.ActionDislike {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "direction must be left, right, like or dislike",
		})
	}

	swiped, _ := s.Current()
	outcome := s.Swipe(req.Direction)
	state := s.State()
	if !outcome.Ignored {
		state = s.CompleteSwipe(c.Context())

		// Persist telemetry asynchronously; never blocks the swipe flow.
		go func(action models.SwipeAction, tier string, rec models.OutfitRecommendation) {
			if err := h.repo.RecordSwipe(s.ID(), tier, action); err != nil {
				slog.Warn("failed to persist swipe", "session_id", s.ID(), "error", err)
			}
			if action.Action == models.ActionLike {
				if err := h.repo.UpsertLikedSnapshot(s.ID(), rec); err != nil {
					slog.Warn("failed to persist liked snapshot", "session_id", s.ID(), "error", err)
				}
			}
		}(outcome.Action, string(s.Tier()), swiped)
	}

	current, hasCurrent := s.Current()
	resp := fiber.Map{
		"ignored": outcome.Ignored,
		"state":   state,
		"index":   s.Index(),
	}
	if !outcome.Ignored {
		resp["action"] = outcome.Action
	}
	if hasCurrent {
		resp["current"] = current
	}
	return c.JSON(resp)
}

// GetSwipeHistory godoc
// GET /api/v1/sessions/:id/swipes
// Serves the persisted swipe log when PostgreSQL is available, otherwise the
// in-memory log of the live session.
func (h *SessionHandler) GetSwipeHistory(c fiber.Ctx) error {
	s, ok := h.manager.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
		})
	}

	actions, err := h.repo.GetSwipes(s.ID(), 200)
	if err != nil {
		slog.Warn("failed to read persisted swipes, using in-memory log", "session_id", s.ID(), "error", err)
	}
	if len(actions) == 0 {
		actions = s.Actions()
	}
	return c.JSON(fiber.Map{
		"session_id": s.ID(),
		"actions":    actions,
	})
}

// DeleteSession godoc
// DELETE /api/v1/sessions/:id
// Drops the live session and its persisted telemetry.
func (h *SessionHandler) DeleteSession(c fiber.Ctx) error {
	s, ok := h.manager.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
		})
	}

	h.manager.Remove(s.ID())
	if err := h.repo.ClearSession(s.ID()); err != nil {
		slog.Warn("failed to clear persisted session data", "session_id", s.ID(), "error", err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

// GetPurchase godoc
// GET /api/v1/sessions/:id/purchase
// By default aggregates every liked outfit; ?scope=current aggregates only
// the outfit on screen.
func (h *SessionHandler) GetPurchase(c fiber.Ctx) error {
	s, ok := h.manager.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
		})
	}

	if fiber.Query(c, "scope", "liked") == "current" {
		current, hasCurrent := s.Current()
		if !hasCurrent {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no outfit currently displayed",
			})
		}
		return c.JSON(purchase.Build(current))
	}

	liked := s.Liked()
	if len(liked) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no liked outfits yet",
		})
	}
	return c.JSON(purchase.BuildFromLiked(liked))
}
