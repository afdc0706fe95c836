package graywhale

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Charliemorrone/FittedAI/internal/config"
	"github.com/Charliemorrone/FittedAI/internal/models"
)

// Client talks to the Gray Whale recommendation feed:
//
//	POST {serverURL}/hackathon/{organizationId}/feed/{sessionId}
//
// with Authorization: Bearer {accessToken}. A session id correlates the
// sequence of feed fetches and feedback events for one user flow.
type Client struct {
	cfg  config.GrayWhaleConfig
	http *http.Client

	mu        sync.Mutex
	sessionID string
}

// NewClient creates a Gray Whale feed client with a fresh session id.
func NewClient(cfg config.GrayWhaleConfig) *Client {
	return &Client{
		cfg:       cfg,
		http:      &http.Client{Timeout: 15 * time.Second},
		sessionID: uuid.NewString(),
	}
}

// SessionID returns the current session id.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// StartNewSession rotates the session id, starting a logically new
// recommendation sequence on the server side.
func (c *Client) StartNewSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = uuid.NewString()
	slog.Info("started new Gray Whale session", "session_id", c.sessionID)
}

type feedRequest struct {
	Page        int                    `json:"page"`
	BatchCount  int                    `json:"batch_count"`
	Prompt      string                 `json:"prompt"`
	Query       string                 `json:"query"`
	EventType   string                 `json:"event_type"`
	Preferences models.UserPreferences `json:"preferences"`
}

type feedResponse struct {
	Cards []Card `json:"cards"`
}

// FetchPage fetches one page of recommendations for the given preferences.
// Network and decode failures propagate to the caller; the data-source
// cascade is responsible for catching them.
func (c *Client) FetchPage(ctx context.Context, prefs models.UserPreferences, page, batchCount int) ([]models.OutfitRecommendation, error) {
	body := feedRequest{
		Page:        page,
		BatchCount:  batchCount,
		Prompt:      prefs.StylePrompt,
		Query:       prefs.StylePrompt,
		EventType:   prefs.EventType,
		Preferences: prefs,
	}

	payload, err := c.post(ctx, body)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		slog.Warn("Gray Whale feed returned empty response body")
		return nil, nil
	}

	var resp feedResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}

	recs := ParseCards(resp.Cards, prefs)
	slog.Debug("fetched Gray Whale page", "page", page, "cards", len(resp.Cards), "recommendations", len(recs))
	return recs, nil
}

type feedbackPayload struct {
	EventType string `json:"event_type"`
	Source    string `json:"source"`
	Platform  string `json:"platform"`
}

type feedbackProperties struct {
	OrganizationID string          `json:"organization_id"`
	VisitorID      string          `json:"visitor_id"`
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	OutfitID       string          `json:"outfit_id"`
	Action         string          `json:"action"`
	Timestamp      int64           `json:"timestamp"`
	SessionID      string          `json:"session_id"`
	Weight         float64         `json:"weight"`
	Payload        feedbackPayload `json:"payload"`
}

// FeedbackEvent is one entry of the feedback request's events array. The
// item identifier is deliberately duplicated under id, item_id and
// outfit_id: the remote schema is inconsistently specified and accepts
// different key names in different deployments.
type FeedbackEvent struct {
	Event      string             `json:"event"`
	Properties feedbackProperties `json:"properties"`
}

type feedbackRequest struct {
	Events []FeedbackEvent `json:"events"`
}

// BuildFeedbackEvents maps swipe actions to the feed's event wire shape.
func (c *Client) BuildFeedbackEvents(actions []models.SwipeAction) []FeedbackEvent {
	sessionID := c.SessionID()
	events := make([]FeedbackEvent, 0, len(actions))
	for _, a := range actions {
		name := "item_disliked"
		weight := -1.0
		if a.Action == models.ActionLike {
			name = "item_liked"
			weight = 1.0
		}
		events = append(events, FeedbackEvent{
			Event: name,
			Properties: feedbackProperties{
				OrganizationID: c.cfg.OrganizationID,
				VisitorID:      sessionID,
				ID:             a.OutfitID,
				ItemID:         a.OutfitID,
				OutfitID:       a.OutfitID,
				Action:         a.Action,
				Timestamp:      a.Timestamp,
				SessionID:      sessionID,
				Weight:         weight,
				Payload: feedbackPayload{
					EventType: "swipe_feedback",
					Source:    "mobile_app",
					Platform:  "go_service",
				},
			},
		})
	}
	return events
}

// SendFeedback submits swipe feedback to the feed. Feedback is best-effort
// telemetry: failures are logged and swallowed, never surfaced to the caller.
func (c *Client) SendFeedback(ctx context.Context, actions []models.SwipeAction) {
	if len(actions) == 0 {
		return
	}

	body := feedbackRequest{Events: c.BuildFeedbackEvents(actions)}
	if _, err := c.post(ctx, body); err != nil {
		slog.Warn("Gray Whale feedback send failed", "actions", len(actions), "error", err)
		return
	}
	slog.Debug("Gray Whale feedback sent", "actions", len(actions))
}

func (c *Client) feedURL() string {
	return fmt.Sprintf("%s/hackathon/%s/feed/%s",
		strings.TrimRight(c.cfg.ServerURL, "/"), c.cfg.OrganizationID, c.SessionID())
}

func (c *Client) post(ctx context.Context, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.feedURL(), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to Gray Whale feed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Gray Whale feed returned status %d: %s", resp.StatusCode, string(payload))
	}
	return payload, nil
}
