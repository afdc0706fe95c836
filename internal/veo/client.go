// Package veo wraps the video generation provider behind its
// request/response contract: submit a generation job, then poll on a fixed
// interval until the job reaches a terminal status.
package veo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Charliemorrone/FittedAI/internal/config"
)

// Status is a video generation job status.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// VideoRequest describes the outfit video to generate.
type VideoRequest struct {
	StyleImageURL     string `json:"style_image_url"`
	PartnerImageURL   string `json:"partner_image_url,omitempty"`
	OutfitDescription string `json:"outfit_description"`
	EventType         string `json:"event_type"`
	Prompt            string `json:"prompt"`
}

// VideoResponse is the provider's view of a generation job.
type VideoResponse struct {
	VideoID  string `json:"video_id"`
	Status   Status `json:"status"`
	VideoURL string `json:"video_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// DefaultPollInterval spaces out status polls.
const DefaultPollInterval = 3 * time.Second

// Client is the video generation API client.
type Client struct {
	cfg          config.VeoConfig
	http         *http.Client
	pollInterval time.Duration
}

// NewClient creates a video generation client.
func NewClient(cfg config.VeoConfig) *Client {
	return &Client{
		cfg:          cfg,
		http:         &http.Client{Timeout: 30 * time.Second},
		pollInterval: DefaultPollInterval,
	}
}

// Configured reports whether an API key is present. Video generation is an
// optional feature; an unconfigured client fails requests, it does not
// panic or fall back.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// Generate submits a video generation job.
func (c *Client) Generate(ctx context.Context, req VideoRequest) (*VideoResponse, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("video generation API key not configured")
	}

	url := fmt.Sprintf("%s/videos:generate?key=%s", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.APIKey)
	resp, err := c.postJSON(ctx, url, req)
	if err != nil {
		return nil, err
	}

	slog.Info("video generation job submitted", "video_id", resp.VideoID, "status", resp.Status)
	return resp, nil
}

// GetStatus fetches the current status of a generation job.
func (c *Client) GetStatus(ctx context.Context, videoID string) (*VideoResponse, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("video generation API key not configured")
	}

	url := fmt.Sprintf("%s/videos/%s?key=%s", strings.TrimRight(c.cfg.BaseURL, "/"), videoID, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Poll checks the job on a fixed interval until it reaches a terminal
// status or the context is cancelled.
func (c *Client) Poll(ctx context.Context, videoID string) (*VideoResponse, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		resp, err := c.GetStatus(ctx, videoID)
		if err != nil {
			return nil, err
		}
		if resp.Status == StatusCompleted || resp.Status == StatusFailed {
			return resp, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) postJSON(ctx context.Context, url string, body any) (*VideoResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode video request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*VideoResponse, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to video API: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read video API response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video API returned status %d: %s", resp.StatusCode, string(payload))
	}

	var out VideoResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decode video API response: %w", err)
	}
	return &out, nil
}
