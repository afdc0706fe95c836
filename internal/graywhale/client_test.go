package graywhale

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Charliemorrone/FittedAI/internal/config"
	"github.com/Charliemorrone/FittedAI/internal/models"
)

func testClient(serverURL string) *Client {
	return NewClient(config.GrayWhaleConfig{
		ServerURL:      serverURL,
		OrganizationID: "FittedAI",
		AccessToken:    "test-token",
	})
}

func TestFetchPageRequestShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"cards":[{"id":"c1","product":{"title":"Linen Summer Set"}}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	prefs := models.UserPreferences{EventType: "casual", StylePrompt: "summer linen"}

	recs, err := c.FetchPage(context.Background(), prefs, 2, 3)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	wantPath := "/hackathon/FittedAI/feed/" + c.SessionID()
	if gotPath != wantPath {
		t.Errorf("path = %q, want %q", gotPath, wantPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody["page"] != float64(2) || gotBody["batch_count"] != float64(3) {
		t.Errorf("pagination body = %v", gotBody)
	}
	if gotBody["prompt"] != "summer linen" || gotBody["query"] != "summer linen" {
		t.Errorf("prompt/query = %v / %v", gotBody["prompt"], gotBody["query"])
	}
	if gotBody["event_type"] != "casual" {
		t.Errorf("event_type = %v", gotBody["event_type"])
	}
	if _, ok := gotBody["preferences"]; !ok {
		t.Error("expected full preferences object in body")
	}
}

func TestFetchPageEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	recs, err := testClient(srv.URL).FetchPage(context.Background(), models.UserPreferences{}, 1, 3)
	if err != nil {
		t.Fatalf("empty body should not be an error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no recommendations, got %d", len(recs))
	}
}

func TestFetchPagePropagatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchPage(context.Background(), models.UserPreferences{}, 1, 3)
	if err == nil {
		t.Fatal("expected error from non-200 response")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error should carry the status code: %v", err)
	}
}

func TestBuildFeedbackEvents(t *testing.T) {
	c := testClient("http://example.com")
	actions := []models.SwipeAction{
		{OutfitID: "outfit_1", Action: models.ActionLike, Timestamp: 1700000000000},
		{OutfitID: "outfit_2", Action: models.ActionDislike, Timestamp: 1700000001000},
	}

	events := c.BuildFeedbackEvents(actions)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	like := events[0]
	if like.Event != "item_liked" || like.Properties.Weight != 1.0 {
		t.Errorf("like event = %q weight %v", like.Event, like.Properties.Weight)
	}
	if like.Properties.ID != "outfit_1" || like.Properties.ItemID != "outfit_1" || like.Properties.OutfitID != "outfit_1" {
		t.Error("outfit id must be duplicated under id, item_id and outfit_id")
	}
	if like.Properties.OrganizationID != "FittedAI" {
		t.Errorf("organization_id = %q", like.Properties.OrganizationID)
	}
	if like.Properties.SessionID != c.SessionID() || like.Properties.VisitorID != c.SessionID() {
		t.Error("session and visitor ids must match the client session")
	}
	if like.Properties.Payload.EventType != "swipe_feedback" {
		t.Errorf("payload event_type = %q", like.Properties.Payload.EventType)
	}

	dislike := events[1]
	if dislike.Event != "item_disliked" || dislike.Properties.Weight != -1.0 {
		t.Errorf("dislike event = %q weight %v", dislike.Event, dislike.Properties.Weight)
	}
}

func TestSendFeedbackSwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	// Must not panic or surface the failure in any way.
	c.SendFeedback(context.Background(), []models.SwipeAction{
		{OutfitID: "outfit_1", Action: models.ActionLike, Timestamp: 1},
	})
}

func TestStartNewSessionRotatesID(t *testing.T) {
	c := testClient("http://example.com")
	before := c.SessionID()
	c.StartNewSession()
	if c.SessionID() == before {
		t.Error("expected a fresh session id")
	}
}
