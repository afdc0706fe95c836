// Package session drives one user's swipe flow: current batch, current
// index, accumulated swipe actions and the auto-refresh of the remote feed.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Charliemorrone/FittedAI/internal/models"
	"github.com/Charliemorrone/FittedAI/internal/source"
)

// State is the lifecycle phase of a swipe session.
type State string

const (
	StateLoading   State = "loading"
	StateReady     State = "ready"
	StateExhausted State = "exhausted"
)

// RefreshInterval is the swipe count multiple at which the remote feed is
// asked for the next page.
const RefreshInterval = 3

// Feed is the slice of the recommendation client the session needs.
// *graywhale.Client satisfies it.
type Feed interface {
	FetchPage(ctx context.Context, prefs models.UserPreferences, page, batchCount int) ([]models.OutfitRecommendation, error)
	SendFeedback(ctx context.Context, actions []models.SwipeAction)
}

// Session is the swipe state machine. All methods are safe for concurrent
// use; the animating flag additionally guards against a swipe being
// processed while a previous swipe's transition is still in flight.
type Session struct {
	mu sync.Mutex

	id    string
	prefs models.UserPreferences
	feed  Feed

	state      State
	tier       source.Tier
	batch      []models.OutfitRecommendation
	index      int
	actions    []models.SwipeAction
	swipeCount int
	page       int
	animating  bool
}

// New creates a session in the Loading state.
func New(id string, prefs models.UserPreferences, feed Feed) *Session {
	return &Session{
		id:    id,
		prefs: prefs,
		feed:  feed,
		state: StateLoading,
		page:  1,
	}
}

// Start transitions Loading -> Ready with the batch the data-source cascade
// resolved. The tier stays active for the lifetime of the session.
func (s *Session) Start(tier source.Tier, batch []models.OutfitRecommendation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tier = tier
	s.batch = batch
	s.index = 0
	s.state = StateReady
	if len(batch) == 0 {
		s.state = StateExhausted
	}
}

// SwipeOutcome reports what a swipe call did.
type SwipeOutcome struct {
	Ignored bool               `json:"ignored"`
	Action  models.SwipeAction `json:"action"`
	State   State              `json:"state"`
}

// Swipe begins a swipe transition. It records the action, dispatches
// feedback fire-and-forget and sets the animating guard; the transition is
// not complete until CompleteSwipe is called. Swipes arriving while a
// transition is in flight, or after exhaustion, are no-ops.
func (s *Session) Swipe(direction string) SwipeOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady || s.animating || s.index >= len(s.batch) {
		return SwipeOutcome{Ignored: true, State: s.state}
	}

	action := models.SwipeAction{
		OutfitID:  s.batch[s.index].ID,
		Action:    models.ActionDislike,
		Timestamp: time.Now().UnixMilli(),
	}
	if direction == "right" || direction == models.ActionLike {
		action.Action = models.ActionLike
		s.batch[s.index].IsLiked = true
	}

	s.animating = true
	s.actions = append(s.actions, action)
	s.swipeCount++

	// Fire-and-forget: the UI advances immediately, feedback completion
	// order is not guaranteed relative to it.
	go s.feed.SendFeedback(context.Background(), []models.SwipeAction{action})

	return SwipeOutcome{Action: action, State: s.state}
}

// CompleteSwipe finishes the in-flight transition once the card animation
// has ended: it advances the index (or exhausts the session) and, every
// RefreshInterval swipes on the remote tier, fetches the next page and
// replaces the remaining stack wholesale. The animating guard is cleared on
// every path.
func (s *Session) CompleteSwipe(ctx context.Context) State {
	s.mu.Lock()
	if !s.animating {
		state := s.state
		s.mu.Unlock()
		return state
	}

	if s.index+1 < len(s.batch) {
		s.index++
	} else {
		s.state = StateExhausted
	}

	refreshDue := s.swipeCount%RefreshInterval == 0 && s.tier == source.TierRemote
	if !refreshDue {
		s.animating = false
		state := s.state
		s.mu.Unlock()
		return state
	}

	prefs := s.prefs
	nextPage := s.page + 1
	s.mu.Unlock()

	// The fetch stays outside the lock; the animating guard keeps further
	// swipes out until the stack has been replaced or the fetch failed.
	batch, err := s.feed.FetchPage(ctx, prefs, nextPage, source.InitialPageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.animating = false

	if err != nil {
		slog.Warn("auto-refresh fetch failed, keeping current stack", "session_id", s.id, "page", nextPage, "error", err)
		return s.state
	}
	if len(batch) == 0 {
		slog.Warn("auto-refresh returned no recommendations", "session_id", s.id, "page", nextPage)
		return s.state
	}

	// Replace, never append: unseen items from the previous page are
	// discarded and the index restarts at the top of the new batch.
	s.batch = batch
	s.index = 0
	s.page = nextPage
	s.state = StateReady
	slog.Info("auto-refreshed recommendation stack", "session_id", s.id, "page", nextPage, "count", len(batch))
	return s.state
}

// Current returns the recommendation under the user's finger.
func (s *Session) Current() (models.OutfitRecommendation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady || s.index >= len(s.batch) {
		return models.OutfitRecommendation{}, false
	}
	return s.batch[s.index], true
}

// Liked returns the recommendations the user swiped right on.
func (s *Session) Liked() []models.OutfitRecommendation {
	s.mu.Lock()
	defer s.mu.Unlock()

	liked := make(map[string]bool, len(s.actions))
	for _, a := range s.actions {
		if a.Action == models.ActionLike {
			liked[a.OutfitID] = true
		}
	}

	var out []models.OutfitRecommendation
	for _, rec := range s.batch {
		if liked[rec.ID] {
			out = append(out, rec)
		}
	}
	return out
}

// Actions returns a copy of the append-only swipe log.
func (s *Session) Actions() []models.SwipeAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SwipeAction, len(s.actions))
	copy(out, s.actions)
	return out
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Tier returns the data source active for this session.
func (s *Session) Tier() source.Tier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tier
}

// Index returns the zero-based position within the current batch.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Batch returns a copy of the current recommendation batch.
func (s *Session) Batch() []models.OutfitRecommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.OutfitRecommendation, len(s.batch))
	copy(out, s.batch)
	return out
}

// Preferences returns the immutable preferences this session was asked with.
func (s *Session) Preferences() models.UserPreferences { return s.prefs }
