package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Charliemorrone/FittedAI/internal/models"
	"github.com/Charliemorrone/FittedAI/internal/source"
)

// stubFeed implements Feed with canned pages and a record of calls.
type stubFeed struct {
	mu       sync.Mutex
	pages    map[int][]models.OutfitRecommendation
	fetchErr error
	fetched  []int
	fbCh     chan models.SwipeAction
}

func (f *stubFeed) FetchPage(_ context.Context, _ models.UserPreferences, page, _ int) ([]models.OutfitRecommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, page)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.pages[page], nil
}

func (f *stubFeed) SendFeedback(_ context.Context, actions []models.SwipeAction) {
	if f.fbCh == nil {
		return
	}
	for _, a := range actions {
		f.fbCh <- a
	}
}

func (f *stubFeed) fetchedPages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.fetched))
	copy(out, f.fetched)
	return out
}

func makeBatch(ids ...string) []models.OutfitRecommendation {
	batch := make([]models.OutfitRecommendation, 0, len(ids))
	for _, id := range ids {
		batch = append(batch, models.OutfitRecommendation{ID: id})
	}
	return batch
}

func TestSwipeProgressionToExhaustion(t *testing.T) {
	s := New("s1", models.UserPreferences{}, &stubFeed{})
	s.Start(source.TierStatic, makeBatch("a", "b", "c"))

	for i, want := range []int{1, 2} {
		out := s.Swipe("left")
		if out.Ignored {
			t.Fatalf("swipe %d unexpectedly ignored", i)
		}
		if st := s.CompleteSwipe(context.Background()); st != StateReady {
			t.Fatalf("swipe %d: state = %q, want ready", i, st)
		}
		if s.Index() != want {
			t.Fatalf("swipe %d: index = %d, want %d", i, s.Index(), want)
		}
	}

	s.Swipe("right")
	if st := s.CompleteSwipe(context.Background()); st != StateExhausted {
		t.Fatalf("final state = %q, want exhausted", st)
	}

	// Swipes after exhaustion are no-ops.
	out := s.Swipe("right")
	if !out.Ignored {
		t.Error("swipe after exhaustion should be ignored")
	}
	if got := len(s.Actions()); got != 3 {
		t.Errorf("action log length = %d, want 3", got)
	}
}

func TestSwipeRecordsDirection(t *testing.T) {
	s := New("s1", models.UserPreferences{}, &stubFeed{})
	s.Start(source.TierStatic, makeBatch("a", "b"))

	out := s.Swipe("right")
	if out.Action.Action != models.ActionLike || out.Action.OutfitID != "a" {
		t.Errorf("right swipe recorded %+v", out.Action)
	}
	if !s.Batch()[0].IsLiked {
		t.Error("right swipe should mark the card liked")
	}
	s.CompleteSwipe(context.Background())

	out = s.Swipe("left")
	if out.Action.Action != models.ActionDislike || out.Action.OutfitID != "b" {
		t.Errorf("left swipe recorded %+v", out.Action)
	}
}

func TestSwipeWhileAnimatingIsIgnored(t *testing.T) {
	s := New("s1", models.UserPreferences{}, &stubFeed{})
	s.Start(source.TierStatic, makeBatch("a", "b", "c"))

	first := s.Swipe("right")
	second := s.Swipe("right")

	if first.Ignored {
		t.Fatal("first swipe should be processed")
	}
	if !second.Ignored {
		t.Error("swipe during an in-flight transition should be ignored")
	}
	if got := len(s.Actions()); got != 1 {
		t.Errorf("action log length = %d, want 1", got)
	}

	s.CompleteSwipe(context.Background())
	if out := s.Swipe("left"); out.Ignored {
		t.Error("swipe after transition completes should be processed")
	}
}

func TestCompleteSwipeWithoutSwipeIsNoop(t *testing.T) {
	s := New("s1", models.UserPreferences{}, &stubFeed{})
	s.Start(source.TierStatic, makeBatch("a", "b"))

	if st := s.CompleteSwipe(context.Background()); st != StateReady {
		t.Errorf("state = %q, want ready", st)
	}
	if s.Index() != 0 {
		t.Errorf("index moved to %d without a swipe", s.Index())
	}
}

func TestAutoRefreshReplacesStackWholesale(t *testing.T) {
	feed := &stubFeed{pages: map[int][]models.OutfitRecommendation{
		2: makeBatch("d", "e", "f"),
	}}
	s := New("s1", models.UserPreferences{}, feed)
	s.Start(source.TierRemote, makeBatch("a", "b", "c"))

	for i := 0; i < RefreshInterval; i++ {
		s.Swipe("left")
		s.CompleteSwipe(context.Background())
	}

	if got := feed.fetchedPages(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("fetched pages = %v, want [2]", got)
	}
	if st := s.State(); st != StateReady {
		t.Errorf("state after refresh = %q, want ready", st)
	}
	if s.Index() != 0 {
		t.Errorf("index after refresh = %d, want 0", s.Index())
	}
	batch := s.Batch()
	if len(batch) != 3 || batch[0].ID != "d" {
		t.Errorf("batch after refresh = %+v, want the new page only", batch)
	}
	for _, rec := range batch {
		if rec.ID == "a" || rec.ID == "b" || rec.ID == "c" {
			t.Errorf("old card %q survived the refresh", rec.ID)
		}
	}
}

func TestAutoRefreshFailureKeepsStack(t *testing.T) {
	feed := &stubFeed{fetchErr: errors.New("feed down")}
	s := New("s1", models.UserPreferences{}, feed)
	s.Start(source.TierRemote, makeBatch("a", "b", "c", "d"))

	for i := 0; i < RefreshInterval; i++ {
		s.Swipe("left")
		s.CompleteSwipe(context.Background())
	}

	if st := s.State(); st != StateReady {
		t.Errorf("state = %q, want ready after failed refresh", st)
	}
	if s.Index() != 3 {
		t.Errorf("index = %d, want 3", s.Index())
	}
	// The guard must be released even when the fetch fails.
	if out := s.Swipe("left"); out.Ignored {
		t.Error("swipe after failed refresh should be processed")
	}
}

func TestStaticTierNeverRefreshes(t *testing.T) {
	feed := &stubFeed{pages: map[int][]models.OutfitRecommendation{
		2: makeBatch("x"),
	}}
	s := New("s1", models.UserPreferences{}, feed)
	s.Start(source.TierStatic, makeBatch("a", "b", "c", "d", "e", "f"))

	for i := 0; i < 6; i++ {
		s.Swipe("left")
		s.CompleteSwipe(context.Background())
	}

	if got := feed.fetchedPages(); len(got) != 0 {
		t.Errorf("static tier fetched pages %v, want none", got)
	}
	if st := s.State(); st != StateExhausted {
		t.Errorf("state = %q, want exhausted", st)
	}
}

func TestFeedbackDispatchedPerSwipe(t *testing.T) {
	feed := &stubFeed{fbCh: make(chan models.SwipeAction, 1)}
	s := New("s1", models.UserPreferences{}, feed)
	s.Start(source.TierStatic, makeBatch("a", "b"))

	s.Swipe("right")

	select {
	case a := <-feed.fbCh:
		if a.OutfitID != "a" || a.Action != models.ActionLike {
			t.Errorf("feedback action = %+v", a)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no feedback dispatched")
	}
}

func TestLikedFiltersBatch(t *testing.T) {
	s := New("s1", models.UserPreferences{}, &stubFeed{})
	s.Start(source.TierStatic, makeBatch("a", "b", "c"))

	s.Swipe("right")
	s.CompleteSwipe(context.Background())
	s.Swipe("left")
	s.CompleteSwipe(context.Background())
	s.Swipe("right")
	s.CompleteSwipe(context.Background())

	liked := s.Liked()
	if len(liked) != 2 {
		t.Fatalf("liked count = %d, want 2", len(liked))
	}
	if liked[0].ID != "a" || liked[1].ID != "c" {
		t.Errorf("liked ids = %q, %q", liked[0].ID, liked[1].ID)
	}
}

func TestStartWithEmptyBatchExhausts(t *testing.T) {
	s := New("s1", models.UserPreferences{}, &stubFeed{})
	s.Start(source.TierMock, nil)
	if st := s.State(); st != StateExhausted {
		t.Errorf("state = %q, want exhausted for an empty batch", st)
	}
}
