package source

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Charliemorrone/FittedAI/internal/models"
)

type fakeProvider struct {
	tier  Tier
	batch []models.OutfitRecommendation
	err   error
	calls int
}

func (p *fakeProvider) Tier() Tier { return p.tier }

func (p *fakeProvider) TryFetch(_ context.Context, _ models.UserPreferences) ([]models.OutfitRecommendation, error) {
	p.calls++
	return p.batch, p.err
}

func rec(id string) models.OutfitRecommendation {
	return models.OutfitRecommendation{ID: id}
}

func TestResolveTakesFirstNonEmpty(t *testing.T) {
	remote := &fakeProvider{tier: TierRemote, batch: []models.OutfitRecommendation{rec("r1")}}
	static := &fakeProvider{tier: TierStatic, batch: []models.OutfitRecommendation{rec("s1")}}

	tier, batch, err := NewResolver(remote, static).Resolve(context.Background(), models.UserPreferences{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tier != TierRemote || batch[0].ID != "r1" {
		t.Errorf("resolved tier %q batch %v, want remote r1", tier, batch)
	}
	if static.calls != 0 {
		t.Error("later providers should not be tried once a batch resolves")
	}
}

func TestResolveFallsThroughErrorsAndEmpties(t *testing.T) {
	remote := &fakeProvider{tier: TierRemote, err: errors.New("network down")}
	static := &fakeProvider{tier: TierStatic} // empty batch
	mock := &fakeProvider{tier: TierMock, batch: []models.OutfitRecommendation{rec("m1")}}

	tier, batch, err := NewResolver(remote, static, mock).Resolve(context.Background(), models.UserPreferences{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tier != TierMock {
		t.Errorf("tier = %q, want mock", tier)
	}
	if len(batch) != 1 || batch[0].ID != "m1" {
		t.Errorf("batch = %v", batch)
	}
	if remote.calls != 1 || static.calls != 1 {
		t.Error("every earlier provider should have been tried once")
	}
}

func TestResolveAllExhausted(t *testing.T) {
	boom := errors.New("boom")
	only := &fakeProvider{tier: TierRemote, err: boom}

	_, batch, err := NewResolver(only).Resolve(context.Background(), models.UserPreferences{})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want the provider's error", err)
	}
	if batch != nil {
		t.Errorf("batch = %v, want nil", batch)
	}
}

func TestStaticProviderServesCollections(t *testing.T) {
	batch, err := NewStaticProvider().TryFetch(context.Background(), models.UserPreferences{EventType: "wedding"})
	if err != nil {
		t.Fatalf("TryFetch: %v", err)
	}
	if len(batch) == 0 {
		t.Fatal("bundled collections must never be empty")
	}
	for _, r := range batch {
		if len(r.Items) == 0 {
			t.Errorf("recommendation %q has no items", r.ID)
		}
		if r.Confidence < 0 || r.Confidence > 1 {
			t.Errorf("recommendation %q confidence %f out of range", r.ID, r.Confidence)
		}
	}
}

func TestMockProviderInterpolatesPrompt(t *testing.T) {
	batch, err := NewMockProvider().TryFetch(context.Background(), models.UserPreferences{StylePrompt: "boho beach party"})
	if err != nil {
		t.Fatalf("TryFetch: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("mock batch size = %d, want 3", len(batch))
	}
	for _, r := range batch {
		if !strings.Contains(r.StyleDescription, `"boho beach party"`) {
			t.Errorf("description %q does not quote the prompt", r.StyleDescription)
		}
	}
	if batch[0].Confidence <= batch[1].Confidence || batch[1].Confidence <= batch[2].Confidence {
		t.Error("mock confidences should be strictly descending")
	}
}

func TestMockProviderDefaultsPrompt(t *testing.T) {
	batch, _ := NewMockProvider().TryFetch(context.Background(), models.UserPreferences{})
	if !strings.Contains(batch[0].StyleDescription, `"your style"`) {
		t.Errorf("description %q should fall back to a generic prompt", batch[0].StyleDescription)
	}

	batch, _ = NewMockProvider().TryFetch(context.Background(), models.UserPreferences{EventType: "gala"})
	if !strings.Contains(batch[0].StyleDescription, `"gala"`) {
		t.Errorf("description %q should fall back to the event type", batch[0].StyleDescription)
	}
}
