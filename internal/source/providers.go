package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/Charliemorrone/FittedAI/internal/collections"
	"github.com/Charliemorrone/FittedAI/internal/graywhale"
	"github.com/Charliemorrone/FittedAI/internal/models"
)

// InitialPageSize is the batch size requested from the remote feed when a
// session starts; subsequent pages use the same size.
const InitialPageSize = 3

// RemoteProvider serves recommendations from the Gray Whale feed, with a
// cache-aside first page so a reconnecting client does not re-hit the feed.
type RemoteProvider struct {
	feed  *graywhale.Client
	cache *BatchCache
}

// NewRemoteProvider wraps a feed client as the first cascade tier. The cache
// may be nil.
func NewRemoteProvider(feed *graywhale.Client, cache *BatchCache) *RemoteProvider {
	return &RemoteProvider{feed: feed, cache: cache}
}

func (p *RemoteProvider) Tier() Tier { return TierRemote }

func (p *RemoteProvider) TryFetch(ctx context.Context, prefs models.UserPreferences) ([]models.OutfitRecommendation, error) {
	if batch, ok := p.cache.Get(ctx, p.feed.SessionID()); ok {
		return batch, nil
	}

	batch, err := p.feed.FetchPage(ctx, prefs, 1, InitialPageSize)
	if err != nil {
		return nil, err
	}
	p.cache.Set(ctx, p.feed.SessionID(), batch)
	return batch, nil
}

// StaticProvider serves the bundled curated collections.
type StaticProvider struct{}

// NewStaticProvider returns the collections-backed cascade tier.
func NewStaticProvider() *StaticProvider { return &StaticProvider{} }

func (p *StaticProvider) Tier() Tier { return TierStatic }

func (p *StaticProvider) TryFetch(_ context.Context, prefs models.UserPreferences) ([]models.OutfitRecommendation, error) {
	return collections.ToRecommendations(collections.SetsForEvent(prefs.EventType), prefs), nil
}

// MockProvider generates deterministic recommendations from the user's own
// prompt, guaranteeing content even with no network and no bundled data.
type MockProvider struct{}

// NewMockProvider returns the last-resort cascade tier.
func NewMockProvider() *MockProvider { return &MockProvider{} }

func (p *MockProvider) Tier() Tier { return TierMock }

var mockTemplates = []struct {
	id          string
	description string
	confidence  float64
	items       []models.OutfitItem
}{
	{
		id:          "mock_rec_001",
		description: `Perfect match for %q - Sophisticated and elegant`,
		confidence:  0.95,
		items: []models.OutfitItem{
			{
				ID: "mock_item_dress", Name: "Elegant Midi Dress", Brand: "Calvin Klein", Price: 89.99,
				ImageURL:  graywhale.PlaceholderImage("Elegant Dress"),
				AmazonURL: "https://amazon.com/dp/B08N5WRWNW",
				Category:  models.CategoryTop, Colors: []string{"black", "navy"}, Sizes: []string{"XS", "S", "M", "L", "XL"},
			},
			{
				ID: "mock_item_heels", Name: "Block Heel Pumps", Brand: "Naturalizer", Price: 79.99,
				ImageURL:  graywhale.PlaceholderImage("Block Heels"),
				AmazonURL: "https://amazon.com/dp/B07QXYZ123",
				Category:  models.CategoryShoes, Colors: []string{"black", "nude"}, Sizes: []string{"6", "7", "8", "9", "10"},
			},
		},
	},
	{
		id:          "mock_rec_002",
		description: `Professional ensemble matching %q - Modern and polished`,
		confidence:  0.88,
		items: []models.OutfitItem{
			{
				ID: "mock_item_blazer", Name: "Tailored Blazer", Brand: "Theory", Price: 198.00,
				ImageURL:  graywhale.PlaceholderImage("Tailored Blazer"),
				AmazonURL: "https://amazon.com/dp/B09ABC456D",
				Category:  models.CategoryTop, Colors: []string{"navy", "charcoal"}, Sizes: []string{"XS", "S", "M", "L"},
			},
			{
				ID: "mock_item_trousers", Name: "Straight Leg Trousers", Brand: "Banana Republic", Price: 89.50,
				ImageURL:  graywhale.PlaceholderImage("Trousers"),
				AmazonURL: "https://amazon.com/dp/B07GHI0129",
				Category:  models.CategoryBottom, Colors: []string{"navy", "black"}, Sizes: []string{"30", "32", "34", "36"},
			},
		},
	},
	{
		id:          "mock_rec_003",
		description: `Casual chic inspired by %q - Comfortable yet stylish`,
		confidence:  0.82,
		items: []models.OutfitItem{
			{
				ID: "mock_item_sweater", Name: "Cashmere Sweater", Brand: "Everlane", Price: 118.00,
				ImageURL:  graywhale.PlaceholderImage("Cashmere Sweater"),
				AmazonURL: "https://amazon.com/dp/B06JKL345X",
				Category:  models.CategoryTop, Colors: []string{"camel", "cream"}, Sizes: []string{"XS", "S", "M", "L"},
			},
			{
				ID: "mock_item_sneakers", Name: "White Leather Sneakers", Brand: "Adidas", Price: 85.00,
				ImageURL:  graywhale.PlaceholderImage("White Sneakers"),
				AmazonURL: "https://amazon.com/dp/B04PQR901Z",
				Category:  models.CategoryShoes, Colors: []string{"white"}, Sizes: []string{"7", "8", "9", "10"},
			},
		},
	},
}

func (p *MockProvider) TryFetch(_ context.Context, prefs models.UserPreferences) ([]models.OutfitRecommendation, error) {
	prompt := strings.TrimSpace(prefs.StylePrompt)
	if prompt == "" {
		prompt = prefs.EventType
	}
	if prompt == "" {
		prompt = "your style"
	}

	recs := make([]models.OutfitRecommendation, 0, len(mockTemplates))
	for _, tpl := range mockTemplates {
		recs = append(recs, models.OutfitRecommendation{
			ID:               tpl.id,
			Items:            tpl.items,
			ImageURL:         graywhale.PlaceholderImage(tpl.id),
			EventType:        prefs.EventType,
			StyleDescription: fmt.Sprintf(tpl.description, prompt),
			Confidence:       tpl.confidence,
		})
	}
	return recs, nil
}
