package amazon

import (
	"strings"
	"testing"

	"github.com/Charliemorrone/FittedAI/internal/models"
)

func TestExtractASIN(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"dp path", "https://amazon.com/dp/B08N5WRWNW", "B08N5WRWNW"},
		{"dp path with trailing segment", "https://www.amazon.com/Levis-Jeans/dp/B07QXYZ123/ref=sr_1_1", "B07QXYZ123"},
		{"dp path with query", "https://amazon.in/dp/B09ABC456D?th=1", "B09ABC456D"},
		{"gp product path", "https://amazon.com/gp/product/B08N5WRWNW", "B08N5WRWNW"},
		{"generic product path", "https://shop.example.com/product/B08N5WRWNW", "B08N5WRWNW"},
		{"asin query parameter", "https://example.com/buy?asin=B08N5WRWNW&src=app", "B08N5WRWNW"},
		{"bare trailing segment", "https://amazon.com/B08N5WRWNW", "B08N5WRWNW"},
		{"tracking wrapper", "https://track.example.com/click?url=https%3A%2F%2Famazon.com%2Fdp%2FB08N5WRWNW", "B08N5WRWNW"},
		{"empty url", "", ""},
		{"placeholder sentinel", "#", ""},
		{"no identifier", "https://amazon.com/s?k=blue+kurta", ""},
		{"lowercase is not an asin", "https://amazon.com/dp/b08n5wrwnw", ""},
		{"too short", "https://amazon.com/dp/B08N5", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractASIN(tt.url); got != tt.want {
				t.Errorf("ExtractASIN(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestUnwrapTrackingURL(t *testing.T) {
	wrapped := "https://track.example.com/click?id=7&url=https%3A%2F%2Famazon.com%2Fdp%2FB08N5WRWNW"
	if got := UnwrapTrackingURL(wrapped); got != "https://amazon.com/dp/B08N5WRWNW" {
		t.Errorf("unwrapped = %q", got)
	}

	plain := "https://amazon.com/dp/B08N5WRWNW"
	if got := UnwrapTrackingURL(plain); got != plain {
		t.Errorf("plain url changed to %q", got)
	}
}

func TestCandidateImageURLs(t *testing.T) {
	urls := CandidateImageURLs("B08N5WRWNW")
	if len(urls) != 4 {
		t.Fatalf("expected 4 CDN candidates, got %d", len(urls))
	}
	for i, u := range urls {
		if !strings.Contains(u, "B08N5WRWNW") {
			t.Errorf("candidate %d %q does not embed the asin", i, u)
		}
	}
	if !strings.Contains(urls[0], "m.media-amazon.com") {
		t.Errorf("first candidate should be the primary CDN, got %q", urls[0])
	}

	if got := CandidateImageURLs(""); got != nil {
		t.Errorf("empty asin should yield no candidates, got %v", got)
	}
}

func TestItemImageURLsEndsWithStockFallback(t *testing.T) {
	urls := ItemImageURLs("https://amazon.com/dp/B08N5WRWNW", models.CategoryShoes)
	if len(urls) != 5 {
		t.Fatalf("expected 4 candidates + stock, got %d", len(urls))
	}
	if urls[len(urls)-1] != StockImageURL(models.CategoryShoes) {
		t.Errorf("last url should be the stock fallback, got %q", urls[len(urls)-1])
	}

	// Without an ASIN only the stock image remains.
	urls = ItemImageURLs("#", models.CategoryTop)
	if len(urls) != 1 || urls[0] != StockImageURL(models.CategoryTop) {
		t.Errorf("placeholder url should resolve to stock only, got %v", urls)
	}
}

func TestStockImageURLUnknownCategory(t *testing.T) {
	if got := StockImageURL(models.Category("hats")); got != StockImageURL(models.CategoryAccessories) {
		t.Errorf("unknown category should use the accessories stock image, got %q", got)
	}
}

func TestAffiliateLink(t *testing.T) {
	if got := AffiliateLink("B08N5WRWNW"); got != "https://amazon.com/dp/B08N5WRWNW?tag=fittedai-20" {
		t.Errorf("AffiliateLink = %q", got)
	}
	if got := AffiliateLinkWithTag("B08N5WRWNW", "other-21"); got != "https://amazon.com/dp/B08N5WRWNW?tag=other-21" {
		t.Errorf("AffiliateLinkWithTag = %q", got)
	}
	if got := AffiliateLink(""); got != "#" {
		t.Errorf("empty asin should give the placeholder sentinel, got %q", got)
	}
}

func TestIsActionable(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://amazon.com/dp/B08N5WRWNW", true},
		{"#", false},
		{"", false},
		{"  # ", false},
		{"https://example.com/anything", true},
	}
	for _, tt := range tests {
		if got := IsActionable(tt.url); got != tt.want {
			t.Errorf("IsActionable(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
