package models

// Category is one of the four fixed garment categories.
type Category string

const (
	CategoryTop         Category = "top"
	CategoryBottom      Category = "bottom"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
)

// OutfitItem represents a single purchasable garment.
// Price 0 means "see retailer for price"; AmazonURL "#" means no direct
// purchase link and must be treated as non-actionable, not as an error.
type OutfitItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Brand     string   `json:"brand"`
	Price     float64  `json:"price"`
	ImageURL  string   `json:"image_url"`
	ImageURLs []string `json:"image_urls,omitempty"`
	AmazonURL string   `json:"amazon_url"`
	Category  Category `json:"category"`
	Colors    []string `json:"colors"`
	Sizes     []string `json:"sizes"`
}

// OutfitRecommendation is one swipeable card.
type OutfitRecommendation struct {
	ID               string       `json:"id"`
	Items            []OutfitItem `json:"items"`
	ImageURL         string       `json:"image_url"`
	EventType        string       `json:"event_type"`
	StyleDescription string       `json:"style_description"`
	Confidence       float64      `json:"confidence"`
	IsLiked          bool         `json:"is_liked,omitempty"`
}

// SwipeAction is an immutable feedback event, appended per swipe and
// periodically flushed to the recommendation service.
type SwipeAction struct {
	OutfitID  string `json:"outfit_id"`
	Action    string `json:"action"` // "like" or "dislike"
	Timestamp int64  `json:"timestamp"`
}

const (
	ActionLike    = "like"
	ActionDislike = "dislike"
)

// PurchaseItem is the checkout-bound aggregate for one displayed outfit.
// Derived, never stored; recomputed on each purchase view.
type PurchaseItem struct {
	OutfitID            string       `json:"outfit_id"`
	Items               []OutfitItem `json:"items"`
	TotalPrice          float64      `json:"total_price"`
	AmazonURLs          []string     `json:"amazon_urls"`
	SeeRetailerForPrice bool         `json:"see_retailer_for_price"`
}

// SizePreferences holds the user's preferred size per category.
type SizePreferences struct {
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
	Shoes  string `json:"shoes"`
}

// PriceRange bounds acceptable item prices.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UserPreferences is the session input; immutable once submitted to the
// feed client for a given request.
type UserPreferences struct {
	EventType           string          `json:"event_type"`
	StylePrompt         string          `json:"style_prompt"`
	ReferenceImage      string          `json:"reference_image,omitempty"`
	PartnerImage        string          `json:"partner_image,omitempty"`
	SizePreferences     SizePreferences `json:"size_preferences"`
	ColorPreferences    []string        `json:"color_preferences"`
	PriceRange          PriceRange      `json:"price_range"`
	GrayWhaleProjectKey string          `json:"gray_whale_project_key,omitempty"` // opaque routing key, "A" or "B"
}

// ClampConfidence forces a confidence score into [0,1].
func ClampConfidence(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
