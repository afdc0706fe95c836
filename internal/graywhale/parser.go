package graywhale

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Charliemorrone/FittedAI/internal/models"
)

// Attribute is one name/value pair on a card's product. Multi-valued
// attributes encode their values as a single comma-and-space-separated
// string, aligned positionally across attributes.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is the nested product payload of a card.
type Product struct {
	SKU        string      `json:"sku"`
	Title      string      `json:"title"`
	Body       string      `json:"body"`
	Summary    string      `json:"summary"`
	ProductURL string      `json:"product_url"`
	Attributes []Attribute `json:"attributes"`
}

// Card is one raw recommendation unit returned by the feed. Score is
// loosely typed upstream, so it is decoded as any and validated here.
type Card struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       any     `json:"score"`
	Product     Product `json:"product"`
}

// DefaultConfidence is used when a card carries no numeric score.
const DefaultConfidence = 0.85

const fallbackOutfitPrice = 149.99

// ParseCards maps a feed response's cards to outfit recommendations.
func ParseCards(cards []Card, prefs models.UserPreferences) []models.OutfitRecommendation {
	recs := make([]models.OutfitRecommendation, 0, len(cards))
	for i, card := range cards {
		recs = append(recs, ParseCard(card, i, prefs))
	}
	return recs
}

// ParseCard maps one raw card to exactly one OutfitRecommendation. It never
// fails: every missing or malformed field degrades to a documented default,
// and the result always contains at least one item.
func ParseCard(card Card, idx int, prefs models.UserPreferences) models.OutfitRecommendation {
	title := card.Product.Title
	if title == "" {
		title = card.Title
	}
	if title == "" {
		title = "Gray Whale Recommendation"
	}

	description := card.Product.Body
	if description == "" {
		description = card.Product.Summary
	}
	if description == "" {
		description = card.Description
	}
	if description == "" {
		description = title
	}

	id := card.ID
	if id == "" {
		id = card.Product.SKU
	}
	if id == "" {
		id = fmt.Sprintf("gw_card_%d", idx)
	}

	items := extractItems(card, id, idx)
	if len(items) == 0 {
		items = []models.OutfitItem{fallbackItem(card, title, idx)}
	}

	return models.OutfitRecommendation{
		ID:               id,
		Items:            items,
		ImageURL:         heroImage(card, title),
		EventType:        prefs.EventType,
		StyleDescription: description,
		Confidence:       confidenceOf(card),
		IsLiked:          false,
	}
}

// heroImage resolves the card's display image: product_url first, then the
// first entry of the image_url attribute, then a placeholder.
func heroImage(card Card, title string) string {
	if u := strings.TrimSpace(card.Product.ProductURL); u != "" {
		return u
	}
	if imgs := SplitValues(attrValue(card, "image_url", "image_urls")); len(imgs) > 0 {
		return imgs[0]
	}
	return PlaceholderImage(title)
}

func confidenceOf(card Card) float64 {
	switch v := card.Score.(type) {
	case float64:
		return models.ClampConfidence(v)
	case int:
		return models.ClampConfidence(float64(v))
	default:
		return DefaultConfidence
	}
}

// extractItems zips the card's positional attribute arrays into items.
// The arrays carry no explicit keys; alignment is by construction index.
// Shorter arrays pad with placeholders rather than truncating the count.
func extractItems(card Card, cardID string, idx int) []models.OutfitItem {
	imageURLs := SplitValues(attrValue(card, "image_url", "image_urls"))
	externalURLs := SplitValues(attrValue(card, "external_url", "external_urls"))
	types := SplitValues(attrValue(card, "type"))
	styles := SplitValues(attrValue(card, "style"))
	colors := SplitValues(attrValue(card, "color"))
	if len(colors) == 0 {
		colors = []string{"Multi"}
	}

	n := max(len(imageURLs), len(externalURLs), len(types))
	items := make([]models.OutfitItem, 0, n)
	for i := 0; i < n; i++ {
		itemType := at(types, i)
		if itemType == "" {
			itemType = fmt.Sprintf("Item %d", i+1)
		}
		imageURL := at(imageURLs, i)
		if imageURL == "" {
			imageURL = PlaceholderImage(itemType)
		}
		externalURL := at(externalURLs, i)
		if externalURL == "" {
			externalURL = "#"
		}

		items = append(items, models.OutfitItem{
			ID:        fmt.Sprintf("%s_item_%d", cardID, i),
			Name:      itemName(itemType, at(styles, i)),
			Brand:     brandOr(card.Product.Title, "Gray Whale"),
			Price:     0, // no price data on the feed; shown as "see retailer for price"
			ImageURL:  imageURL,
			AmazonURL: externalURL,
			Category:  MapTypeToCategory(itemType),
			Colors:    colors,
			Sizes:     DefaultSizes(itemType),
		})
	}
	return items
}

// fallbackItem synthesizes a single item representing the complete outfit
// when no per-item attributes are present at all.
func fallbackItem(card Card, title string, idx int) models.OutfitItem {
	return models.OutfitItem{
		ID:        fmt.Sprintf("gw_outfit_%d", idx),
		Name:      title,
		Brand:     "GrayWhale",
		Price:     fallbackOutfitPrice,
		ImageURL:  heroImage(card, title),
		AmazonURL: "#",
		Category:  models.CategoryTop,
		Colors:    []string{"Multi"},
		Sizes:     []string{"M", "L"},
	}
}

// attrValue returns the value of the first present attribute among names.
func attrValue(card Card, names ...string) string {
	for _, attr := range card.Product.Attributes {
		for _, name := range names {
			if attr.Name == name {
				return attr.Value
			}
		}
	}
	return ""
}

// SplitValues splits a comma-and-space-separated attribute value into its
// trimmed entries. Empty input yields nil.
func SplitValues(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// typeDisplayNames maps known garment type strings to display names.
// Unknown types fall back to capitalizing the raw string.
var typeDisplayNames = map[string]string{
	"pants":     "Pants",
	"pant":      "Pants",
	"kurta":     "Kurta",
	"kurta set": "Kurta Set",
	"shoes":     "Shoes",
	"loafers":   "Loafers",
	"mule":      "Mules",
	"mules":     "Mules",
	"sherwani":  "Sherwani",
	"mojari":    "Mojari Shoes",
}

func itemName(itemType, style string) string {
	base, ok := typeDisplayNames[strings.ToLower(itemType)]
	if !ok {
		base = capitalize(itemType)
	}
	if style != "" {
		return style + " " + base
	}
	return base
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// MapTypeToCategory maps a raw garment type string to one of the four fixed
// categories. The mapping is total: unrecognized types are accessories.
func MapTypeToCategory(itemType string) models.Category {
	lower := strings.ToLower(itemType)
	switch {
	case containsAny(lower, "pant", "pajama", "trouser"):
		return models.CategoryBottom
	case containsAny(lower, "shoe", "boot", "sandal", "loafer", "mule", "mojari", "jutti"):
		return models.CategoryShoes
	case containsAny(lower, "kurta", "shirt", "dress", "jacket", "blazer", "sherwani"):
		return models.CategoryTop
	default:
		return models.CategoryAccessories
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// DefaultSizes returns the static size table for a garment type: numeric
// shoe sizes, numeric waist sizes for bottoms, letter sizes otherwise.
func DefaultSizes(itemType string) []string {
	switch MapTypeToCategory(itemType) {
	case models.CategoryShoes:
		return []string{"7", "8", "9", "10", "11"}
	case models.CategoryBottom:
		return []string{"30", "32", "34", "36", "38"}
	default:
		return []string{"XS", "S", "M", "L", "XL"}
	}
}

// brandOr guesses the brand from the outfit title's first token; titles
// with a single token are ambiguous and yield the fallback.
func brandOr(title, fallback string) string {
	words := strings.Fields(title)
	if len(words) > 1 {
		return words[0]
	}
	return fallback
}

// BrandFromTitle guesses a brand from an outfit title, defaulting to "Brand".
func BrandFromTitle(title string) string {
	return brandOr(title, "Brand")
}

// PlaceholderImage builds a deterministic placeholder image URL labeled
// with the given text.
func PlaceholderImage(text string) string {
	return "https://via.placeholder.com/300x400/6366f1/FFFFFF?text=" + url.QueryEscape(text)
}
