// Package collections bundles the curated outfit sets used when the
// remote feed is unreachable. Unlike feed cards, a set keys its garments
// by slot (kurta/pants/shoes/accessory) and carries no real price data;
// prices are estimated from a fixed per-slot table.
package collections

import (
	"fmt"

	"github.com/Charliemorrone/FittedAI/internal/amazon"
	"github.com/Charliemorrone/FittedAI/internal/graywhale"
	"github.com/Charliemorrone/FittedAI/internal/models"
)

// SlotItem is one garment of a curated set.
type SlotItem struct {
	Title       string `json:"title"`
	ExternalURL string `json:"external_url"`
	Style       string `json:"style"`
}

// OutfitSet is one curated outfit, garments keyed by slot.
type OutfitSet struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	EventType   string              `json:"event_type"`
	ImageURL    string              `json:"image_url"`
	Confidence  float64             `json:"confidence"`
	Slots       map[string]SlotItem `json:"slots"`
}

// slotOrder fixes the display order of slot conversion.
var slotOrder = []string{"kurta", "pants", "shoes", "accessory"}

// Fixed per-slot tables. Estimated prices stand in for real price data.
var (
	slotPrices = map[string]float64{
		"kurta":     79.99,
		"pants":     49.99,
		"shoes":     89.99,
		"accessory": 29.99,
	}
	slotCategories = map[string]models.Category{
		"kurta":     models.CategoryTop,
		"pants":     models.CategoryBottom,
		"shoes":     models.CategoryShoes,
		"accessory": models.CategoryAccessories,
	}
	slotColors = map[string][]string{
		"kurta":     {"Ivory", "Maroon", "Navy"},
		"pants":     {"White", "Beige", "Black"},
		"shoes":     {"Tan", "Brown"},
		"accessory": {"Gold", "Multi"},
	}
	slotSizes = map[string][]string{
		"kurta":     {"XS", "S", "M", "L", "XL"},
		"pants":     {"30", "32", "34", "36", "38"},
		"shoes":     {"7", "8", "9", "10", "11"},
		"accessory": {"One Size"},
	}
)

// Sets returns the bundled curated outfit sets.
func Sets() []OutfitSet {
	return bundledSets
}

// SetsForEvent filters the bundled sets by event type; an unknown or empty
// event type returns everything.
func SetsForEvent(eventType string) []OutfitSet {
	if eventType == "" {
		return bundledSets
	}
	var out []OutfitSet
	for _, s := range bundledSets {
		if s.EventType == eventType {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return bundledSets
	}
	return out
}

// ConvertSlot converts one slot garment into the purchase-model item shape:
// estimated price, category/colors/sizes from the slot tables, brand from
// the title's first token and images guessed from the retailer URL's ASIN.
func ConvertSlot(setID, slot string, item SlotItem) models.OutfitItem {
	category, ok := slotCategories[slot]
	if !ok {
		category = models.CategoryAccessories
	}

	imageURLs := amazon.ItemImageURLs(item.ExternalURL, category)
	name := item.Title
	if item.Style != "" {
		name = item.Style + " " + item.Title
	}

	return models.OutfitItem{
		ID:        fmt.Sprintf("%s_%s", setID, slot),
		Name:      name,
		Brand:     graywhale.BrandFromTitle(item.Title),
		Price:     slotPrices[slot],
		ImageURL:  imageURLs[0],
		ImageURLs: imageURLs,
		AmazonURL: item.ExternalURL,
		Category:  category,
		Colors:    slotColors[slot],
		Sizes:     slotSizes[slot],
	}
}

// Items converts a set's slots in fixed slot order.
func (s OutfitSet) Items() []models.OutfitItem {
	items := make([]models.OutfitItem, 0, len(s.Slots))
	for _, slot := range slotOrder {
		if item, ok := s.Slots[slot]; ok {
			items = append(items, ConvertSlot(s.ID, slot, item))
		}
	}
	return items
}

// ToRecommendation converts a curated set into the swipe card model.
func (s OutfitSet) ToRecommendation(prefs models.UserPreferences) models.OutfitRecommendation {
	eventType := s.EventType
	if prefs.EventType != "" {
		eventType = prefs.EventType
	}
	return models.OutfitRecommendation{
		ID:               s.ID,
		Items:            s.Items(),
		ImageURL:         s.ImageURL,
		EventType:        eventType,
		StyleDescription: s.Description,
		Confidence:       models.ClampConfidence(s.Confidence),
	}
}

// ToRecommendations converts a list of sets.
func ToRecommendations(sets []OutfitSet, prefs models.UserPreferences) []models.OutfitRecommendation {
	recs := make([]models.OutfitRecommendation, 0, len(sets))
	for _, s := range sets {
		recs = append(recs, s.ToRecommendation(prefs))
	}
	return recs
}

var bundledSets = []OutfitSet{
	{
		ID:          "col_wedding_001",
		Title:       "Manyavar Classic Sherwani Set",
		Description: "Regal ivory sherwani with churidar pants and mojari shoes",
		EventType:   "wedding",
		ImageURL:    "https://images.unsplash.com/photo-1583391733956-6c78276477e2?w=500",
		Confidence:  0.92,
		Slots: map[string]SlotItem{
			"kurta":     {Title: "Manyavar Ivory Sherwani", ExternalURL: "https://www.amazon.com/Manyavar-Sherwani/dp/B0B5KQJX1M", Style: "Classic"},
			"pants":     {Title: "Churidar Pants", ExternalURL: "https://www.amazon.com/Churidar-Pants/dp/B09TXL2RNV"},
			"shoes":     {Title: "Mojari Shoes", ExternalURL: "https://www.amazon.com/Mojari-Shoes/dp/B08YRBJ7QD", Style: "Traditional"},
			"accessory": {Title: "Embroidered Stole", ExternalURL: "https://www.amazon.com/Embroidered-Stole/dp/B0BV7QNXKP"},
		},
	},
	{
		ID:          "col_wedding_002",
		Title:       "Fabindia Silk Kurta Ensemble",
		Description: "Festive silk kurta with pajama and jutti shoes",
		EventType:   "wedding",
		ImageURL:    "https://images.unsplash.com/photo-1610030469983-98e550d6193c?w=500",
		Confidence:  0.88,
		Slots: map[string]SlotItem{
			"kurta": {Title: "Fabindia Silk Kurta", ExternalURL: "https://www.amazon.com/Fabindia-Silk-Kurta/dp/B07XDQR4NP", Style: "Festive"},
			"pants": {Title: "Cotton Pajama", ExternalURL: "https://www.amazon.com/Cotton-Pajama/dp/B08LNV3JTB"},
			"shoes": {Title: "Jutti Shoes", ExternalURL: "https://www.amazon.com/Jutti-Shoes/dp/B09KXFW8RH"},
		},
	},
	{
		ID:          "col_formal_001",
		Title:       "Calvin Klein Evening Ensemble",
		Description: "Tailored blazer with straight leg trousers and loafers",
		EventType:   "formal",
		ImageURL:    "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=500",
		Confidence:  0.9,
		Slots: map[string]SlotItem{
			"kurta":     {Title: "Calvin Klein Tailored Blazer", ExternalURL: "https://www.amazon.com/Calvin-Klein-Blazer/dp/B01N5WRQ2X", Style: "Tailored"},
			"pants":     {Title: "Straight Leg Trousers", ExternalURL: "https://www.amazon.com/Straight-Trousers/dp/B07GHI0129"},
			"shoes":     {Title: "Leather Loafers", ExternalURL: "https://www.amazon.com/Leather-Loafers/dp/B06XWZ4KQ8"},
			"accessory": {Title: "Silk Pocket Square", ExternalURL: "https://www.amazon.com/Silk-Pocket-Square/dp/B08DEF789Q"},
		},
	},
	{
		ID:          "col_casual_001",
		Title:       "Levis Weekend Look",
		Description: "Relaxed shirt with high-waisted jeans and white sneakers",
		EventType:   "casual",
		ImageURL:    "https://images.unsplash.com/photo-1516257984-b1b4d707412e?w=500",
		Confidence:  0.86,
		Slots: map[string]SlotItem{
			"kurta": {Title: "Everlane Linen Shirt", ExternalURL: "https://www.amazon.com/Everlane-Linen-Shirt/dp/B06JKL345X", Style: "Relaxed"},
			"pants": {Title: "Levis High-Waisted Jeans", ExternalURL: "https://www.amazon.com/Levis-Jeans/dp/B05MNO678Y"},
			"shoes": {Title: "Adidas White Sneakers", ExternalURL: "https://www.amazon.com/Adidas-Sneakers/dp/B04PQR901Z"},
		},
	},
}
