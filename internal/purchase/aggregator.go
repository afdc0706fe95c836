// Package purchase converts displayed outfits into normalized purchasable
// line items with computed totals. Purchase items are derived on demand,
// never stored.
package purchase

import (
	"fmt"
	"time"

	"github.com/Charliemorrone/FittedAI/internal/collections"
	"github.com/Charliemorrone/FittedAI/internal/models"
)

// Build converts one displayed outfit into a purchase item. Items pass
// through unchanged; zero-priced items contribute zero to the total and
// flag the aggregate as "see retailer for price", which changes the
// purchase confirmation copy.
func Build(outfit models.OutfitRecommendation) models.PurchaseItem {
	return fromItems(outfit.ID, outfit.Items)
}

// BuildFromSet converts a curated collection set via the per-slot
// estimation tables instead of real price data.
func BuildFromSet(set collections.OutfitSet) models.PurchaseItem {
	return fromItems(set.ID, set.Items())
}

// BuildFromLiked aggregates every outfit the user liked into a single
// purchase item.
func BuildFromLiked(outfits []models.OutfitRecommendation) models.PurchaseItem {
	var items []models.OutfitItem
	for _, o := range outfits {
		items = append(items, o.Items...)
	}
	return fromItems(fmt.Sprintf("purchase_%d", time.Now().UnixMilli()), items)
}

func fromItems(outfitID string, items []models.OutfitItem) models.PurchaseItem {
	var total float64
	seeRetailer := false
	urls := make([]string, 0, len(items))
	for _, item := range items {
		total += item.Price
		if item.Price == 0 {
			seeRetailer = true
		}
		urls = append(urls, item.AmazonURL)
	}
	return models.PurchaseItem{
		OutfitID:            outfitID,
		Items:               items,
		TotalPrice:          total,
		AmazonURLs:          urls,
		SeeRetailerForPrice: seeRetailer,
	}
}
