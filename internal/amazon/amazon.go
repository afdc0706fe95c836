// Package amazon resolves retailer deep links without calling any Amazon
// API: it extracts ASINs from product URLs and guesses product image URLs
// from known CDN conventions.
package amazon

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Charliemorrone/FittedAI/internal/models"
)

const defaultAffiliateTag = "fittedai-20"

// asinPatterns are tried in priority order. An ASIN is a 10-character
// alphanumeric catalog identifier.
var asinPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/dp/([A-Z0-9]{10})(?:[/?]|$)`),
	regexp.MustCompile(`/gp/product/([A-Z0-9]{10})(?:[/?]|$)`),
	regexp.MustCompile(`/product/([A-Z0-9]{10})(?:[/?]|$)`),
	regexp.MustCompile(`[?&]asin=([A-Z0-9]{10})`),
	regexp.MustCompile(`/([A-Z0-9]{10})(?:[/?]|$)`),
}

// ExtractASIN pulls a 10-character catalog identifier out of a retailer
// URL. Tracking/redirect wrappers that carry the true URL in a url= query
// parameter are unwrapped first. Returns "" when no identifier is found.
func ExtractASIN(rawURL string) string {
	if rawURL == "" || rawURL == "#" {
		return ""
	}

	candidate := UnwrapTrackingURL(rawURL)
	for _, re := range asinPatterns {
		if m := re.FindStringSubmatch(candidate); m != nil {
			return m[1]
		}
	}
	return ""
}

// UnwrapTrackingURL extracts the destination URL from a redirect/tracking
// wrapper that encodes it in a url= query parameter with percent-encoded
// slashes. Non-wrapped URLs are returned unchanged.
func UnwrapTrackingURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if inner := parsed.Query().Get("url"); inner != "" {
		if decoded, err := url.QueryUnescape(inner); err == nil {
			return decoded
		}
		return inner
	}
	return rawURL
}

// CandidateImageURLs builds the ordered list of product image URLs to try
// for an ASIN, covering the known CDN host/path conventions. The image
// loader tries them in order until one succeeds.
func CandidateImageURLs(asin string) []string {
	if asin == "" {
		return nil
	}
	return []string{
		fmt.Sprintf("https://m.media-amazon.com/images/P/%s.01._SCLZZZZZZZ_SX500_.jpg", asin),
		fmt.Sprintf("https://images-na.ssl-images-amazon.com/images/P/%s.01.L.jpg", asin),
		fmt.Sprintf("https://images-na.ssl-images-amazon.com/images/P/%s.01._SX450_.jpg", asin),
		fmt.Sprintf("https://ws-na.amazon-adsystem.com/widgets/q?_encoding=UTF8&ASIN=%s&Format=_SL500_&ID=AsinImage&ServiceVersion=20070822", asin),
	}
}

// stockImages are photographic fallbacks used when every CDN candidate
// fails, keyed by garment category.
var stockImages = map[models.Category]string{
	models.CategoryTop:         "https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=500",
	models.CategoryBottom:      "https://images.unsplash.com/photo-1473966968600-fa801b869a1a?w=500",
	models.CategoryShoes:       "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=500",
	models.CategoryAccessories: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500",
}

// StockImageURL returns the photographic stock fallback for a category.
func StockImageURL(category models.Category) string {
	if u, ok := stockImages[category]; ok {
		return u
	}
	return stockImages[models.CategoryAccessories]
}

// ItemImageURLs resolves the ordered image fallback chain for a retailer
// URL: ASIN-derived CDN candidates first, then the category stock image.
func ItemImageURLs(retailerURL string, category models.Category) []string {
	urls := CandidateImageURLs(ExtractASIN(retailerURL))
	return append(urls, StockImageURL(category))
}

// AffiliateLink builds an Amazon affiliate deep link for an ASIN.
func AffiliateLink(asin string) string {
	return AffiliateLinkWithTag(asin, defaultAffiliateTag)
}

// AffiliateLinkWithTag builds an affiliate link with an explicit tag.
func AffiliateLinkWithTag(asin, tag string) string {
	if asin == "" {
		return "#"
	}
	if tag == "" {
		tag = defaultAffiliateTag
	}
	return fmt.Sprintf("https://amazon.com/dp/%s?tag=%s", asin, tag)
}

// IsActionable reports whether a retailer URL can actually be opened.
// The "#" sentinel means "no direct purchase link" and is not an error.
func IsActionable(retailerURL string) bool {
	trimmed := strings.TrimSpace(retailerURL)
	return trimmed != "" && trimmed != "#"
}
