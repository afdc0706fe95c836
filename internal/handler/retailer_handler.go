package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Charliemorrone/FittedAI/internal/amazon"
	"github.com/Charliemorrone/FittedAI/internal/models"
)

// RetailerHandler resolves retailer deep links for the image-loading UI.
type RetailerHandler struct{}

func NewRetailerHandler() *RetailerHandler {
	return &RetailerHandler{}
}

// ResolveImages godoc
// GET /api/v1/retailer/images?url=…&category=…
// Returns the ordered candidate image URLs for a retailer link; the client
// tries them in order until one loads.
func (h *RetailerHandler) ResolveImages(c fiber.Ctx) error {
	retailerURL := fiber.Query[string](c, "url")
	if retailerURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url query parameter is required",
		})
	}

	category := models.Category(fiber.Query(c, "category", string(models.CategoryAccessories)))
	asin := amazon.ExtractASIN(retailerURL)

	resp := fiber.Map{
		"asin":       asin,
		"image_urls": amazon.ItemImageURLs(retailerURL, category),
		"actionable": amazon.IsActionable(retailerURL),
	}
	if asin != "" {
		resp["affiliate_url"] = amazon.AffiliateLink(asin)
	}
	return c.JSON(resp)
}
