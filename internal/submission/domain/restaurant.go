package domain

import "time"

// DefaultPriceRange is used when an approved submission has no price range.
const DefaultPriceRange = "정보 없음"

// Restaurant is a published recommendation.
type Restaurant struct {
	ID                 string
	Name               string
	Category           string
	Location           string
	PriceRange         string
	Description        string
	RecommendedMenu    []string
	Image              string
	SourceSubmissionID string
	CreatedAt          time.Time
}

// RestaurantFromSubmission maps an approved submission onto a restaurant.
// An empty fallback falls back to DefaultPriceRange.
func RestaurantFromSubmission(id string, s Submission, priceFallback string, now time.Time) Restaurant {
	if priceFallback == "" {
		priceFallback = DefaultPriceRange
	}
	priceRange := s.PriceRange
	if priceRange == "" {
		priceRange = priceFallback
	}
	return Restaurant{
		ID:                 id,
		Name:               s.RestaurantName,
		Category:           s.Category,
		Location:           s.Location,
		PriceRange:         priceRange,
		Description:        s.Review,
		RecommendedMenu:    NormaliseMenu(s.RecommendedMenu),
		Image:              s.Image,
		SourceSubmissionID: s.ID,
		CreatedAt:          now,
	}
}
