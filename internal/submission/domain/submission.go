package domain

import (
	"fmt"
	"time"
)

// Status is the moderation state of a submission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus validates a raw status value. Matching is exact, the same way
// stores compare status filters.
func ParseStatus(value string) (Status, error) {
	switch s := Status(value); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, nil
	}
	return "", fmt.Errorf("invalid status: %s", value)
}

func (s Status) String() string {
	return string(s)
}

// Submission is a user-proposed restaurant awaiting moderation.
type Submission struct {
	ID              string
	RestaurantName  string
	Category        string
	Location        string
	PriceRange      string
	RecommendedMenu []string
	Review          string
	SubmitterName   string
	SubmitterEmail  string
	Status          Status
	Image           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewSubmission builds a pending submission. The required fields are checked
// in order and the first empty one is reported.
func NewSubmission(restaurantName, category, location string) (*Submission, error) {
	required := []struct {
		field string
		value string
	}{
		{"restaurantName", restaurantName},
		{"category", category},
		{"location", location},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, RequiredFieldError(r.field)
		}
	}
	return &Submission{
		RestaurantName:  restaurantName,
		Category:        category,
		Location:        location,
		RecommendedMenu: []string{},
		Status:          StatusPending,
	}, nil
}

// SubmissionPatch is a partial update. Nil fields are left unchanged.
type SubmissionPatch struct {
	RestaurantName  *string
	Category        *string
	Location        *string
	PriceRange      *string
	RecommendedMenu *[]string
	Review          *string
	SubmitterName   *string
	SubmitterEmail  *string
	Status          *Status
}

// Apply merges the patch into s.
func (s *Submission) Apply(p SubmissionPatch) {
	setString(&s.RestaurantName, p.RestaurantName)
	setString(&s.Category, p.Category)
	setString(&s.Location, p.Location)
	setString(&s.PriceRange, p.PriceRange)
	setString(&s.Review, p.Review)
	setString(&s.SubmitterName, p.SubmitterName)
	setString(&s.SubmitterEmail, p.SubmitterEmail)
	if p.RecommendedMenu != nil {
		s.RecommendedMenu = append([]string{}, (*p.RecommendedMenu)...)
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p SubmissionPatch) IsEmpty() bool {
	return p.RestaurantName == nil && p.Category == nil && p.Location == nil &&
		p.PriceRange == nil && p.RecommendedMenu == nil && p.Review == nil &&
		p.SubmitterName == nil && p.SubmitterEmail == nil && p.Status == nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
