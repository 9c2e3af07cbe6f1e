package submissions

import (
	"time"

	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
)

// createRequest lists the fields a client may send on create. Anything else
// in the body is ignored. RecommendedMenu may be a list or a comma separated
// string.
type createRequest struct {
	RestaurantName  string `json:"restaurantName"`
	Category        string `json:"category"`
	Location        string `json:"location"`
	PriceRange      string `json:"priceRange"`
	RecommendedMenu any    `json:"recommendedMenu"`
	Review          string `json:"review"`
	SubmitterName   string `json:"submitterName"`
	SubmitterEmail  string `json:"submitterEmail"`
}

func (req createRequest) command() application.CreateSubmissionCommand {
	return application.CreateSubmissionCommand{
		RestaurantName:  req.RestaurantName,
		Category:        req.Category,
		Location:        req.Location,
		PriceRange:      req.PriceRange,
		RecommendedMenu: domain.NormaliseMenu(req.RecommendedMenu),
		Review:          req.Review,
		SubmitterName:   req.SubmitterName,
		SubmitterEmail:  req.SubmitterEmail,
	}
}

// updateRequest is a partial update. Absent fields stay unchanged and
// recommendedMenu is only applied when it is a list.
type updateRequest struct {
	RestaurantName  *string `json:"restaurantName"`
	Category        *string `json:"category"`
	Location        *string `json:"location"`
	PriceRange      *string `json:"priceRange"`
	RecommendedMenu any     `json:"recommendedMenu"`
	Review          *string `json:"review"`
	SubmitterName   *string `json:"submitterName"`
	SubmitterEmail  *string `json:"submitterEmail"`
	Status          *string `json:"status"`
}

func (req updateRequest) command() application.UpdateSubmissionCommand {
	cmd := application.UpdateSubmissionCommand{
		RestaurantName: req.RestaurantName,
		Category:       req.Category,
		Location:       req.Location,
		PriceRange:     req.PriceRange,
		Review:         req.Review,
		SubmitterName:  req.SubmitterName,
		SubmitterEmail: req.SubmitterEmail,
		Status:         req.Status,
	}
	if menu, ok := domain.MenuList(req.RecommendedMenu); ok {
		cmd.RecommendedMenu = &menu
	}
	return cmd
}

type submissionResponse struct {
	ID              string    `json:"id"`
	RestaurantName  string    `json:"restaurantName"`
	Category        string    `json:"category"`
	Location        string    `json:"location"`
	PriceRange      string    `json:"priceRange"`
	RecommendedMenu []string  `json:"recommendedMenu"`
	Review          string    `json:"review"`
	SubmitterName   string    `json:"submitterName"`
	SubmitterEmail  string    `json:"submitterEmail"`
	Status          string    `json:"status"`
	Image           string    `json:"image,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toSubmissionResponse(s domain.Submission) submissionResponse {
	return submissionResponse{
		ID:              s.ID,
		RestaurantName:  s.RestaurantName,
		Category:        s.Category,
		Location:        s.Location,
		PriceRange:      s.PriceRange,
		RecommendedMenu: domain.NormaliseMenu(s.RecommendedMenu),
		Review:          s.Review,
		SubmitterName:   s.SubmitterName,
		SubmitterEmail:  s.SubmitterEmail,
		Status:          s.Status.String(),
		Image:           s.Image,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
