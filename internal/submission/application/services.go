package application

import (
	"context"

	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
)

// SubmissionRepository persists submissions. Missing records are reported
// as domain.ErrSubmissionNotFound.
type SubmissionRepository interface {
	Find(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error)
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	Create(ctx context.Context, submission *domain.Submission) error
	// Update applies a partial update. Changing the status of an approved
	// record yields domain.ErrSubmissionNotPending.
	Update(ctx context.Context, id string, patch domain.SubmissionPatch) (*domain.Submission, error)
	Delete(ctx context.Context, id string) error
	// TransitionStatus swaps the status from -> to atomically and returns the
	// updated record. A record in any other state yields
	// domain.ErrSubmissionNotPending.
	TransitionStatus(ctx context.Context, id string, from, to domain.Status) (*domain.Submission, error)
}

// RestaurantRepository persists published restaurants.
type RestaurantRepository interface {
	Find(ctx context.Context) ([]domain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	Create(ctx context.Context, restaurant *domain.Restaurant) error
}

// SubmissionFilter narrows a submission listing. An empty status matches all.
type SubmissionFilter struct {
	Status string
}

// SubmissionService describes the moderation use-cases.
type SubmissionService interface {
	List(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error)
	Detail(ctx context.Context, id string) (*domain.Submission, error)
	Create(ctx context.Context, cmd CreateSubmissionCommand) (*domain.Submission, error)
	Update(ctx context.Context, id string, cmd UpdateSubmissionCommand) (*domain.Submission, error)
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string) (*domain.Restaurant, error)
	Reject(ctx context.Context, id string) (*domain.Submission, error)
}

// RestaurantService describes read access to published restaurants.
type RestaurantService interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	Detail(ctx context.Context, id string) (*domain.Restaurant, error)
}

// CreateSubmissionCommand contains inputs for a new submission.
// RecommendedMenu must already be normalised.
type CreateSubmissionCommand struct {
	RestaurantName  string
	Category        string
	Location        string
	PriceRange      string
	RecommendedMenu []string
	Review          string
	SubmitterName   string
	SubmitterEmail  string
}

// UpdateSubmissionCommand contains a partial update. Nil means unchanged.
type UpdateSubmissionCommand struct {
	RestaurantName  *string
	Category        *string
	Location        *string
	PriceRange      *string
	RecommendedMenu *[]string
	Review          *string
	SubmitterName   *string
	SubmitterEmail  *string
	Status          *string
}
