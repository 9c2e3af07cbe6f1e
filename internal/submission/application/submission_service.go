package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
)

// SubmissionServiceConfig provides dependencies for NewSubmissionService.
type SubmissionServiceConfig struct {
	Submissions        SubmissionRepository
	Restaurants        RestaurantRepository
	Logger             *slog.Logger
	PriceRangeFallback string
	// Now and NewRestaurantID default to time.Now and UUIDv7.
	Now             func() time.Time
	NewRestaurantID func() (string, error)
}

type submissionService struct {
	submissions     SubmissionRepository
	restaurants     RestaurantRepository
	logger          *slog.Logger
	priceFallback   string
	now             func() time.Time
	newRestaurantID func() (string, error)
}

func NewSubmissionService(cfg SubmissionServiceConfig) SubmissionService {
	s := &submissionService{
		submissions:     cfg.Submissions,
		restaurants:     cfg.Restaurants,
		logger:          cfg.Logger,
		priceFallback:   cfg.PriceRangeFallback,
		now:             cfg.Now,
		newRestaurantID: cfg.NewRestaurantID,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newRestaurantID == nil {
		s.newRestaurantID = newTimeOrderedID
	}
	return s
}

func (s *submissionService) List(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error) {
	return s.submissions.Find(ctx, filter)
}

func (s *submissionService) Detail(ctx context.Context, id string) (*domain.Submission, error) {
	return s.submissions.FindByID(ctx, id)
}

func (s *submissionService) Create(ctx context.Context, cmd CreateSubmissionCommand) (*domain.Submission, error) {
	submission, err := domain.NewSubmission(cmd.RestaurantName, cmd.Category, cmd.Location)
	if err != nil {
		return nil, err
	}
	submission.PriceRange = cmd.PriceRange
	submission.RecommendedMenu = domain.NormaliseMenu(cmd.RecommendedMenu)
	submission.Review = cmd.Review
	submission.SubmitterName = cmd.SubmitterName
	submission.SubmitterEmail = cmd.SubmitterEmail

	now := s.now()
	submission.CreatedAt = now
	submission.UpdatedAt = now
	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *submissionService) Update(ctx context.Context, id string, cmd UpdateSubmissionCommand) (*domain.Submission, error) {
	patch := domain.SubmissionPatch{
		RestaurantName: cmd.RestaurantName,
		Category:       cmd.Category,
		Location:       cmd.Location,
		PriceRange:     cmd.PriceRange,
		Review:         cmd.Review,
		SubmitterName:  cmd.SubmitterName,
		SubmitterEmail: cmd.SubmitterEmail,
	}
	if cmd.RecommendedMenu != nil {
		menu := domain.NormaliseMenu(*cmd.RecommendedMenu)
		patch.RecommendedMenu = &menu
	}
	if cmd.Status != nil {
		status, err := parseEditableStatus(*cmd.Status)
		if err != nil {
			return nil, err
		}
		patch.Status = &status
	}
	return s.submissions.Update(ctx, id, patch)
}

func (s *submissionService) Delete(ctx context.Context, id string) error {
	return s.submissions.Delete(ctx, id)
}

// Approve claims the submission by swapping pending -> approved, publishes
// the restaurant and then removes the submission. A failed publish hands the
// claim back; a failed removal leaves an approved submission behind, which
// cannot be approved again.
func (s *submissionService) Approve(ctx context.Context, id string) (*domain.Restaurant, error) {
	submission, err := s.submissions.TransitionStatus(ctx, id, domain.StatusPending, domain.StatusApproved)
	if err != nil {
		return nil, err
	}

	restaurantID, err := s.newRestaurantID()
	if err != nil {
		s.release(ctx, id)
		return nil, fmt.Errorf("generate restaurant id: %w", err)
	}
	restaurant := domain.RestaurantFromSubmission(restaurantID, *submission, s.priceFallback, s.now())
	if err := s.restaurants.Create(ctx, &restaurant); err != nil {
		s.release(ctx, id)
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	if err := s.submissions.Delete(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "approved submission was not removed",
			slog.String("submissionId", id),
			slog.String("restaurantId", restaurant.ID),
			slog.Any("err", err))
	}
	return &restaurant, nil
}

func (s *submissionService) Reject(ctx context.Context, id string) (*domain.Submission, error) {
	return s.submissions.TransitionStatus(ctx, id, domain.StatusPending, domain.StatusRejected)
}

func (s *submissionService) release(ctx context.Context, id string) {
	if _, err := s.submissions.TransitionStatus(context.WithoutCancel(ctx), id, domain.StatusApproved, domain.StatusPending); err != nil {
		s.logger.ErrorContext(ctx, "failed to return submission to pending",
			slog.String("submissionId", id),
			slog.Any("err", err))
	}
}

// parseEditableStatus accepts the states an update may set directly.
// Approval goes through Approve only.
func parseEditableStatus(raw string) (domain.Status, error) {
	status, err := domain.ParseStatus(raw)
	if err != nil || status == domain.StatusApproved {
		return "", &domain.ValidationError{
			Field:   "status",
			Message: "'status' must be one of pending, rejected",
		}
	}
	return status, nil
}

func newTimeOrderedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
