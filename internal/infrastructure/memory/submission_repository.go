package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
)

// SubmissionRepository is an in-memory implementation useful for tests and
// local runs. Listing returns records in insertion order.
type SubmissionRepository struct {
	mu    sync.RWMutex
	order []string
	store map[string]domain.Submission
}

var _ application.SubmissionRepository = (*SubmissionRepository)(nil)

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{store: make(map[string]domain.Submission)}
}

func (r *SubmissionRepository) Find(_ context.Context, filter application.SubmissionFilter) ([]domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Submission, 0, len(r.order))
	for _, id := range r.order {
		s := r.store[id]
		if filter.Status != "" && string(s.Status) != filter.Status {
			continue
		}
		result = append(result, cloneSubmission(s))
	}
	return result, nil
}

func (r *SubmissionRepository) FindByID(_ context.Context, id string) (*domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.store[id]
	if !ok {
		return nil, domain.ErrSubmissionNotFound
	}
	out := cloneSubmission(s)
	return &out, nil
}

func (r *SubmissionRepository) Create(_ context.Context, submission *domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
		submission.UpdatedAt = submission.CreatedAt
	}
	r.store[submission.ID] = cloneSubmission(*submission)
	r.order = append(r.order, submission.ID)
	return nil
}

func (r *SubmissionRepository) Update(_ context.Context, id string, patch domain.SubmissionPatch) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.store[id]
	if !ok {
		return nil, domain.ErrSubmissionNotFound
	}
	if patch.Status != nil && s.Status == domain.StatusApproved {
		return nil, domain.ErrSubmissionNotPending
	}
	s.Apply(patch)
	s.UpdatedAt = time.Now().UTC()
	r.store[id] = s
	out := cloneSubmission(s)
	return &out, nil
}

func (r *SubmissionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrSubmissionNotFound
	}
	delete(r.store, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *SubmissionRepository) TransitionStatus(_ context.Context, id string, from, to domain.Status) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.store[id]
	if !ok {
		return nil, domain.ErrSubmissionNotFound
	}
	if s.Status != from {
		return nil, domain.ErrSubmissionNotPending
	}
	s.Status = to
	s.UpdatedAt = time.Now().UTC()
	r.store[id] = s
	out := cloneSubmission(s)
	return &out, nil
}

func cloneSubmission(s domain.Submission) domain.Submission {
	s.RecommendedMenu = append([]string{}, s.RecommendedMenu...)
	return s
}
