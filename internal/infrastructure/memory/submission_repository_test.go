package memory

import (
	"context"
	"testing"

	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository()

	first := &domain.Submission{RestaurantName: "A", Status: domain.StatusPending}
	second := &domain.Submission{RestaurantName: "B", Status: domain.StatusRejected}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NotEmpty(t, first.ID)

	all, err := repo.Find(ctx, application.SubmissionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].RestaurantName)

	pending, err := repo.Find(ctx, application.SubmissionFilter{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)

	name := "A2"
	updated, err := repo.Update(ctx, first.ID, domain.SubmissionPatch{RestaurantName: &name})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.RestaurantName)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), domain.ErrSubmissionNotFound)
}

func TestSubmissionRepositoryTransitionStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository()
	s := &domain.Submission{RestaurantName: "A", Status: domain.StatusPending}
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.TransitionStatus(ctx, s.ID, domain.StatusPending, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)

	_, err = repo.TransitionStatus(ctx, s.ID, domain.StatusPending, domain.StatusApproved)
	assert.ErrorIs(t, err, domain.ErrSubmissionNotPending)

	_, err = repo.TransitionStatus(ctx, "missing", domain.StatusPending, domain.StatusApproved)
	assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
}

func TestSubmissionRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository()
	s := &domain.Submission{RestaurantName: "A", RecommendedMenu: []string{"x"}}
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	got.RecommendedMenu[0] = "mutated"

	again, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, again.RecommendedMenu)
}

func TestSubmissionRepositoryKeepsApprovedStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository()
	s := &domain.Submission{RestaurantName: "A", Status: domain.StatusApproved}
	require.NoError(t, repo.Create(ctx, s))

	pending := domain.StatusPending
	_, err := repo.Update(ctx, s.ID, domain.SubmissionPatch{Status: &pending})
	assert.ErrorIs(t, err, domain.ErrSubmissionNotPending)

	review := "still editable"
	updated, err := repo.Update(ctx, s.ID, domain.SubmissionPatch{Review: &review})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Status)
	assert.Equal(t, "still editable", updated.Review)
}

func TestRestaurantRepositoryRejectsDuplicateSource(t *testing.T) {
	ctx := context.Background()
	repo := NewRestaurantRepository()
	require.NoError(t, repo.Create(ctx, &domain.Restaurant{ID: "r1", SourceSubmissionID: "s1"}))

	assert.Error(t, repo.Create(ctx, &domain.Restaurant{ID: "r2", SourceSubmissionID: "s1"}))
	assert.NoError(t, repo.Create(ctx, &domain.Restaurant{ID: "r3"}))
	assert.NoError(t, repo.Create(ctx, &domain.Restaurant{ID: "r4"}))
}
