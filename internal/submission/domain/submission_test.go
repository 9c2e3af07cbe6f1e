package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmissionReportsFirstMissingField(t *testing.T) {
	_, err := NewSubmission("", "", "")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "restaurantName", verr.Field)
	assert.Equal(t, "'restaurantName' is required", verr.Error())

	_, err = NewSubmission("Gogung", "korean", "")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "'location' is required", verr.Error())
}

func TestNewSubmissionIsPending(t *testing.T) {
	s, err := NewSubmission("Gogung", "korean", "Jeonju")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, s.Status)
	assert.NotNil(t, s.RecommendedMenu)
}

func TestApplyPatchLeavesNilFieldsUntouched(t *testing.T) {
	s := Submission{RestaurantName: "Old", Category: "korean", Review: "good", RecommendedMenu: []string{"a"}}
	name := "New"
	menu := []string{}
	s.Apply(SubmissionPatch{RestaurantName: &name, RecommendedMenu: &menu})

	assert.Equal(t, "New", s.RestaurantName)
	assert.Equal(t, "korean", s.Category)
	assert.Equal(t, "good", s.Review)
	assert.Equal(t, []string{}, s.RecommendedMenu)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("rejected")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, s)

	_, err = ParseStatus("archived")
	assert.Error(t, err)

	_, err = ParseStatus(" rejected ")
	assert.Error(t, err)
}

func TestRestaurantFromSubmission(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	sub := Submission{
		ID:              "sub-1",
		RestaurantName:  "Gogung",
		Category:        "korean",
		Location:        "Jeonju",
		Review:          "best bibimbap",
		RecommendedMenu: []string{"bibimbap"},
		Image:           "https://img.example/gogung.jpg",
	}

	r := RestaurantFromSubmission("r-1", sub, "", now)
	assert.Equal(t, "r-1", r.ID)
	assert.Equal(t, "Gogung", r.Name)
	assert.Equal(t, DefaultPriceRange, r.PriceRange)
	assert.Equal(t, "best bibimbap", r.Description)
	assert.Equal(t, []string{"bibimbap"}, r.RecommendedMenu)
	assert.Equal(t, "sub-1", r.SourceSubmissionID)
	assert.Equal(t, now, r.CreatedAt)

	sub.PriceRange = "10000-20000"
	assert.Equal(t, "10000-20000", RestaurantFromSubmission("r-2", sub, "n/a", now).PriceRange)
	sub.PriceRange = ""
	assert.Equal(t, "n/a", RestaurantFromSubmission("r-3", sub, "n/a", now).PriceRange)
}
