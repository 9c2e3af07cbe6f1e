package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var restaurantRowColumns = []string{
	"id", "name", "category", "location", "price_range", "description",
	"recommended_menu", "image", "source_submission_id", "created_at",
}

func TestRestaurantCreateAndFind(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRestaurantRepository(db)

	mock.ExpectExec("INSERT INTO restaurants").
		WithArgs("r1", "Gogung", "korean", "Jeonju", domain.DefaultPriceRange, "great", sqlmock.AnyArg(), "", sqlmock.AnyArg(), testTime).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM restaurants").
		WillReturnRows(sqlmock.NewRows(restaurantRowColumns).
			AddRow("r1", "Gogung", "korean", "Jeonju", domain.DefaultPriceRange, "great", "{bibimbap}", "", "s1", testTime))

	require.NoError(t, repo.Create(context.Background(), &domain.Restaurant{
		ID:                 "r1",
		Name:               "Gogung",
		Category:           "korean",
		Location:           "Jeonju",
		PriceRange:         domain.DefaultPriceRange,
		Description:        "great",
		RecommendedMenu:    []string{"bibimbap"},
		SourceSubmissionID: "s1",
		CreatedAt:          testTime,
	}))

	all, err := repo.Find(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"bibimbap"}, all[0].RecommendedMenu)
	assert.Equal(t, "s1", all[0].SourceSubmissionID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantFindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRestaurantRepository(db)

	mock.ExpectQuery("FROM restaurants").WithArgs("nope").WillReturnRows(sqlmock.NewRows(restaurantRowColumns))

	_, err = repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS submissions").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS submissions_status_idx").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS restaurants").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
