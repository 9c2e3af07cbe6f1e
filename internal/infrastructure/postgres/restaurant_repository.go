package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
)

const restaurantColumns = `id, name, category, location, price_range, description,
		recommended_menu, image, source_submission_id, created_at`

const (
	listRestaurantsQuery = `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		ORDER BY created_at DESC
	`
	getRestaurantQuery = `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE id = $1
	`
	insertRestaurantQuery = `
		INSERT INTO restaurants (` + restaurantColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
)

// RestaurantRepository stores published restaurants in PostgreSQL.
type RestaurantRepository struct {
	db *sql.DB
}

var _ application.RestaurantRepository = (*RestaurantRepository)(nil)

func NewRestaurantRepository(db *sql.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) Find(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, listRestaurantsQuery)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Restaurant, 0)
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, restaurant)
	}
	return out, rows.Err()
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	restaurant, err := scanRestaurant(r.db.QueryRowContext(ctx, getRestaurantQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("get restaurant %s: %w", id, err)
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	var source sql.NullString
	if restaurant.SourceSubmissionID != "" {
		source = sql.NullString{String: restaurant.SourceSubmissionID, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, insertRestaurantQuery,
		restaurant.ID, restaurant.Name, restaurant.Category, restaurant.Location,
		restaurant.PriceRange, restaurant.Description,
		pq.Array(domain.NormaliseMenu(restaurant.RecommendedMenu)),
		restaurant.Image, source, restaurant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

func scanRestaurant(row rowScanner) (domain.Restaurant, error) {
	var (
		r      domain.Restaurant
		menu   []string
		source sql.NullString
	)
	err := row.Scan(
		&r.ID, &r.Name, &r.Category, &r.Location, &r.PriceRange, &r.Description,
		pq.Array(&menu), &r.Image, &source, &r.CreatedAt,
	)
	if err != nil {
		return domain.Restaurant{}, err
	}
	r.RecommendedMenu = domain.NormaliseMenu(menu)
	r.SourceSubmissionID = source.String
	return r, nil
}
