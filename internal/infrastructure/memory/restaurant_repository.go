package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
)

// RestaurantRepository keeps published restaurants in memory.
type RestaurantRepository struct {
	mu    sync.RWMutex
	order []string
	store map[string]domain.Restaurant
}

var _ application.RestaurantRepository = (*RestaurantRepository)(nil)

func NewRestaurantRepository() *RestaurantRepository {
	return &RestaurantRepository{store: make(map[string]domain.Restaurant)}
}

func (r *RestaurantRepository) Find(context.Context) ([]domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Restaurant, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, cloneRestaurant(r.store[id]))
	}
	return result, nil
}

func (r *RestaurantRepository) FindByID(_ context.Context, id string) (*domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	restaurant, ok := r.store[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	out := cloneRestaurant(restaurant)
	return &out, nil
}

func (r *RestaurantRepository) Create(_ context.Context, restaurant *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if restaurant.ID == "" {
		return fmt.Errorf("restaurant id is required")
	}
	if _, exists := r.store[restaurant.ID]; exists {
		return fmt.Errorf("restaurant %s already exists", restaurant.ID)
	}
	if source := restaurant.SourceSubmissionID; source != "" {
		for _, existing := range r.store {
			if existing.SourceSubmissionID == source {
				return fmt.Errorf("restaurant for submission %s already exists", source)
			}
		}
	}
	r.store[restaurant.ID] = cloneRestaurant(*restaurant)
	r.order = append(r.order, restaurant.ID)
	return nil
}

func cloneRestaurant(r domain.Restaurant) domain.Restaurant {
	r.RecommendedMenu = append([]string{}, r.RecommendedMenu...)
	return r
}
