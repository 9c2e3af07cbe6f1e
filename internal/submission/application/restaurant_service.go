package application

import (
	"context"

	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
)

type restaurantService struct {
	repo RestaurantRepository
}

func NewRestaurantService(repo RestaurantRepository) RestaurantService {
	return &restaurantService{repo: repo}
}

func (s *restaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	return s.repo.Find(ctx)
}

func (s *restaurantService) Detail(ctx context.Context, id string) (*domain.Restaurant, error) {
	return s.repo.FindByID(ctx, id)
}
