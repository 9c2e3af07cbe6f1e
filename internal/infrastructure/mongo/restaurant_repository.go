package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RestaurantRepository は承認済みレストランの Mongo 実装。
type RestaurantRepository struct {
	collection *mongo.Collection
}

var _ application.RestaurantRepository = (*RestaurantRepository)(nil)

func NewRestaurantRepository(db *mongo.Database, collection string) *RestaurantRepository {
	return &RestaurantRepository{collection: db.Collection(collection)}
}

// Find は公開済みレストランを新しい順に返す。
func (r *RestaurantRepository) Find(ctx context.Context) ([]domain.Restaurant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	restaurants := make([]domain.Restaurant, 0)
	for cursor.Next(ctx) {
		var doc RestaurantDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, mapRestaurant(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	var doc RestaurantDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": strings.TrimSpace(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant %s: %w", id, err)
	}
	restaurant := mapRestaurant(doc)
	return &restaurant, nil
}

// Create はレストランを保存する。sourceSubmissionId のユニーク制約で二重公開を防ぐ。
func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	if restaurant == nil {
		return fmt.Errorf("restaurant payload is nil")
	}
	if _, err := r.collection.InsertOne(ctx, buildRestaurantDocument(restaurant)); err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}
