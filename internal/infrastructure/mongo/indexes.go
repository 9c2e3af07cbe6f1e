package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes は起動時に必要なインデックスを作成する。既存なら何もしない。
func EnsureIndexes(ctx context.Context, db *mongo.Database, submissions, restaurants string) error {
	if _, err := db.Collection(submissions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("idx_submission_status"),
	}); err != nil {
		return fmt.Errorf("create submission indexes: %w", err)
	}

	if _, err := db.Collection(restaurants).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "sourceSubmissionId", Value: 1}},
			Options: options.Index().
				SetName("uniq_restaurant_source_submission").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"sourceSubmissionId": bson.M{"$type": "string"}}),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_restaurant_created"),
		},
	}); err != nil {
		return fmt.Errorf("create restaurant indexes: %w", err)
	}
	return nil
}
