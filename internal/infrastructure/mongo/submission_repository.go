package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmissionRepository は投稿コレクションの Mongo 実装。
type SubmissionRepository struct {
	collection *mongo.Collection
}

var _ application.SubmissionRepository = (*SubmissionRepository)(nil)

// NewSubmissionRepository は MongoDB コレクションを束縛した SubmissionRepository を生成する。
func NewSubmissionRepository(db *mongo.Database, collection string) *SubmissionRepository {
	return &SubmissionRepository{collection: db.Collection(collection)}
}

// Find はステータスで絞り込んだ投稿一覧を登録順で返す。ページングは行わない。
func (r *SubmissionRepository) Find(ctx context.Context, filter application.SubmissionFilter) ([]domain.Submission, error) {
	mongoFilter := bson.M{}
	if filter.Status != "" {
		mongoFilter["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, fmt.Errorf("find submissions: %w", err)
	}
	defer cursor.Close(ctx)

	submissions := make([]domain.Submission, 0)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		submissions = append(submissions, mapSubmission(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return submissions, nil
}

// FindByID は 16 進 ObjectID で単一の投稿を返す。形式不正も存在しない ID として扱う。
func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	objectID, ok := parseObjectID(id)
	if !ok {
		return nil, domain.ErrSubmissionNotFound
	}
	var doc SubmissionDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("find submission %s: %w", id, err)
	}
	submission := mapSubmission(doc)
	return &submission, nil
}

// Create は ObjectID を採番して投稿を保存し、submission.ID に反映する。
func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	if submission == nil {
		return fmt.Errorf("submission payload is nil")
	}
	objectID := primitive.NewObjectID()
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
		submission.UpdatedAt = submission.CreatedAt
	}
	doc := buildSubmissionDocument(objectID, submission)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	submission.ID = objectID.Hex()
	return nil
}

// Update は指定されたフィールドだけを $set し、更新後のドキュメントを返す。
func (r *SubmissionRepository) Update(ctx context.Context, id string, patch domain.SubmissionPatch) (*domain.Submission, error) {
	objectID, ok := parseObjectID(id)
	if !ok {
		return nil, domain.ErrSubmissionNotFound
	}

	set := buildPatchSet(patch)
	set["updatedAt"] = time.Now().UTC()

	// 承認済みの投稿はステータスを戻せない。
	filter := bson.M{"_id": objectID}
	if patch.Status != nil {
		filter["status"] = bson.M{"$ne": domain.StatusApproved.String()}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc SubmissionDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err == nil {
		submission := mapSubmission(doc)
		return &submission, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update submission %s: %w", id, err)
	}
	if patch.Status == nil {
		return nil, domain.ErrSubmissionNotFound
	}
	return nil, r.missingOrNotPending(ctx, objectID)
}

// Delete は投稿を削除する。対象が無ければ ErrSubmissionNotFound。
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	objectID, ok := parseObjectID(id)
	if !ok {
		return domain.ErrSubmissionNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("delete submission %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

// TransitionStatus は status が from の場合に限り to へ書き換える（compare-and-swap）。
// 一致しなかった場合は存在確認をして NotFound と NotPending を区別する。
func (r *SubmissionRepository) TransitionStatus(ctx context.Context, id string, from, to domain.Status) (*domain.Submission, error) {
	objectID, ok := parseObjectID(id)
	if !ok {
		return nil, domain.ErrSubmissionNotFound
	}

	filter := bson.M{"_id": objectID, "status": from.String()}
	update := bson.M{"$set": bson.M{"status": to.String(), "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc SubmissionDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		submission := mapSubmission(doc)
		return &submission, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("transition submission %s: %w", id, err)
	}
	return nil, r.missingOrNotPending(ctx, objectID)
}

// missingOrNotPending は条件付き更新が空振りした理由を存在確認で判定する。
func (r *SubmissionRepository) missingOrNotPending(ctx context.Context, objectID primitive.ObjectID) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("count submission %s: %w", objectID.Hex(), err)
	}
	if count == 0 {
		return domain.ErrSubmissionNotFound
	}
	return domain.ErrSubmissionNotPending
}

// buildPatchSet は nil でないフィールドだけを $set 用の BSON に展開する。
func buildPatchSet(patch domain.SubmissionPatch) bson.M {
	set := bson.M{}
	putString := func(key string, value *string) {
		if value != nil {
			set[key] = *value
		}
	}
	putString("restaurantName", patch.RestaurantName)
	putString("category", patch.Category)
	putString("location", patch.Location)
	putString("priceRange", patch.PriceRange)
	putString("review", patch.Review)
	putString("submitterName", patch.SubmitterName)
	putString("submitterEmail", patch.SubmitterEmail)
	if patch.RecommendedMenu != nil {
		set["recommendedMenu"] = domain.NormaliseMenu(*patch.RecommendedMenu)
	}
	if patch.Status != nil {
		set["status"] = patch.Status.String()
	}
	return set
}

func parseObjectID(id string) (primitive.ObjectID, bool) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objectID, true
}
