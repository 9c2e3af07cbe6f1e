package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockRepository(mt *mtest.T) *SubmissionRepository {
	return NewSubmissionRepository(mt.DB, mt.Coll.Name())
}

func namespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}

func storedDocument(id primitive.ObjectID, status domain.Status) SubmissionDocument {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	return buildSubmissionDocument(id, &domain.Submission{
		RestaurantName:  "Gogung",
		Category:        "korean",
		Location:        "Jeonju",
		RecommendedMenu: []string{"bibimbap"},
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}

// findAndModify が対象なしで返す応答。
func noMatch() bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil})
}

func countResponse(mt *mtest.T, n int) bson.D {
	if n == 0 {
		return mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch)
	}
	return mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(n)}})
}

func TestTransitionStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("swapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: storedDocument(id, domain.StatusApproved)},
		))

		got, err := newMockRepository(mt).TransitionStatus(context.Background(), id.Hex(), domain.StatusPending, domain.StatusApproved)
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), got.ID)
		assert.Equal(mt, domain.StatusApproved, got.Status)
		assert.Equal(mt, []string{"bibimbap"}, got.RecommendedMenu)
	})

	mt.Run("not pending", func(mt *mtest.T) {
		mt.AddMockResponses(noMatch(), countResponse(mt, 1))

		_, err := newMockRepository(mt).TransitionStatus(context.Background(), id.Hex(), domain.StatusPending, domain.StatusApproved)
		assert.ErrorIs(mt, err, domain.ErrSubmissionNotPending)
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(noMatch(), countResponse(mt, 0))

		_, err := newMockRepository(mt).TransitionStatus(context.Background(), id.Hex(), domain.StatusPending, domain.StatusApproved)
		assert.ErrorIs(mt, err, domain.ErrSubmissionNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		_, err := newMockRepository(mt).TransitionStatus(context.Background(), "not-an-id", domain.StatusPending, domain.StatusApproved)
		assert.ErrorIs(mt, err, domain.ErrSubmissionNotFound)
	})
}

func TestUpdate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("partial", func(mt *mtest.T) {
		doc := storedDocument(id, domain.StatusPending)
		doc.Review = "updated"
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc}))

		review := "updated"
		got, err := newMockRepository(mt).Update(context.Background(), id.Hex(), domain.SubmissionPatch{Review: &review})
		require.NoError(mt, err)
		assert.Equal(mt, "updated", got.Review)
		assert.Equal(mt, "Gogung", got.RestaurantName)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		set := started.Command.Lookup("update", "$set").Document()
		assert.Equal(mt, "updated", set.Lookup("review").StringValue())
		_, err = set.LookupErr("restaurantName")
		assert.Error(mt, err)
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(noMatch())

		name := "x"
		_, err := newMockRepository(mt).Update(context.Background(), id.Hex(), domain.SubmissionPatch{RestaurantName: &name})
		assert.ErrorIs(mt, err, domain.ErrSubmissionNotFound)
	})

	mt.Run("status of approved", func(mt *mtest.T) {
		mt.AddMockResponses(noMatch(), countResponse(mt, 1))

		pending := domain.StatusPending
		_, err := newMockRepository(mt).Update(context.Background(), id.Hex(), domain.SubmissionPatch{Status: &pending})
		assert.ErrorIs(mt, err, domain.ErrSubmissionNotPending)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		guard := started.Command.Lookup("query", "status", "$ne")
		assert.Equal(mt, "approved", guard.StringValue())
	})
}

func TestDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))
		assert.NoError(mt, newMockRepository(mt).Delete(context.Background(), id.Hex()))
	})

	mt.Run("nothing deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))
		assert.ErrorIs(mt, newMockRepository(mt).Delete(context.Background(), id.Hex()), domain.ErrSubmissionNotFound)
	})
}
