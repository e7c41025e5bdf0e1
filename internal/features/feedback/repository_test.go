package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestRepository_Summarize(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("averages across categories", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "sahyogi.feedback", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "bug"}, {Key: "count", Value: int64(2)}, {Key: "ratingSum", Value: int64(3)}},
			bson.D{{Key: "_id", Value: "general"}, {Key: "count", Value: int64(2)}, {Key: "ratingSum", Value: int64(9)}},
		))

		sum, err := repo.Summarize(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), sum.Count)
		assert.InDelta(mt, 3.0, sum.AverageRating, 0.001)
		assert.Equal(mt, int64(2), sum.ByCategory["bug"])
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "sahyogi.feedback", mtest.FirstBatch))

		sum, err := repo.Summarize(context.Background())
		require.NoError(mt, err)
		assert.Zero(mt, sum.Count)
		assert.Zero(mt, sum.AverageRating)
	})
}
