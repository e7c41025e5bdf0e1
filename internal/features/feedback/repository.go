package feedback

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sahyogi/sahyogi-backend/internal/database"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection(database.FeedbackCollection)}
}

func (r *Repository) Create(ctx context.Context, s *Submission) error {
	s.CreatedAt = time.Now().UTC()
	result, err := r.collection.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}

// FindAll returns submissions newest first, optionally of one category
func (r *Repository) FindAll(ctx context.Context, category string) ([]Submission, error) {
	query := bson.M{}
	if category != "" {
		query["category"] = category
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []Submission{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Submission, error) {
	var s Submission
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) (*Submission, error) {
	var s Submission
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Summarize groups submissions by category and averages the ratings
func (r *Repository) Summarize(ctx context.Context) (*Summary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "ratingSum", Value: bson.D{{Key: "$sum", Value: "$rating"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Category  string `bson:"_id"`
		Count     int64  `bson:"count"`
		RatingSum int64  `bson:"ratingSum"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}

	sum := &Summary{ByCategory: map[string]int64{}}
	var ratingTotal int64
	for _, g := range groups {
		sum.ByCategory[g.Category] = g.Count
		sum.Count += g.Count
		ratingTotal += g.RatingSum
	}
	if sum.Count > 0 {
		sum.AverageRating = float64(ratingTotal) / float64(sum.Count)
	}
	return sum, nil
}
