package contact

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
	return &Repository{collection: db.Collection(database.ContactsCollection)}
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

// FindAll returns every submission, newest first
func (r *Repository) FindAll(ctx context.Context) ([]Submission, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
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
