package cases

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

// Repository handles database interactions for case records
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection(database.CasesCollection)}
}

func (r *Repository) Create(ctx context.Context, rec *CaseRecord) error {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, rec)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid
	}
	return nil
}

func (r *Repository) FindAll(ctx context.Context, f Filter) ([]CaseRecord, error) {
	query := bson.M{}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.VerificationStatus != "" {
		query["verificationStatus"] = f.VerificationStatus
	}
	if f.AuthorID != nil {
		query["authorId"] = *f.AuthorID
	}
	if f.PublicOnly {
		query["isPublic"] = true
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []CaseRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID returns nil when absent
func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*CaseRecord, error) {
	var rec CaseRecord
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Update applies set and returns the updated record, or nil when absent
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*CaseRecord, error) {
	fields := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range set {
		fields[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec CaseRecord
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) (*CaseRecord, error) {
	var rec CaseRecord
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
