package accounts

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/sahyogi/sahyogi-backend/pkg/errors"
)

// ErrEmailTaken is returned when the unique email index rejects a write
var ErrEmailTaken = apperrors.Conflict("EMAIL_TAKEN", "Email already registered")

// Repository handles database interactions for one account collection
type Repository struct {
	collection *mongo.Collection
}

// NewRepository binds a repository to the collection of kind
func NewRepository(db *mongo.Database, kind Kind) *Repository {
	return &Repository{collection: db.Collection(kind.Collection)}
}

// Create inserts acc and fills its ID and timestamps
func (r *Repository) Create(ctx context.Context, acc *Account) error {
	now := time.Now().UTC()
	acc.CreatedAt = now
	acc.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, acc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		acc.ID = oid
	}
	return nil
}

// FindAll returns every account matching the equality filter, newest first.
// Follower lists are left out.
func (r *Repository) FindAll(ctx context.Context, f Filter) ([]Account, error) {
	query := bson.M{}
	if f.Name != "" {
		query["name"] = f.Name
	}
	if f.Email != "" {
		query["email"] = normalizeEmail(f.Email)
	}
	if f.IsVerified != nil {
		query["isVerified"] = *f.IsVerified
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"followers": 0})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	accounts := []Account{}
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindByID returns nil when no account has id
func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail returns nil when no account has email
func (r *Repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return r.findOne(ctx, bson.M{"email": normalizeEmail(email)})
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*Account, error) {
	var acc Account
	err := r.collection.FindOne(ctx, filter).Decode(&acc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &acc, nil
}

// Update applies set to the account and returns the updated document, or nil
// when no account has id
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Account, error) {
	fields := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range set {
		fields[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var acc Account
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&acc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &acc, nil
}

// Delete removes the account and returns it, or nil when nothing matched
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) (*Account, error) {
	var acc Account
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&acc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &acc, nil
}
