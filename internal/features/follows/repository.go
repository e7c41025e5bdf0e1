package follows

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sahyogi/sahyogi-backend/internal/features/accounts"
)

var (
	ErrTargetNotFound   = errors.New("follow target not found")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
)

// Repository edits the follower list embedded in NGO and social worker
// documents. The list and its counter only ever change together in one
// update.
type Repository struct {
	collection *mongo.Collection
}

// NewRepository binds to the collection of a followable kind
func NewRepository(db *mongo.Database, kind accounts.Kind) *Repository {
	return &Repository{collection: db.Collection(kind.Collection)}
}

var countProjection = options.FindOneAndUpdate().
	SetReturnDocument(options.After).
	SetProjection(bson.M{"followerCount": 1})

// Follow appends entry to the target's followers and bumps the counter.
// It returns the new follower count.
func (r *Repository) Follow(ctx context.Context, targetID primitive.ObjectID, entry accounts.Follower) (int, error) {
	filter := bson.M{
		"_id":                  targetID,
		"followers.followerId": bson.M{"$ne": entry.FollowerID},
	}
	update := bson.M{
		"$push": bson.M{"followers": entry},
		"$inc":  bson.M{"followerCount": 1},
	}

	count, err := r.updateCount(ctx, filter, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, r.missOrConflict(ctx, targetID, ErrAlreadyFollowing)
	}
	return count, err
}

// Unfollow removes followerID from the target's followers and decrements
// the counter
func (r *Repository) Unfollow(ctx context.Context, targetID, followerID primitive.ObjectID) (int, error) {
	filter := bson.M{
		"_id":                  targetID,
		"followers.followerId": followerID,
	}
	update := bson.M{
		"$pull": bson.M{"followers": bson.M{"followerId": followerID}},
		"$inc":  bson.M{"followerCount": -1},
	}

	count, err := r.updateCount(ctx, filter, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, r.missOrConflict(ctx, targetID, ErrNotFollowing)
	}
	return count, err
}

func (r *Repository) updateCount(ctx context.Context, filter, update bson.M) (int, error) {
	var doc struct {
		FollowerCount int `bson:"followerCount"`
	}
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, countProjection).Decode(&doc); err != nil {
		return 0, err
	}
	return doc.FollowerCount, nil
}

// missOrConflict tells a missing target apart from a guard that did not match
func (r *Repository) missOrConflict(ctx context.Context, targetID primitive.ObjectID, conflict error) error {
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": targetID}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTargetNotFound
	}
	return conflict
}

// Followers returns only the follower list and counter of the target
func (r *Repository) Followers(ctx context.Context, targetID primitive.ObjectID) (*FollowersResponse, error) {
	opts := options.FindOne().SetProjection(bson.M{"followers": 1, "followerCount": 1})

	var out FollowersResponse
	err := r.collection.FindOne(ctx, bson.M{"_id": targetID}, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	if out.Followers == nil {
		out.Followers = []accounts.Follower{}
	}
	return &out, nil
}

// IsFollowing reports whether followerID is in the target's followers
func (r *Repository) IsFollowing(ctx context.Context, targetID, followerID primitive.ObjectID) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{
		"_id":                  targetID,
		"followers.followerId": followerID,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
