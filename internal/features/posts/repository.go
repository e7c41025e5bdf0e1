package posts

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sahyogi/sahyogi-backend/internal/database"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/pagination"
)

// Repository handles database interactions for posts
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection(database.PostsCollection)}
}

// Create inserts a post
func (r *Repository) Create(ctx context.Context, post *Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

// FindAll returns posts matching f, newest first. When page is enabled only
// that page is returned; total is always the full match count.
func (r *Repository) FindAll(ctx context.Context, f Filter, page pagination.Request) ([]Post, int64, error) {
	query := bson.M{}
	if f.Type != "" {
		query["type"] = f.Type
	}
	if f.AuthorID != nil {
		query["authorId"] = *f.AuthorID
	}
	if f.AuthorType != "" {
		query["authorType"] = f.AuthorType
	}
	if f.Tag != "" {
		query["tags"] = f.Tag
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var total int64
	if page.Enabled() {
		n, err := r.collection.CountDocuments(ctx, query)
		if err != nil {
			return nil, 0, err
		}
		total = n
		opts.SetSkip(page.Skip()).SetLimit(int64(page.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	posts := []Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	if !page.Enabled() {
		total = int64(len(posts))
	}
	return posts, total, nil
}

// FindByID returns nil when absent
func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	var post Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// View increments the view counter and returns the post as read
func (r *Repository) View(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	return r.findAndUpdate(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
}

// Like increments the like counter
func (r *Repository) Like(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	return r.findAndUpdate(ctx, id, bson.M{"$inc": bson.M{"likes": 1}})
}

// Update applies set and returns the updated post
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Post, error) {
	fields := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range set {
		fields[k] = v
	}
	return r.findAndUpdate(ctx, id, bson.M{"$set": fields})
}

func (r *Repository) findAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post Post
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Delete removes the post and returns it, or nil when nothing matched
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	var post Post
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}
