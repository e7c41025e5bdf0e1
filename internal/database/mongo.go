package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	UsersCollection         = "users"
	NGOsCollection          = "ngos"
	SocialWorkersCollection = "socialworkers"
	AdminsCollection        = "admins"
	PostsCollection         = "posts"
	CasesCollection         = "casemanagement"
	ContactsCollection      = "contacts"
	FeedbackCollection      = "feedback"
)

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func Connect(uri, dbName string, timeout time.Duration) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	clientOptions.SetMaxPoolSize(100)
	clientOptions.SetMinPoolSize(5)
	clientOptions.SetMaxConnIdleTime(30 * time.Second)
	clientOptions.SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify the connection made above
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// Ping checks if the database is accessible
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the indexes every collection relies on. Email
// uniqueness is enforced per account collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	for _, name := range []string{UsersCollection, NGOsCollection, SocialWorkersCollection, AdminsCollection} {
		_, err := db.Collection(name).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		})
		if err != nil {
			return fmt.Errorf("indexes for %s: %w", name, err)
		}
	}

	plain := map[string][]bson.D{
		PostsCollection: {
			{{Key: "authorId", Value: 1}, {Key: "createdAt", Value: -1}},
			{{Key: "type", Value: 1}},
			{{Key: "tags", Value: 1}},
		},
		CasesCollection: {
			{{Key: "authorId", Value: 1}, {Key: "createdAt", Value: -1}},
			{{Key: "isPublic", Value: 1}, {Key: "verificationStatus", Value: 1}},
		},
		ContactsCollection: {
			{{Key: "createdAt", Value: -1}},
		},
		FeedbackCollection: {
			{{Key: "createdAt", Value: -1}},
			{{Key: "category", Value: 1}},
		},
	}

	for name, keys := range plain {
		models := make([]mongo.IndexModel, 0, len(keys))
		for _, k := range keys {
			models = append(models, mongo.IndexModel{Keys: k})
		}
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("indexes for %s: %w", name, err)
		}
	}

	return nil
}
