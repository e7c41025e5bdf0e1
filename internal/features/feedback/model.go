package feedback

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories accepted by the feedback form
var Categories = []string{"general", "bug", "feature", "content", "other"}

// Submission is a rated piece of feedback about the platform
type Submission struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Rating    int                `bson:"rating" json:"rating"`
	Category  string             `bson:"category" json:"category"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// AddRequest for POST /feedback/add. Category defaults to general.
type AddRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Category string `json:"category" binding:"omitempty,oneof=general bug feature content other"`
	Comment  string `json:"comment" binding:"required,min=10,max=1000"`
}

// Summary aggregates ratings for the admin dashboard
type Summary struct {
	Count         int64            `json:"count"`
	AverageRating float64          `json:"averageRating"`
	ByCategory    map[string]int64 `json:"byCategory"`
}
