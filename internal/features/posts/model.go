package posts

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
)

// Post is an article, story, guide, video or infographic published by any
// account
type Post struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title      string             `bson:"title" json:"title"`
	Content    string             `bson:"content" json:"content"`
	Type       string             `bson:"type" json:"type"`
	MediaURL   string             `bson:"mediaUrl,omitempty" json:"mediaUrl,omitempty"`
	AuthorID   primitive.ObjectID `bson:"authorId" json:"authorId"`
	AuthorType jwt.Role           `bson:"authorType" json:"authorType"`
	AuthorName string             `bson:"authorName" json:"authorName"`
	Likes      int                `bson:"likes" json:"likes"`
	Views      int                `bson:"views" json:"views"`
	Tags       []string           `bson:"tags" json:"tags"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Filter holds the equality filters accepted by getall
type Filter struct {
	Type       string
	AuthorID   *primitive.ObjectID
	AuthorType string
	Tag        string
}

// AddRequest for POST /posts/add
type AddRequest struct {
	Title    string   `json:"title" binding:"required,max=200"`
	Content  string   `json:"content" binding:"required"`
	Type     string   `json:"type" binding:"required,posttype"`
	MediaURL string   `json:"mediaUrl" binding:"omitempty,weburl"`
	Tags     []string `json:"tags" binding:"max=20,dive,max=40"`
}

// UpdateRequest for PUT /posts/update/:id
type UpdateRequest struct {
	Title    *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Content  *string   `json:"content" binding:"omitempty,min=1"`
	Type     *string   `json:"type" binding:"omitempty,posttype"`
	MediaURL *string   `json:"mediaUrl" binding:"omitempty,weburl"`
	Tags     *[]string `json:"tags" binding:"omitempty,max=20,dive,max=40"`
}
